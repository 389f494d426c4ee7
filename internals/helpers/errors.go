package helper

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInternal     ErrorKind = "internal"
)

// AppError adalah error domain yang sudah tahu status HTTP-nya.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Unauthorized(msg string) *AppError {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &AppError{Kind: KindUnauthorized, Status: fiber.StatusUnauthorized, Message: msg}
}

func Validation(field, msg string) *AppError {
	return &AppError{Kind: KindValidation, Status: fiber.StatusBadRequest, Message: msg, Field: field}
}

// NotFound dipakai juga untuk row milik tenant lain, supaya keberadaan data tidak bocor.
func NotFound(what string) *AppError {
	return &AppError{Kind: KindNotFound, Status: fiber.StatusNotFound, Message: what + " not found"}
}

func Conflict(field, msg string) *AppError {
	return &AppError{Kind: KindConflict, Status: fiber.StatusBadRequest, Message: msg, Field: field}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Status: fiber.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// IsKind cek jenis AppError di dalam rantai error.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}

// IsUniqueViolation deteksi pelanggaran unique constraint dari berbagai driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}

// ToAppError menormalkan error apa pun ke AppError.
func ToAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusUnauthorized:
			return Unauthorized(fe.Message)
		case fiber.StatusNotFound:
			return &AppError{Kind: KindNotFound, Status: fe.Code, Message: fe.Message}
		case fiber.StatusInternalServerError:
			return Internal(fe)
		default:
			return &AppError{Kind: KindValidation, Status: fe.Code, Message: fe.Message}
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record")
	}
	if IsUniqueViolation(err) {
		return Conflict("", "record already exists")
	}
	return Internal(err)
}

// JsonFromError memetakan error ke envelope {success:false, error}.
// Detail error internal hanya ditulis ke log.
func JsonFromError(c *fiber.Ctx, err error) error {
	ae := ToAppError(err)
	if ae.Kind == KindInternal {
		log.Printf("[ERROR] %s %s reqid=%v: %v", c.Method(), c.OriginalURL(), c.Locals("reqid"), ae.Err)
	}
	return c.Status(ae.Status).JSON(ErrorResponse{Success: false, Error: ae.Message, Field: ae.Field})
}

// ErrorHandler untuk fiber.Config agar error dari middleware memakai envelope yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return JsonFromError(c, err)
}
