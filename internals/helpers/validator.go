package helper

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct menjalankan validator dan mengembalikan pesan field pertama yang gagal.
func ValidateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return Validation("", "Invalid input")
	}
	fe := verrs[0]
	return Validation(fe.Field(), fieldMessage(fe))
}

// ParseAndValidate: BodyParser + Normalize (jika ada) + validasi.
func ParseAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return Validation("", "Invalid request body")
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	return ValidateStruct(dst)
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return f + " must be a valid email"
	case "min":
		if isText(fe) {
			return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max":
		if isText(fe) {
			return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "uuid", "uuid4":
		return f + " must be a valid id"
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", f, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match format %s", f, fe.Param())
	default:
		return f + " is invalid"
	}
}

func isText(fe validator.FieldError) bool {
	k := fe.Kind()
	return k == reflect.String || k == reflect.Slice
}
