package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam membaca path param uuid. Format salah → Validation.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, Validation(name, "invalid "+name)
	}
	return id, nil
}

// QueryUUID filter opsional; nilai yang tidak bisa diparse diabaikan (nil).
func QueryUUID(c *fiber.Ctx, name string) *uuid.UUID {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// QueryBool: "true/1/yes" → true. Selain itu false.
func QueryBool(c *fiber.Ctx, name string) bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(name)))
	if raw == "yes" {
		return true
	}
	b, _ := strconv.ParseBool(raw)
	return b
}

// QuerySearch mengembalikan pola LIKE lower-case, "" jika kosong.
func QuerySearch(c *fiber.Ctx) string {
	q := strings.TrimSpace(c.Query("search"))
	if q == "" {
		q = strings.TrimSpace(c.Query("q"))
	}
	if q == "" {
		return ""
	}
	return "%" + strings.ToLower(q) + "%"
}
