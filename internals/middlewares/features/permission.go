package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// RequirePermission: role admin selalu lolos, selain itu salah satu slug harus ada di token.
func RequirePermission(slugs ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := helperAuth.GetTenant(c)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if !tc.HasAny(slugs...) {
			log.Printf("[WARN] permission denied user=%s role=%s need=%v", tc.UserID, tc.RoleSlug, slugs)
			return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
		}
		return c.Next()
	}
}

// Guard pasangan read/write untuk satu modul.
type Guard struct {
	Read  fiber.Handler
	Write fiber.Handler
}

func ModuleGuard(view, manage string) Guard {
	if view == "" {
		return Guard{Read: RequirePermission(manage), Write: RequirePermission(manage)}
	}
	return Guard{Read: RequirePermission(view, manage), Write: RequirePermission(manage)}
}
