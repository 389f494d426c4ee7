package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/users/auth/dto"
	"schoolku_backend/internals/features/users/auth/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	authMiddleware "schoolku_backend/internals/middlewares/auth_school"
)

type AuthController struct {
	Service *service.LoginService
	Revoker helperAuth.Revoker
}

func NewAuthController(login *service.LoginService, revoker helperAuth.Revoker) *AuthController {
	return &AuthController{Service: login, Revoker: revoker}
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ctl.Service.Login(c.UserContext(), req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.Token,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/logout: token dicabut sampai exp-nya.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	exp, ok := c.Locals(authMiddleware.LocTokenExpiresAt).(time.Time)
	if !ok {
		exp = time.Now().Add(24 * time.Hour)
	}
	if raw != "" && ctl.Revoker != nil {
		if err := ctl.Revoker.Revoke(c.UserContext(), raw, exp); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", tc)
}
