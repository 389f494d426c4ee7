package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/users/auth/controller"
	"schoolku_backend/internals/features/users/auth/service"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/middlewares"
)

// AuthPublicRoutes didaftarkan sebelum group /api yang memakai AuthJWT.
func AuthPublicRoutes(app fiber.Router, login *service.LoginService, revoker helperAuth.Revoker) {
	ctl := controller.NewAuthController(login, revoker)
	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
}

func AuthRoutes(api fiber.Router, login *service.LoginService, revoker helperAuth.Revoker) {
	ctl := controller.NewAuthController(login, revoker)
	api.Post("/auth/logout", ctl.Logout)
	api.Get("/auth/me", ctl.Me)
}
