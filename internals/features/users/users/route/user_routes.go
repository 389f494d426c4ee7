package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/users/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	g := api.Group("/users", features.RequirePermission(constants.PermUsersManage))
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
