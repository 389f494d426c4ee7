package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/roles/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func RoleRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewRoleController(db)
	guard := features.RequirePermission(constants.PermRolesManage)

	api.Get("/permissions", guard, ctl.ListPermissions)

	g := api.Group("/roles", guard)
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Put("/:id/permissions", ctl.SetPermissions)
	g.Delete("/:id", ctl.Delete)
}
