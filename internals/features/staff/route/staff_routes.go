package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/staff/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func StaffRoutes(api fiber.Router, db *gorm.DB) {
	guard := features.ModuleGuard(constants.PermStaffView, constants.PermStaffManage)

	dep := controller.NewDepartmentController(db)
	d := api.Group("/departments")
	d.Get("/", guard.Read, dep.List)
	d.Get("/:id", guard.Read, dep.Get)
	d.Post("/", guard.Write, dep.Create)
	d.Put("/:id", guard.Write, dep.Update)
	d.Delete("/:id", guard.Write, dep.Delete)

	ctl := controller.NewStaffController(db)
	g := api.Group("/staff")
	g.Get("/", guard.Read, ctl.List)
	g.Get("/:id", guard.Read, ctl.Get)
	g.Post("/", guard.Write, ctl.Create)
	g.Put("/:id", guard.Write, ctl.Update)
	g.Delete("/:id", guard.Write, ctl.Delete)
}
