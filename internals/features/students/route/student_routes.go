package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/students/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func StudentRoutes(api fiber.Router, db *gorm.DB) {
	guard := features.ModuleGuard(constants.PermStudentsView, constants.PermStudentsManage)

	ctl := controller.NewStudentController(db)
	g := api.Group("/students")
	g.Get("/", guard.Read, ctl.List)
	g.Get("/:id", guard.Read, ctl.Get)
	g.Post("/", guard.Write, ctl.Create)
	g.Put("/:id", guard.Write, ctl.Update)
	g.Delete("/:id", guard.Write, ctl.Delete)
	g.Post("/:id/enroll", guard.Write, ctl.Enroll)

	ss := controller.NewStudentSessionController(db)
	e := api.Group("/student-sessions")
	e.Get("/", guard.Read, ss.List)
	e.Put("/:id", guard.Write, ss.Update)
	e.Delete("/:id", guard.Write, ss.Delete)
}
