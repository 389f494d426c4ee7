package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/sessions/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func SessionRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewSessionController(db)
	guard := features.ModuleGuard(constants.PermAcademicsView, constants.PermAcademicsManage)

	g := api.Group("/sessions")
	g.Get("/", guard.Read, ctl.List)
	g.Get("/:id", guard.Read, ctl.Get)
	g.Post("/", guard.Write, ctl.Create)
	g.Put("/:id", guard.Write, ctl.Update)
	g.Post("/:id/activate", guard.Write, ctl.Activate)
	g.Delete("/:id", guard.Write, ctl.Delete)
}
