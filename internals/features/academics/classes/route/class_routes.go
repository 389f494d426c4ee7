package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/classes/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func ClassRoutes(api fiber.Router, db *gorm.DB) {
	guard := features.ModuleGuard(constants.PermAcademicsView, constants.PermAcademicsManage)

	sec := controller.NewSectionController(db)
	s := api.Group("/sections")
	s.Get("/", guard.Read, sec.List)
	s.Get("/:id", guard.Read, sec.Get)
	s.Post("/", guard.Write, sec.Create)
	s.Put("/:id", guard.Write, sec.Update)
	s.Delete("/:id", guard.Write, sec.Delete)

	cls := controller.NewClassController(db)
	g := api.Group("/classes")
	g.Get("/", guard.Read, cls.List)
	g.Get("/:id", guard.Read, cls.Get)
	g.Post("/", guard.Write, cls.Create)
	g.Put("/:id", guard.Write, cls.Update)
	g.Delete("/:id", guard.Write, cls.Delete)

	api.Get("/class-sections", guard.Read, cls.ListClassSections)
}
