package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/homework/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func HomeworkRoutes(api fiber.Router, db *gorm.DB) {
	hw := controller.NewHomeworkController(db)
	subs := controller.NewSubmissionController(db)

	g := api.Group("/homework", features.RequirePermission(constants.PermHomeworkManage))

	// path statis sebelum /:id
	g.Get("/submissions", subs.List)
	g.Post("/submissions", subs.Submit)
	g.Patch("/submissions/:id", subs.Evaluate)

	g.Get("/", hw.List)
	g.Post("/", hw.Create)
	g.Get("/:id", hw.Get)
	g.Put("/:id", hw.Update)
	g.Delete("/:id", hw.Delete)
}
