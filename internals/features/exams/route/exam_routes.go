package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/exams/controller"
	features "schoolku_backend/internals/middlewares/features"
)

// ExamRoutes: path statis (results, schedules, subjects) didaftarkan sebelum /:id.
func ExamRoutes(api fiber.Router, db *gorm.DB) {
	exams := controller.NewExamController(db)
	schedules := controller.NewExamScheduleController(db)
	results := controller.NewExamResultController(db)

	g := api.Group("/exams", features.RequirePermission(constants.PermExamsManage))

	g.Get("/results", results.List)
	g.Post("/results", results.Save)

	g.Delete("/schedules/:id", schedules.Delete)
	g.Get("/schedules/:id/subjects", schedules.ListSubjects)
	g.Post("/schedules/:id/subjects", schedules.AddSubject)
	g.Put("/subjects/:id", schedules.UpdateSubject)
	g.Delete("/subjects/:id", schedules.DeleteSubject)

	g.Get("/", exams.List)
	g.Post("/", exams.Create)
	g.Get("/:id", exams.Get)
	g.Put("/:id", exams.Update)
	g.Delete("/:id", exams.Delete)
	g.Get("/:id/schedules", schedules.List)
	g.Post("/:id/schedules", schedules.Create)
}
