package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/attendance/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	g := api.Group("/attendance", features.RequirePermission(constants.PermAttendanceManage))
	g.Get("/students", ctl.ListStudents)
	g.Post("/students", ctl.MarkStudents)
	g.Get("/staff", ctl.ListStaff)
	g.Post("/staff", ctl.MarkStaff)
}
