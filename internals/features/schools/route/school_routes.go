package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/schools/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewSchoolController(db)

	api.Get("/school", ctl.Get)
	api.Put("/school", features.RequirePermission(constants.PermSchoolManage), ctl.Update)
}
