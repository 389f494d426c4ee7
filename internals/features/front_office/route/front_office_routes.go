package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/front_office/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func FrontOfficeRoutes(api fiber.Router, db *gorm.DB) {
	complaints := controller.NewComplaintController(db)
	enquiries := controller.NewEnquiryController(db)

	g := api.Group("/front-office", features.RequirePermission(constants.PermFrontOfficeManage))

	g.Get("/complaints", complaints.List)
	g.Post("/complaints", complaints.Create)
	g.Get("/complaints/:id", complaints.Get)
	g.Put("/complaints/:id", complaints.Update)
	g.Patch("/complaints/:id/status", complaints.SetStatus)
	g.Delete("/complaints/:id", complaints.Delete)

	g.Get("/enquiries", enquiries.List)
	g.Post("/enquiries", enquiries.Create)
	g.Get("/enquiries/:id", enquiries.Get)
	g.Put("/enquiries/:id", enquiries.Update)
	g.Patch("/enquiries/:id/status", enquiries.SetStatus)
	g.Delete("/enquiries/:id", enquiries.Delete)
}
