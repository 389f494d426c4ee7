package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/transport/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func TransportRoutes(api fiber.Router, db *gorm.DB) {
	vehicles := controller.NewVehicleController(db)
	routes := controller.NewRouteController(db)
	pairs := controller.NewVehicleRouteController(db)

	g := api.Group("/transport", features.RequirePermission(constants.PermTransportManage))

	g.Get("/vehicles", vehicles.List)
	g.Post("/vehicles", vehicles.Create)
	g.Get("/vehicles/:id", vehicles.Get)
	g.Put("/vehicles/:id", vehicles.Update)
	g.Delete("/vehicles/:id", vehicles.Delete)

	g.Get("/routes", routes.List)
	g.Post("/routes", routes.Create)
	g.Get("/routes/:id", routes.Get)
	g.Put("/routes/:id", routes.Update)
	g.Delete("/routes/:id", routes.Delete)

	g.Get("/vehicle-routes", pairs.List)
	g.Post("/vehicle-routes", pairs.Create)
	g.Delete("/vehicle-routes/:id", pairs.Delete)
}
