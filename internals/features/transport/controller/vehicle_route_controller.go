package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/transport/dto"
	"schoolku_backend/internals/features/transport/model"
	helper "schoolku_backend/internals/helpers"
)

type VehicleRouteController struct {
	DB *gorm.DB
}

func NewVehicleRouteController(db *gorm.DB) *VehicleRouteController {
	return &VehicleRouteController{DB: db}
}

type VehicleRouteView struct {
	model.VehicleRouteModel
	VehicleNo  string `gorm:"column:vehicle_no" json:"vehicleNo"`
	RouteTitle string `gorm:"column:transport_route_title" json:"routeTitle"`
}

// GET /api/transport/vehicle-routes?vehicleId=&routeId=
func (ctl *VehicleRouteController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Table(&model.VehicleRouteModel{}).
		Joins("JOIN vehicles ON vehicles.vehicle_id = vehicle_routes.vehicle_route_vehicle_id").
		Joins("JOIN transport_routes ON transport_routes.transport_route_id = vehicle_routes.vehicle_route_transport_route_id").
		Select("vehicle_routes.*, vehicles.vehicle_no, transport_routes.transport_route_title")
	if id := helper.QueryUUID(c, "vehicleId"); id != nil {
		q = q.Where("vehicle_routes.vehicle_route_vehicle_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "routeId"); id != nil {
		q = q.Where("vehicle_routes.vehicle_route_transport_route_id = ?", *id)
	}
	rows := []VehicleRouteView{}
	pg, err := scope.Page(q, p, "transport_routes.transport_route_title ASC, vehicles.vehicle_no ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *VehicleRouteController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateVehicleRouteRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.VehicleModel{}, req.VehicleID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.TransportRouteModel{}, req.RouteID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if dup, err := t.Exists(&model.VehicleRouteModel{},
		"vehicle_route_vehicle_id = ? AND vehicle_route_transport_route_id = ?", req.VehicleID, req.RouteID); err != nil {
		return helper.JsonFromError(c, err)
	} else if dup {
		return helper.JsonFromError(c, helper.Conflict("vehicleId", "vehicle is already assigned to this route"))
	}
	m := &model.VehicleRouteModel{
		VehicleRouteVehicleID:        req.VehicleID,
		VehicleRouteTransportRouteID: req.RouteID,
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Vehicle assigned to route", m)
}

func (ctl *VehicleRouteController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Delete(&model.VehicleRouteModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Vehicle route deleted")
}
