package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/transport/dto"
	"schoolku_backend/internals/features/transport/model"
	helper "schoolku_backend/internals/helpers"
)

type RouteController struct {
	DB *gorm.DB
}

func NewRouteController(db *gorm.DB) *RouteController {
	return &RouteController{DB: db}
}

func (ctl *RouteController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.TransportRouteModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(transport_route_title) LIKE ?", s)
	}
	rows := []model.TransportRouteModel{}
	pg, err := scope.Page(q, p, "transport_route_title ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *RouteController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.TransportRouteModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *RouteController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateRouteRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.TransportRouteModel{}, "transport_route_title", req.Title, uuid.Nil, "title"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Route created", m)
}

func (ctl *RouteController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.TransportRouteModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateRouteRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Title.Set() {
		if err := t.Unique(&model.TransportRouteModel{}, "transport_route_title", req.Title.Get(), id, "title"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.TransportRouteModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.TransportRouteModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Route updated", m)
}

func (ctl *RouteController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.TransportRouteModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.VehicleRouteModel{}, "vehicle_route_transport_route_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "route has vehicles assigned"))
	}
	if err := t.Delete(&model.TransportRouteModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Route deleted")
}
