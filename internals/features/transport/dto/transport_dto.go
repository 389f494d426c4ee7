package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/transport/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateVehicleRequest struct {
	VehicleNo   string  `json:"vehicleNo" validate:"required,max=40"`
	Model       *string `json:"model" validate:"omitempty,max=80"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
	DriverName  *string `json:"driverName" validate:"omitempty,max=120"`
	DriverPhone *string `json:"driverPhone" validate:"omitempty,max=40"`
}

func (r *CreateVehicleRequest) Normalize() {
	r.VehicleNo = strings.ToUpper(strings.TrimSpace(r.VehicleNo))
	r.Model = helper.TrimPtr(r.Model)
	r.DriverName = helper.TrimPtr(r.DriverName)
	r.DriverPhone = helper.TrimPtr(r.DriverPhone)
}

func (r *CreateVehicleRequest) ToModel() *model.VehicleModel {
	return &model.VehicleModel{
		VehicleNo:          r.VehicleNo,
		VehicleModelName:   r.Model,
		VehicleCapacity:    r.Capacity,
		VehicleDriverName:  r.DriverName,
		VehicleDriverPhone: r.DriverPhone,
	}
}

type UpdateVehicleRequest struct {
	VehicleNo   helper.PatchField[string]  `json:"vehicleNo"`
	Model       helper.PatchField[*string] `json:"model"`
	Capacity    helper.PatchField[*int]    `json:"capacity"`
	DriverName  helper.PatchField[*string] `json:"driverName"`
	DriverPhone helper.PatchField[*string] `json:"driverPhone"`
}

func (r *UpdateVehicleRequest) Normalize() {
	if r.VehicleNo.Value != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.VehicleNo.Value))
		r.VehicleNo.Value = &v
	}
	helper.TrimPatchPtr(&r.Model)
	helper.TrimPatchPtr(&r.DriverName)
	helper.TrimPatchPtr(&r.DriverPhone)
}

func (r *UpdateVehicleRequest) Updates() (map[string]any, error) {
	if r.VehicleNo.Present && r.VehicleNo.Get() == "" {
		return nil, helper.Validation("vehicleNo", "vehicleNo is required")
	}
	if r.Capacity.Set() && r.Capacity.Get() != nil && *r.Capacity.Get() < 1 {
		return nil, helper.Validation("capacity", "capacity must be at least 1")
	}
	u := map[string]any{}
	r.VehicleNo.Apply(u, "vehicle_no")
	r.Model.Apply(u, "vehicle_model_name")
	r.Capacity.Apply(u, "vehicle_capacity")
	r.DriverName.Apply(u, "vehicle_driver_name")
	r.DriverPhone.Apply(u, "vehicle_driver_phone")
	return u, nil
}

// cleanStops trim, buang kosong dan duplikat; urutan halte dipertahankan.
func cleanStops(in []string) model.StopList {
	out := lo.Uniq(lo.FilterMap(in, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}))
	return model.StopList(out)
}

type CreateRouteRequest struct {
	Title string          `json:"title" validate:"required,max=120"`
	Fare  decimal.Decimal `json:"fare"`
	Stops []string        `json:"stops"`
}

func (r *CreateRouteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r *CreateRouteRequest) ToModel() (*model.TransportRouteModel, error) {
	if r.Fare.IsNegative() {
		return nil, helper.Validation("fare", "fare must not be negative")
	}
	return &model.TransportRouteModel{
		TransportRouteTitle: r.Title,
		TransportRouteFare:  r.Fare.Round(2),
		TransportRouteStops: cleanStops(r.Stops),
	}, nil
}

type UpdateRouteRequest struct {
	Title helper.PatchField[string]          `json:"title"`
	Fare  helper.PatchField[decimal.Decimal] `json:"fare"`
	Stops helper.PatchField[[]string]        `json:"stops"`
}

func (r *UpdateRouteRequest) Normalize() { helper.TrimPatch(&r.Title) }

func (r *UpdateRouteRequest) Updates() (map[string]any, error) {
	if r.Title.Present && r.Title.Get() == "" {
		return nil, helper.Validation("title", "title is required")
	}
	if r.Fare.Present && (r.Fare.Value == nil || r.Fare.Get().IsNegative()) {
		return nil, helper.Validation("fare", "fare must not be negative")
	}
	u := map[string]any{}
	r.Title.Apply(u, "transport_route_title")
	if r.Fare.Set() {
		u["transport_route_fare"] = r.Fare.Get().Round(2)
	}
	if r.Stops.Present {
		u["transport_route_stops"] = cleanStops(r.Stops.Get())
	}
	return u, nil
}

type CreateVehicleRouteRequest struct {
	VehicleID uuid.UUID `json:"vehicleId" validate:"required"`
	RouteID   uuid.UUID `json:"routeId" validate:"required"`
}
