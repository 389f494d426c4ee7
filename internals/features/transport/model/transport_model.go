package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type VehicleModel struct {
	VehicleID          uuid.UUID `gorm:"column:vehicle_id;type:uuid;primaryKey" json:"id"`
	VehicleSchoolID    uuid.UUID `gorm:"column:vehicle_school_id;type:uuid;not null;uniqueIndex:uq_vehicles_school_no,priority:1" json:"schoolId"`
	VehicleNo          string    `gorm:"column:vehicle_no;size:40;not null;uniqueIndex:uq_vehicles_school_no,priority:2" json:"vehicleNo"`
	VehicleModelName   *string   `gorm:"column:vehicle_model_name;size:80" json:"model"`
	VehicleCapacity    *int      `gorm:"column:vehicle_capacity" json:"capacity"`
	VehicleDriverName  *string   `gorm:"column:vehicle_driver_name;size:120" json:"driverName"`
	VehicleDriverPhone *string   `gorm:"column:vehicle_driver_phone;size:40" json:"driverPhone"`
	VehicleCreatedAt   time.Time `gorm:"column:vehicle_created_at;not null;autoCreateTime" json:"createdAt"`
	VehicleUpdatedAt   time.Time `gorm:"column:vehicle_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (VehicleModel) TableName() string    { return "vehicles" }
func (VehicleModel) TenantColumn() string { return "vehicle_school_id" }
func (VehicleModel) KeyColumn() string    { return "vehicle_id" }
func (VehicleModel) Label() string        { return "Vehicle" }

func (m *VehicleModel) SetSchoolID(id uuid.UUID) { m.VehicleSchoolID = id }

func (m *VehicleModel) BeforeCreate(*gorm.DB) error {
	if m.VehicleID == uuid.Nil {
		m.VehicleID = uuid.New()
	}
	return nil
}

// StopList daftar halte. text[] di postgres, literal array dalam text di dialect lain.
type StopList []string

func (s StopList) Value() (driver.Value, error) {
	if s == nil {
		s = StopList{}
	}
	return pq.StringArray(s).Value()
}

func (s *StopList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*s = StopList(arr)
	return nil
}

func (StopList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type TransportRouteModel struct {
	TransportRouteID        uuid.UUID       `gorm:"column:transport_route_id;type:uuid;primaryKey" json:"id"`
	TransportRouteSchoolID  uuid.UUID       `gorm:"column:transport_route_school_id;type:uuid;not null;uniqueIndex:uq_transport_routes_school_title,priority:1" json:"schoolId"`
	TransportRouteTitle     string          `gorm:"column:transport_route_title;size:120;not null;uniqueIndex:uq_transport_routes_school_title,priority:2" json:"title"`
	TransportRouteFare      decimal.Decimal `gorm:"column:transport_route_fare;type:numeric(14,2);not null;default:0" json:"fare"`
	TransportRouteStops     StopList        `gorm:"column:transport_route_stops" json:"stops"`
	TransportRouteCreatedAt time.Time       `gorm:"column:transport_route_created_at;not null;autoCreateTime" json:"createdAt"`
	TransportRouteUpdatedAt time.Time       `gorm:"column:transport_route_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (TransportRouteModel) TableName() string    { return "transport_routes" }
func (TransportRouteModel) TenantColumn() string { return "transport_route_school_id" }
func (TransportRouteModel) KeyColumn() string    { return "transport_route_id" }
func (TransportRouteModel) Label() string        { return "Route" }

func (m *TransportRouteModel) SetSchoolID(id uuid.UUID) { m.TransportRouteSchoolID = id }

func (m *TransportRouteModel) BeforeCreate(*gorm.DB) error {
	if m.TransportRouteID == uuid.Nil {
		m.TransportRouteID = uuid.New()
	}
	return nil
}

type VehicleRouteModel struct {
	VehicleRouteID               uuid.UUID `gorm:"column:vehicle_route_id;type:uuid;primaryKey" json:"id"`
	VehicleRouteSchoolID         uuid.UUID `gorm:"column:vehicle_route_school_id;type:uuid;not null;index" json:"schoolId"`
	VehicleRouteVehicleID        uuid.UUID `gorm:"column:vehicle_route_vehicle_id;type:uuid;not null;uniqueIndex:uq_vehicle_routes_pair,priority:1" json:"vehicleId"`
	VehicleRouteTransportRouteID uuid.UUID `gorm:"column:vehicle_route_transport_route_id;type:uuid;not null;uniqueIndex:uq_vehicle_routes_pair,priority:2" json:"routeId"`
	VehicleRouteCreatedAt        time.Time `gorm:"column:vehicle_route_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (VehicleRouteModel) TableName() string    { return "vehicle_routes" }
func (VehicleRouteModel) TenantColumn() string { return "vehicle_route_school_id" }
func (VehicleRouteModel) KeyColumn() string    { return "vehicle_route_id" }
func (VehicleRouteModel) Label() string        { return "Vehicle route" }

func (m *VehicleRouteModel) SetSchoolID(id uuid.UUID) { m.VehicleRouteSchoolID = id }

func (m *VehicleRouteModel) BeforeCreate(*gorm.DB) error {
	if m.VehicleRouteID == uuid.Nil {
		m.VehicleRouteID = uuid.New()
	}
	return nil
}
