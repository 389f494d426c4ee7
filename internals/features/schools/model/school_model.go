package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SchoolModel = tenant. Kolom tenant sama dengan primary key.
type SchoolModel struct {
	SchoolID        uuid.UUID         `gorm:"column:school_id;type:uuid;primaryKey" json:"id"`
	SchoolCode      string            `gorm:"column:school_code;size:32;not null;uniqueIndex:uq_schools_code" json:"code"`
	SchoolName      string            `gorm:"column:school_name;size:160;not null" json:"name"`
	SchoolAddress   *string           `gorm:"column:school_address" json:"address"`
	SchoolPhone     *string           `gorm:"column:school_phone;size:40" json:"phone"`
	SchoolEmail     *string           `gorm:"column:school_email;size:160" json:"email"`
	SchoolLocale    string            `gorm:"column:school_locale;size:16;not null;default:'en'" json:"locale"`
	SchoolCurrency  string            `gorm:"column:school_currency;size:8;not null;default:'USD'" json:"currency"`
	SchoolTimezone  string            `gorm:"column:school_timezone;size:64;not null;default:'UTC'" json:"timezone"`
	SchoolSettings  datatypes.JSONMap `gorm:"column:school_settings" json:"settings"`
	SchoolIsActive  bool              `gorm:"column:school_is_active;not null;default:true" json:"isActive"`
	SchoolCreatedAt time.Time         `gorm:"column:school_created_at;not null;autoCreateTime" json:"createdAt"`
	SchoolUpdatedAt time.Time         `gorm:"column:school_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (SchoolModel) TableName() string    { return "schools" }
func (SchoolModel) TenantColumn() string { return "school_id" }
func (SchoolModel) KeyColumn() string    { return "school_id" }
func (SchoolModel) Label() string        { return "School" }

func (m *SchoolModel) SetSchoolID(id uuid.UUID) { m.SchoolID = id }

func (m *SchoolModel) BeforeCreate(*gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
