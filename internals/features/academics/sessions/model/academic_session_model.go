package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicSessionModel tahun ajaran. Maksimal satu yang aktif per school.
type AcademicSessionModel struct {
	AcademicSessionID        uuid.UUID  `gorm:"column:academic_session_id;type:uuid;primaryKey" json:"id"`
	AcademicSessionSchoolID  uuid.UUID  `gorm:"column:academic_session_school_id;type:uuid;not null;uniqueIndex:uq_academic_sessions_school_name,priority:1" json:"schoolId"`
	AcademicSessionName      string     `gorm:"column:academic_session_name;size:60;not null;uniqueIndex:uq_academic_sessions_school_name,priority:2" json:"name"`
	AcademicSessionStartDate *time.Time `gorm:"column:academic_session_start_date;type:date" json:"startDate"`
	AcademicSessionEndDate   *time.Time `gorm:"column:academic_session_end_date;type:date" json:"endDate"`
	AcademicSessionIsActive  bool       `gorm:"column:academic_session_is_active;not null;default:false" json:"isActive"`
	AcademicSessionCreatedAt time.Time  `gorm:"column:academic_session_created_at;not null;autoCreateTime" json:"createdAt"`
	AcademicSessionUpdatedAt time.Time  `gorm:"column:academic_session_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (AcademicSessionModel) TableName() string    { return "academic_sessions" }
func (AcademicSessionModel) TenantColumn() string { return "academic_session_school_id" }
func (AcademicSessionModel) KeyColumn() string    { return "academic_session_id" }
func (AcademicSessionModel) Label() string        { return "Session" }

func (m *AcademicSessionModel) SetSchoolID(id uuid.UUID) { m.AcademicSessionSchoolID = id }

func (m *AcademicSessionModel) BeforeCreate(*gorm.DB) error {
	if m.AcademicSessionID == uuid.Nil {
		m.AcademicSessionID = uuid.New()
	}
	return nil
}
