package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubjectTheory    = "theory"
	SubjectPractical = "practical"
)

type SubjectModel struct {
	SubjectID        uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"id"`
	SubjectSchoolID  uuid.UUID `gorm:"column:subject_school_id;type:uuid;not null;uniqueIndex:uq_subjects_school_name,priority:1;uniqueIndex:uq_subjects_school_code,priority:1" json:"schoolId"`
	SubjectName      string    `gorm:"column:subject_name;size:120;not null;uniqueIndex:uq_subjects_school_name,priority:2" json:"name"`
	SubjectCode      string    `gorm:"column:subject_code;size:40;not null;uniqueIndex:uq_subjects_school_code,priority:2" json:"code"`
	SubjectType      string    `gorm:"column:subject_type;size:16;not null;default:'theory'" json:"type"`
	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;not null;autoCreateTime" json:"createdAt"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (SubjectModel) TableName() string    { return "subjects" }
func (SubjectModel) TenantColumn() string { return "subject_school_id" }
func (SubjectModel) KeyColumn() string    { return "subject_id" }
func (SubjectModel) Label() string        { return "Subject" }

func (m *SubjectModel) SetSchoolID(id uuid.UUID) { m.SubjectSchoolID = id }

func (m *SubjectModel) BeforeCreate(*gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
