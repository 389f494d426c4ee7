package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID          uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"id"`
	ClassSchoolID    uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;uniqueIndex:uq_classes_school_name,priority:1" json:"schoolId"`
	ClassName        string    `gorm:"column:class_name;size:80;not null;uniqueIndex:uq_classes_school_name,priority:2" json:"name"`
	ClassDescription *string   `gorm:"column:class_description" json:"description"`
	ClassOrder       int       `gorm:"column:class_order;not null;default:0" json:"order"`
	ClassCreatedAt   time.Time `gorm:"column:class_created_at;not null;autoCreateTime" json:"createdAt"`
	ClassUpdatedAt   time.Time `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"updatedAt"`

	Sections []ClassSectionView `gorm:"-" json:"sections,omitempty"`
}

func (ClassModel) TableName() string    { return "classes" }
func (ClassModel) TenantColumn() string { return "class_school_id" }
func (ClassModel) KeyColumn() string    { return "class_id" }
func (ClassModel) Label() string        { return "Class" }

func (m *ClassModel) SetSchoolID(id uuid.UUID) { m.ClassSchoolID = id }

func (m *ClassModel) BeforeCreate(*gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

type SectionModel struct {
	SectionID        uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"id"`
	SectionSchoolID  uuid.UUID `gorm:"column:section_school_id;type:uuid;not null;uniqueIndex:uq_sections_school_name,priority:1" json:"schoolId"`
	SectionName      string    `gorm:"column:section_name;size:40;not null;uniqueIndex:uq_sections_school_name,priority:2" json:"name"`
	SectionCreatedAt time.Time `gorm:"column:section_created_at;not null;autoCreateTime" json:"createdAt"`
	SectionUpdatedAt time.Time `gorm:"column:section_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (SectionModel) TableName() string    { return "sections" }
func (SectionModel) TenantColumn() string { return "section_school_id" }
func (SectionModel) KeyColumn() string    { return "section_id" }
func (SectionModel) Label() string        { return "Section" }

func (m *SectionModel) SetSchoolID(id uuid.UUID) { m.SectionSchoolID = id }

func (m *SectionModel) BeforeCreate(*gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}

// ClassSectionModel: section X ada di class Y.
type ClassSectionModel struct {
	ClassSectionID        uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey" json:"id"`
	ClassSectionSchoolID  uuid.UUID `gorm:"column:class_section_school_id;type:uuid;not null;index" json:"schoolId"`
	ClassSectionClassID   uuid.UUID `gorm:"column:class_section_class_id;type:uuid;not null;uniqueIndex:uq_class_sections_pair,priority:1" json:"classId"`
	ClassSectionSectionID uuid.UUID `gorm:"column:class_section_section_id;type:uuid;not null;uniqueIndex:uq_class_sections_pair,priority:2" json:"sectionId"`
	ClassSectionCapacity  *int      `gorm:"column:class_section_capacity" json:"capacity"`
	ClassSectionOrder     int       `gorm:"column:class_section_order;not null;default:0" json:"order"`
	ClassSectionCreatedAt time.Time `gorm:"column:class_section_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (ClassSectionModel) TableName() string    { return "class_sections" }
func (ClassSectionModel) TenantColumn() string { return "class_section_school_id" }
func (ClassSectionModel) KeyColumn() string    { return "class_section_id" }
func (ClassSectionModel) Label() string        { return "Class section" }

func (m *ClassSectionModel) SetSchoolID(id uuid.UUID) { m.ClassSectionSchoolID = id }

func (m *ClassSectionModel) BeforeCreate(*gorm.DB) error {
	if m.ClassSectionID == uuid.Nil {
		m.ClassSectionID = uuid.New()
	}
	return nil
}

// ClassSectionView hasil join class_sections + sections untuk withSections=true.
type ClassSectionView struct {
	ClassSectionID uuid.UUID `gorm:"column:class_section_id" json:"classSectionId"`
	ClassID        uuid.UUID `gorm:"column:class_section_class_id" json:"classId"`
	SectionID      uuid.UUID `gorm:"column:section_id" json:"sectionId"`
	SectionName    string    `gorm:"column:section_name" json:"name"`
	Capacity       *int      `gorm:"column:class_section_capacity" json:"capacity"`
	Order          int       `gorm:"column:class_section_order" json:"order"`
}
