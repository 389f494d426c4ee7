package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status complaint / enquiry sengaja string bebas, tanpa graf transisi.
const DefaultStatus = "pending"

type ComplaintModel struct {
	ComplaintID          uuid.UUID  `gorm:"column:complaint_id;type:uuid;primaryKey" json:"id"`
	ComplaintSchoolID    uuid.UUID  `gorm:"column:complaint_school_id;type:uuid;not null;index" json:"schoolId"`
	ComplaintType        *string    `gorm:"column:complaint_type;size:80" json:"complaintType"`
	ComplaintSource      *string    `gorm:"column:complaint_source;size:80" json:"source"`
	ComplainantName      string     `gorm:"column:complaint_complainant_name;size:160;not null" json:"name"`
	ComplainantPhone     *string    `gorm:"column:complaint_complainant_phone;size:40" json:"phone"`
	ComplaintDate        time.Time  `gorm:"column:complaint_date;type:date;not null" json:"date"`
	ComplaintDescription *string    `gorm:"column:complaint_description" json:"description"`
	ComplaintActionTaken *string    `gorm:"column:complaint_action_taken" json:"actionTaken"`
	ComplaintAssignedTo  *uuid.UUID `gorm:"column:complaint_assigned_to;type:uuid" json:"assignedTo"`
	ComplaintStatus      string     `gorm:"column:complaint_status;size:40;not null" json:"status"`
	ComplaintNote        *string    `gorm:"column:complaint_note" json:"note"`
	ComplaintCreatedAt   time.Time  `gorm:"column:complaint_created_at;not null;autoCreateTime" json:"createdAt"`
	ComplaintUpdatedAt   time.Time  `gorm:"column:complaint_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (ComplaintModel) TableName() string    { return "complaints" }
func (ComplaintModel) TenantColumn() string { return "complaint_school_id" }
func (ComplaintModel) KeyColumn() string    { return "complaint_id" }
func (ComplaintModel) Label() string        { return "Complaint" }

func (m *ComplaintModel) SetSchoolID(id uuid.UUID) { m.ComplaintSchoolID = id }

func (m *ComplaintModel) BeforeCreate(*gorm.DB) error {
	if m.ComplaintID == uuid.Nil {
		m.ComplaintID = uuid.New()
	}
	return nil
}

type EnquiryModel struct {
	EnquiryID           uuid.UUID  `gorm:"column:enquiry_id;type:uuid;primaryKey" json:"id"`
	EnquirySchoolID     uuid.UUID  `gorm:"column:enquiry_school_id;type:uuid;not null;index" json:"schoolId"`
	EnquiryName         string     `gorm:"column:enquiry_name;size:160;not null" json:"name"`
	EnquiryPhone        *string    `gorm:"column:enquiry_phone;size:40" json:"phone"`
	EnquiryEmail        *string    `gorm:"column:enquiry_email;size:160" json:"email"`
	EnquirySource       *string    `gorm:"column:enquiry_source;size:80" json:"source"`
	EnquiryClassID      *uuid.UUID `gorm:"column:enquiry_class_id;type:uuid" json:"classId"`
	EnquiryDate         time.Time  `gorm:"column:enquiry_date;type:date;not null" json:"date"`
	EnquiryNextFollowUp *time.Time `gorm:"column:enquiry_next_follow_up;type:date" json:"nextFollowUp"`
	EnquiryDescription  *string    `gorm:"column:enquiry_description" json:"description"`
	EnquiryStatus       string     `gorm:"column:enquiry_status;size:40;not null" json:"status"`
	EnquiryNote         *string    `gorm:"column:enquiry_note" json:"note"`
	EnquiryCreatedAt    time.Time  `gorm:"column:enquiry_created_at;not null;autoCreateTime" json:"createdAt"`
	EnquiryUpdatedAt    time.Time  `gorm:"column:enquiry_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (EnquiryModel) TableName() string    { return "enquiries" }
func (EnquiryModel) TenantColumn() string { return "enquiry_school_id" }
func (EnquiryModel) KeyColumn() string    { return "enquiry_id" }
func (EnquiryModel) Label() string        { return "Enquiry" }

func (m *EnquiryModel) SetSchoolID(id uuid.UUID) { m.EnquirySchoolID = id }

func (m *EnquiryModel) BeforeCreate(*gorm.DB) error {
	if m.EnquiryID == uuid.Nil {
		m.EnquiryID = uuid.New()
	}
	return nil
}
