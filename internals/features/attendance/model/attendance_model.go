package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusHoliday = "holiday"
)

// StudentAttendanceModel satu baris per (student_session, tanggal).
type StudentAttendanceModel struct {
	StudentAttendanceID               uuid.UUID  `gorm:"column:student_attendance_id;type:uuid;primaryKey" json:"id"`
	StudentAttendanceSchoolID         uuid.UUID  `gorm:"column:student_attendance_school_id;type:uuid;not null;index" json:"schoolId"`
	StudentAttendanceStudentSessionID uuid.UUID  `gorm:"column:student_attendance_student_session_id;type:uuid;not null;uniqueIndex:uq_student_attendance_day,priority:1" json:"studentSessionId"`
	StudentAttendanceDate             time.Time  `gorm:"column:student_attendance_date;type:date;not null;uniqueIndex:uq_student_attendance_day,priority:2" json:"date"`
	StudentAttendanceStatus           string     `gorm:"column:student_attendance_status;size:16;not null" json:"status"`
	StudentAttendanceNote             *string    `gorm:"column:student_attendance_note" json:"note"`
	StudentAttendanceRecordedBy       *uuid.UUID `gorm:"column:student_attendance_recorded_by;type:uuid" json:"recordedBy"`
	StudentAttendanceCreatedAt        time.Time  `gorm:"column:student_attendance_created_at;not null;autoCreateTime" json:"createdAt"`
	StudentAttendanceUpdatedAt        time.Time  `gorm:"column:student_attendance_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (StudentAttendanceModel) TableName() string    { return "student_attendances" }
func (StudentAttendanceModel) TenantColumn() string { return "student_attendance_school_id" }
func (StudentAttendanceModel) KeyColumn() string    { return "student_attendance_id" }
func (StudentAttendanceModel) Label() string        { return "Attendance" }

func (m *StudentAttendanceModel) SetSchoolID(id uuid.UUID) { m.StudentAttendanceSchoolID = id }

func (m *StudentAttendanceModel) BeforeCreate(*gorm.DB) error {
	if m.StudentAttendanceID == uuid.Nil {
		m.StudentAttendanceID = uuid.New()
	}
	return nil
}

type StaffAttendanceModel struct {
	StaffAttendanceID         uuid.UUID  `gorm:"column:staff_attendance_id;type:uuid;primaryKey" json:"id"`
	StaffAttendanceSchoolID   uuid.UUID  `gorm:"column:staff_attendance_school_id;type:uuid;not null;index" json:"schoolId"`
	StaffAttendanceStaffID    uuid.UUID  `gorm:"column:staff_attendance_staff_id;type:uuid;not null;uniqueIndex:uq_staff_attendance_day,priority:1" json:"staffId"`
	StaffAttendanceDate       time.Time  `gorm:"column:staff_attendance_date;type:date;not null;uniqueIndex:uq_staff_attendance_day,priority:2" json:"date"`
	StaffAttendanceStatus     string     `gorm:"column:staff_attendance_status;size:16;not null" json:"status"`
	StaffAttendanceNote       *string    `gorm:"column:staff_attendance_note" json:"note"`
	StaffAttendanceRecordedBy *uuid.UUID `gorm:"column:staff_attendance_recorded_by;type:uuid" json:"recordedBy"`
	StaffAttendanceCreatedAt  time.Time  `gorm:"column:staff_attendance_created_at;not null;autoCreateTime" json:"createdAt"`
	StaffAttendanceUpdatedAt  time.Time  `gorm:"column:staff_attendance_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (StaffAttendanceModel) TableName() string    { return "staff_attendances" }
func (StaffAttendanceModel) TenantColumn() string { return "staff_attendance_school_id" }
func (StaffAttendanceModel) KeyColumn() string    { return "staff_attendance_id" }
func (StaffAttendanceModel) Label() string        { return "Staff attendance" }

func (m *StaffAttendanceModel) SetSchoolID(id uuid.UUID) { m.StaffAttendanceSchoolID = id }

func (m *StaffAttendanceModel) BeforeCreate(*gorm.DB) error {
	if m.StaffAttendanceID == uuid.Nil {
		m.StaffAttendanceID = uuid.New()
	}
	return nil
}
