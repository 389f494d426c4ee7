package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID        uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey" json:"id"`
	DepartmentSchoolID  uuid.UUID `gorm:"column:department_school_id;type:uuid;not null;uniqueIndex:uq_departments_school_name,priority:1" json:"schoolId"`
	DepartmentName      string    `gorm:"column:department_name;size:120;not null;uniqueIndex:uq_departments_school_name,priority:2" json:"name"`
	DepartmentCreatedAt time.Time `gorm:"column:department_created_at;not null;autoCreateTime" json:"createdAt"`
	DepartmentUpdatedAt time.Time `gorm:"column:department_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (DepartmentModel) TableName() string    { return "departments" }
func (DepartmentModel) TenantColumn() string { return "department_school_id" }
func (DepartmentModel) KeyColumn() string    { return "department_id" }
func (DepartmentModel) Label() string        { return "Department" }

func (m *DepartmentModel) SetSchoolID(id uuid.UUID) { m.DepartmentSchoolID = id }

func (m *DepartmentModel) BeforeCreate(*gorm.DB) error {
	if m.DepartmentID == uuid.Nil {
		m.DepartmentID = uuid.New()
	}
	return nil
}

type StaffModel struct {
	StaffID            uuid.UUID  `gorm:"column:staff_id;type:uuid;primaryKey" json:"id"`
	StaffSchoolID      uuid.UUID  `gorm:"column:staff_school_id;type:uuid;not null;uniqueIndex:uq_staff_school_employee,priority:1" json:"schoolId"`
	StaffEmployeeID    string     `gorm:"column:staff_employee_id;size:40;not null;uniqueIndex:uq_staff_school_employee,priority:2" json:"employeeId"`
	StaffUserID        *uuid.UUID `gorm:"column:staff_user_id;type:uuid" json:"userId"`
	StaffRoleID        *uuid.UUID `gorm:"column:staff_role_id;type:uuid;index" json:"roleId"`
	StaffDepartmentID  *uuid.UUID `gorm:"column:staff_department_id;type:uuid;index" json:"departmentId"`
	StaffFirstName     string     `gorm:"column:staff_first_name;size:80;not null" json:"firstName"`
	StaffLastName      *string    `gorm:"column:staff_last_name;size:80" json:"lastName"`
	StaffGender        *string    `gorm:"column:staff_gender;size:10" json:"gender"`
	StaffEmail         *string    `gorm:"column:staff_email;size:160" json:"email"`
	StaffPhone         *string    `gorm:"column:staff_phone;size:40" json:"phone"`
	StaffDesignation   *string    `gorm:"column:staff_designation;size:80" json:"designation"`
	StaffDateOfJoining *time.Time `gorm:"column:staff_date_of_joining;type:date" json:"dateOfJoining"`
	StaffIsActive      bool       `gorm:"column:staff_is_active;not null;default:true" json:"isActive"`
	StaffCreatedAt     time.Time  `gorm:"column:staff_created_at;not null;autoCreateTime" json:"createdAt"`
	StaffUpdatedAt     time.Time  `gorm:"column:staff_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (StaffModel) TableName() string    { return "staff" }
func (StaffModel) TenantColumn() string { return "staff_school_id" }
func (StaffModel) KeyColumn() string    { return "staff_id" }
func (StaffModel) Label() string        { return "Staff" }

func (m *StaffModel) SetSchoolID(id uuid.UUID) { m.StaffSchoolID = id }

func (m *StaffModel) BeforeCreate(*gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	return nil
}
