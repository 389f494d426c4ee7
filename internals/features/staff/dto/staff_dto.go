package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/staff/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type DepartmentRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (r *DepartmentRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

type CreateStaffRequest struct {
	EmployeeID    string     `json:"employeeId" validate:"omitempty,max=40"`
	UserID        *uuid.UUID `json:"userId"`
	RoleID        *uuid.UUID `json:"roleId"`
	DepartmentID  *uuid.UUID `json:"departmentId"`
	FirstName     string     `json:"firstName" validate:"required,max=80"`
	LastName      *string    `json:"lastName" validate:"omitempty,max=80"`
	Gender        *string    `json:"gender" validate:"omitempty,oneof=male female"`
	Email         *string    `json:"email" validate:"omitempty,email"`
	Phone         *string    `json:"phone" validate:"omitempty,max=40"`
	Designation   *string    `json:"designation" validate:"omitempty,max=80"`
	DateOfJoining *string    `json:"dateOfJoining"`
	IsActive      *bool      `json:"isActive"`
}

func (r *CreateStaffRequest) Normalize() {
	r.EmployeeID = strings.ToUpper(strings.TrimSpace(r.EmployeeID))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = helper.TrimPtr(r.LastName)
	r.Gender = helper.TrimPtr(r.Gender)
	if r.Gender != nil {
		g := strings.ToLower(*r.Gender)
		r.Gender = &g
	}
	r.Email = helper.TrimPtr(r.Email)
	r.Phone = helper.TrimPtr(r.Phone)
	r.Designation = helper.TrimPtr(r.Designation)
}

func (r *CreateStaffRequest) ToModel() (*model.StaffModel, error) {
	joined, err := dbtime.OptionalDate("dateOfJoining", r.DateOfJoining)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.StaffModel{
		StaffEmployeeID:    r.EmployeeID,
		StaffUserID:        r.UserID,
		StaffRoleID:        r.RoleID,
		StaffDepartmentID:  r.DepartmentID,
		StaffFirstName:     r.FirstName,
		StaffLastName:      r.LastName,
		StaffGender:        r.Gender,
		StaffEmail:         r.Email,
		StaffPhone:         r.Phone,
		StaffDesignation:   r.Designation,
		StaffDateOfJoining: joined,
		StaffIsActive:      active,
	}, nil
}

type UpdateStaffRequest struct {
	EmployeeID    helper.PatchField[string]    `json:"employeeId"`
	UserID        helper.PatchField[uuid.UUID] `json:"userId"`
	RoleID        helper.PatchField[uuid.UUID] `json:"roleId"`
	DepartmentID  helper.PatchField[uuid.UUID] `json:"departmentId"`
	FirstName     helper.PatchField[string]    `json:"firstName"`
	LastName      helper.PatchField[*string]   `json:"lastName"`
	Gender        helper.PatchField[*string]   `json:"gender"`
	Email         helper.PatchField[*string]   `json:"email"`
	Phone         helper.PatchField[*string]   `json:"phone"`
	Designation   helper.PatchField[*string]   `json:"designation"`
	DateOfJoining helper.PatchField[string]    `json:"dateOfJoining"`
	IsActive      helper.PatchField[bool]      `json:"isActive"`
}

func (r *UpdateStaffRequest) Normalize() {
	if r.EmployeeID.Value != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.EmployeeID.Value))
		r.EmployeeID.Value = &v
	}
	helper.TrimPatch(&r.FirstName)
	helper.TrimPatchPtr(&r.LastName)
	helper.TrimPatchPtr(&r.Gender)
	helper.TrimPatchPtr(&r.Email)
	helper.TrimPatchPtr(&r.Phone)
	helper.TrimPatchPtr(&r.Designation)
}

func (r *UpdateStaffRequest) Updates() (map[string]any, error) {
	if r.EmployeeID.Present && r.EmployeeID.Get() == "" {
		return nil, helper.Validation("employeeId", "employeeId is required")
	}
	if r.FirstName.Present && r.FirstName.Get() == "" {
		return nil, helper.Validation("firstName", "firstName is required")
	}
	if g := r.Gender.Get(); g != nil && *g != "male" && *g != "female" {
		return nil, helper.Validation("gender", "gender must be one of [male female]")
	}
	if e := r.Email.Get(); e != nil {
		if err := helper.Validator().Var(*e, "email"); err != nil {
			return nil, helper.Validation("email", "email must be a valid email")
		}
	}
	u := map[string]any{}
	r.EmployeeID.Apply(u, "staff_employee_id")
	r.UserID.Apply(u, "staff_user_id")
	r.RoleID.Apply(u, "staff_role_id")
	r.DepartmentID.Apply(u, "staff_department_id")
	r.FirstName.Apply(u, "staff_first_name")
	r.LastName.Apply(u, "staff_last_name")
	r.Gender.Apply(u, "staff_gender")
	r.Email.Apply(u, "staff_email")
	r.Phone.Apply(u, "staff_phone")
	r.Designation.Apply(u, "staff_designation")
	if r.IsActive.Set() {
		u["staff_is_active"] = r.IsActive.Get()
	}
	if err := dbtime.ApplyDate(u, "staff_date_of_joining", "dateOfJoining", r.DateOfJoining); err != nil {
		return nil, err
	}
	return u, nil
}
