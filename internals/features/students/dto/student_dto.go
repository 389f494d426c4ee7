package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type CreateStudentRequest struct {
	AdmissionNo      string  `json:"admissionNo" validate:"omitempty,max=40"`
	AdmissionDate    *string `json:"admissionDate"`
	FirstName        string  `json:"firstName" validate:"required,max=80"`
	LastName         *string `json:"lastName" validate:"omitempty,max=80"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=male female"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,max=40"`
	Address          *string `json:"address"`
	GuardianName     *string `json:"guardianName" validate:"omitempty,max=160"`
	GuardianPhone    *string `json:"guardianPhone" validate:"omitempty,max=40"`
	GuardianRelation *string `json:"guardianRelation" validate:"omitempty,max=40"`
	IsActive         *bool   `json:"isActive"`

	// enrol langsung saat admisi (opsional)
	ClassSectionID *uuid.UUID `json:"classSectionId"`
	SessionID      *uuid.UUID `json:"sessionId"`
	RollNo         *string    `json:"rollNo" validate:"omitempty,max=20"`
}

func (r *CreateStudentRequest) Normalize() {
	r.AdmissionNo = strings.TrimSpace(r.AdmissionNo)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = helper.TrimPtr(r.LastName)
	r.Gender = lowerPtr(r.Gender)
	r.Email = lowerPtr(r.Email)
	r.Phone = helper.TrimPtr(r.Phone)
	r.Address = helper.TrimPtr(r.Address)
	r.GuardianName = helper.TrimPtr(r.GuardianName)
	r.GuardianPhone = helper.TrimPtr(r.GuardianPhone)
	r.GuardianRelation = helper.TrimPtr(r.GuardianRelation)
	r.RollNo = helper.TrimPtr(r.RollNo)
}

func (r *CreateStudentRequest) ToModel() (*model.StudentModel, error) {
	admitted, err := dbtime.OptionalDate("admissionDate", r.AdmissionDate)
	if err != nil {
		return nil, err
	}
	dob, err := dbtime.OptionalDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.StudentModel{
		StudentAdmissionNo:      r.AdmissionNo,
		StudentAdmissionDate:    admitted,
		StudentFirstName:        r.FirstName,
		StudentLastName:         r.LastName,
		StudentGender:           r.Gender,
		StudentDateOfBirth:      dob,
		StudentEmail:            r.Email,
		StudentPhone:            r.Phone,
		StudentAddress:          r.Address,
		StudentGuardianName:     r.GuardianName,
		StudentGuardianPhone:    r.GuardianPhone,
		StudentGuardianRelation: r.GuardianRelation,
		StudentIsActive:         active,
	}, nil
}

// AdmissionYear tahun untuk nomor admisi: tanggal admisi bila ada, selain itu today.
func AdmissionYear(m *model.StudentModel, today time.Time) int {
	if m.StudentAdmissionDate != nil {
		return m.StudentAdmissionDate.Year()
	}
	return today.Year()
}

type UpdateStudentRequest struct {
	AdmissionNo      helper.PatchField[string]  `json:"admissionNo"`
	AdmissionDate    helper.PatchField[string]  `json:"admissionDate"`
	FirstName        helper.PatchField[string]  `json:"firstName"`
	LastName         helper.PatchField[*string] `json:"lastName"`
	Gender           helper.PatchField[*string] `json:"gender"`
	DateOfBirth      helper.PatchField[string]  `json:"dateOfBirth"`
	Email            helper.PatchField[*string] `json:"email"`
	Phone            helper.PatchField[*string] `json:"phone"`
	Address          helper.PatchField[*string] `json:"address"`
	GuardianName     helper.PatchField[*string] `json:"guardianName"`
	GuardianPhone    helper.PatchField[*string] `json:"guardianPhone"`
	GuardianRelation helper.PatchField[*string] `json:"guardianRelation"`
	IsActive         helper.PatchField[bool]    `json:"isActive"`
}

func (r *UpdateStudentRequest) Normalize() {
	helper.TrimPatch(&r.AdmissionNo)
	helper.TrimPatch(&r.FirstName)
	for _, p := range []*helper.PatchField[*string]{
		&r.LastName, &r.Gender, &r.Email, &r.Phone, &r.Address,
		&r.GuardianName, &r.GuardianPhone, &r.GuardianRelation,
	} {
		helper.TrimPatchPtr(p)
	}
	if r.Gender.Value != nil {
		*r.Gender.Value = lowerPtr(*r.Gender.Value)
	}
	if r.Email.Value != nil {
		*r.Email.Value = lowerPtr(*r.Email.Value)
	}
}

func (r *UpdateStudentRequest) Updates() (map[string]any, error) {
	if r.AdmissionNo.Present && r.AdmissionNo.Get() == "" {
		return nil, helper.Validation("admissionNo", "admissionNo is required")
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
	r.AdmissionNo.Apply(u, "student_admission_no")
	r.FirstName.Apply(u, "student_first_name")
	r.LastName.Apply(u, "student_last_name")
	r.Gender.Apply(u, "student_gender")
	r.Email.Apply(u, "student_email")
	r.Phone.Apply(u, "student_phone")
	r.Address.Apply(u, "student_address")
	r.GuardianName.Apply(u, "student_guardian_name")
	r.GuardianPhone.Apply(u, "student_guardian_phone")
	r.GuardianRelation.Apply(u, "student_guardian_relation")
	if r.IsActive.Set() {
		u["student_is_active"] = r.IsActive.Get()
	}
	if err := dbtime.ApplyDate(u, "student_admission_date", "admissionDate", r.AdmissionDate); err != nil {
		return nil, err
	}
	if err := dbtime.ApplyDate(u, "student_date_of_birth", "dateOfBirth", r.DateOfBirth); err != nil {
		return nil, err
	}
	return u, nil
}

/* ================= Enrollment ================= */

type EnrollRequest struct {
	ClassSectionID uuid.UUID  `json:"classSectionId" validate:"required"`
	SessionID      *uuid.UUID `json:"sessionId"`
	RollNo         *string    `json:"rollNo" validate:"omitempty,max=20"`
}

func (r *EnrollRequest) Normalize() { r.RollNo = helper.TrimPtr(r.RollNo) }

type UpdateStudentSessionRequest struct {
	ClassSectionID helper.PatchField[uuid.UUID] `json:"classSectionId"`
	RollNo         helper.PatchField[*string]   `json:"rollNo"`
}

func (r *UpdateStudentSessionRequest) Normalize() { helper.TrimPatchPtr(&r.RollNo) }

// StudentSessionView baris /api/student-sessions.
type StudentSessionView struct {
	ID             uuid.UUID `gorm:"column:student_session_id" json:"id"`
	StudentID      uuid.UUID `gorm:"column:student_id" json:"studentId"`
	AdmissionNo    string    `gorm:"column:student_admission_no" json:"admissionNo"`
	FirstName      string    `gorm:"column:student_first_name" json:"firstName"`
	LastName       *string   `gorm:"column:student_last_name" json:"lastName"`
	SessionID      uuid.UUID `gorm:"column:student_session_session_id" json:"sessionId"`
	ClassSectionID uuid.UUID `gorm:"column:student_session_class_section_id" json:"classSectionId"`
	ClassID        uuid.UUID `gorm:"column:class_id" json:"classId"`
	ClassName      string    `gorm:"column:class_name" json:"className"`
	SectionID      uuid.UUID `gorm:"column:section_id" json:"sectionId"`
	SectionName    string    `gorm:"column:section_name" json:"sectionName"`
	RollNo         *string   `gorm:"column:student_session_roll_no" json:"rollNo"`
}

func lowerPtr(p *string) *string {
	p = helper.TrimPtr(p)
	if p == nil {
		return nil
	}
	v := strings.ToLower(*p)
	return &v
}
