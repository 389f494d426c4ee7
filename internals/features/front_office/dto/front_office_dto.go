package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/front_office/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

/* ============================ Complaints ============================ */

type CreateComplaintRequest struct {
	ComplaintType *string    `json:"complaintType" validate:"omitempty,max=80"`
	Source        *string    `json:"source" validate:"omitempty,max=80"`
	Name          string     `json:"name" validate:"required,max=160"`
	Phone         *string    `json:"phone" validate:"omitempty,max=40"`
	Date          *string    `json:"date"`
	Description   *string    `json:"description"`
	ActionTaken   *string    `json:"actionTaken"`
	AssignedTo    *uuid.UUID `json:"assignedTo"`
	Status        string     `json:"status" validate:"max=40"`
	Note          *string    `json:"note"`
}

func (r *CreateComplaintRequest) Normalize() {
	r.ComplaintType = helper.TrimPtr(r.ComplaintType)
	r.Source = helper.TrimPtr(r.Source)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = helper.TrimPtr(r.Phone)
	r.Description = helper.TrimPtr(r.Description)
	r.ActionTaken = helper.TrimPtr(r.ActionTaken)
	r.Note = helper.TrimPtr(r.Note)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = model.DefaultStatus
	}
}

// ToModel: date kosong → hari ini (zona sekolah).
func (r *CreateComplaintRequest) ToModel(today time.Time) (*model.ComplaintModel, error) {
	d, err := dbtime.OptionalDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &today
	}
	return &model.ComplaintModel{
		ComplaintType:        r.ComplaintType,
		ComplaintSource:      r.Source,
		ComplainantName:      r.Name,
		ComplainantPhone:     r.Phone,
		ComplaintDate:        *d,
		ComplaintDescription: r.Description,
		ComplaintActionTaken: r.ActionTaken,
		ComplaintAssignedTo:  r.AssignedTo,
		ComplaintStatus:      r.Status,
		ComplaintNote:        r.Note,
	}, nil
}

type UpdateComplaintRequest struct {
	ComplaintType helper.PatchField[*string]    `json:"complaintType"`
	Source        helper.PatchField[*string]    `json:"source"`
	Name          helper.PatchField[string]     `json:"name"`
	Phone         helper.PatchField[*string]    `json:"phone"`
	Date          helper.PatchField[string]     `json:"date"`
	Description   helper.PatchField[*string]    `json:"description"`
	ActionTaken   helper.PatchField[*string]    `json:"actionTaken"`
	AssignedTo    helper.PatchField[*uuid.UUID] `json:"assignedTo"`
	Note          helper.PatchField[*string]    `json:"note"`
}

func (r *UpdateComplaintRequest) Normalize() {
	helper.TrimPatchPtr(&r.ComplaintType)
	helper.TrimPatchPtr(&r.Source)
	helper.TrimPatch(&r.Name)
	helper.TrimPatchPtr(&r.Phone)
	helper.TrimPatchPtr(&r.Description)
	helper.TrimPatchPtr(&r.ActionTaken)
	helper.TrimPatchPtr(&r.Note)
}

func (r *UpdateComplaintRequest) Updates() (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	if r.Date.Present && strings.TrimSpace(r.Date.Get()) == "" {
		return nil, helper.Validation("date", "date is required")
	}
	u := map[string]any{}
	if err := dbtime.ApplyDate(u, "complaint_date", "date", r.Date); err != nil {
		return nil, err
	}
	r.ComplaintType.Apply(u, "complaint_type")
	r.Source.Apply(u, "complaint_source")
	r.Name.Apply(u, "complaint_complainant_name")
	r.Phone.Apply(u, "complaint_complainant_phone")
	r.Description.Apply(u, "complaint_description")
	r.ActionTaken.Apply(u, "complaint_action_taken")
	r.AssignedTo.Apply(u, "complaint_assigned_to")
	r.Note.Apply(u, "complaint_note")
	return u, nil
}

/* ============================= Enquiries ============================ */

type CreateEnquiryRequest struct {
	Name         string     `json:"name" validate:"required,max=160"`
	Phone        *string    `json:"phone" validate:"omitempty,max=40"`
	Email        *string    `json:"email" validate:"omitempty,email,max=160"`
	Source       *string    `json:"source" validate:"omitempty,max=80"`
	ClassID      *uuid.UUID `json:"classId"`
	Date         *string    `json:"date"`
	NextFollowUp *string    `json:"nextFollowUp"`
	Description  *string    `json:"description"`
	Status       string     `json:"status" validate:"max=40"`
	Note         *string    `json:"note"`
}

func (r *CreateEnquiryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = helper.TrimPtr(r.Phone)
	r.Email = helper.TrimPtr(r.Email)
	if r.Email != nil {
		v := strings.ToLower(*r.Email)
		r.Email = &v
	}
	r.Source = helper.TrimPtr(r.Source)
	r.Description = helper.TrimPtr(r.Description)
	r.Note = helper.TrimPtr(r.Note)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = model.DefaultStatus
	}
}

func (r *CreateEnquiryRequest) ToModel(today time.Time) (*model.EnquiryModel, error) {
	d, err := dbtime.OptionalDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &today
	}
	next, err := dbtime.OptionalDate("nextFollowUp", r.NextFollowUp)
	if err != nil {
		return nil, err
	}
	if next != nil && next.Before(*d) {
		return nil, helper.Validation("nextFollowUp", "nextFollowUp must not be before date")
	}
	return &model.EnquiryModel{
		EnquiryName:         r.Name,
		EnquiryPhone:        r.Phone,
		EnquiryEmail:        r.Email,
		EnquirySource:       r.Source,
		EnquiryClassID:      r.ClassID,
		EnquiryDate:         *d,
		EnquiryNextFollowUp: next,
		EnquiryDescription:  r.Description,
		EnquiryStatus:       r.Status,
		EnquiryNote:         r.Note,
	}, nil
}

type UpdateEnquiryRequest struct {
	Name         helper.PatchField[string]     `json:"name"`
	Phone        helper.PatchField[*string]    `json:"phone"`
	Email        helper.PatchField[*string]    `json:"email"`
	Source       helper.PatchField[*string]    `json:"source"`
	ClassID      helper.PatchField[*uuid.UUID] `json:"classId"`
	Date         helper.PatchField[string]     `json:"date"`
	NextFollowUp helper.PatchField[string]     `json:"nextFollowUp"`
	Description  helper.PatchField[*string]    `json:"description"`
	Note         helper.PatchField[*string]    `json:"note"`
}

func (r *UpdateEnquiryRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	helper.TrimPatchPtr(&r.Phone)
	helper.TrimPatchPtr(&r.Email)
	helper.TrimPatchPtr(&r.Source)
	helper.TrimPatchPtr(&r.Description)
	helper.TrimPatchPtr(&r.Note)
}

func (r *UpdateEnquiryRequest) Updates() (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	if r.Date.Present && strings.TrimSpace(r.Date.Get()) == "" {
		return nil, helper.Validation("date", "date is required")
	}
	if e := r.Email.Get(); e != nil {
		if err := helper.Validator().Var(*e, "email"); err != nil {
			return nil, helper.Validation("email", "email must be a valid email")
		}
	}
	u := map[string]any{}
	if err := dbtime.ApplyDate(u, "enquiry_date", "date", r.Date); err != nil {
		return nil, err
	}
	if err := dbtime.ApplyDate(u, "enquiry_next_follow_up", "nextFollowUp", r.NextFollowUp); err != nil {
		return nil, err
	}
	r.Name.Apply(u, "enquiry_name")
	r.Phone.Apply(u, "enquiry_phone")
	r.Email.Apply(u, "enquiry_email")
	r.Source.Apply(u, "enquiry_source")
	r.ClassID.Apply(u, "enquiry_class_id")
	r.Description.Apply(u, "enquiry_description")
	r.Note.Apply(u, "enquiry_note")
	return u, nil
}

/* =============================== Status ============================= */

// StatusRequest: status bebas, asal tidak kosong.
type StatusRequest struct {
	Status string  `json:"status" validate:"required,max=40"`
	Note   *string `json:"note"`
}

func (r *StatusRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
	r.Note = helper.TrimPtr(r.Note)
}
