package dto

import (
	"strings"
	"time"

	"schoolku_backend/internals/features/academics/sessions/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type CreateSessionRequest struct {
	Name      string  `json:"name" validate:"required,max=60"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsActive  bool    `json:"isActive"`
}

func (r *CreateSessionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateSessionRequest) ToModel() (*model.AcademicSessionModel, error) {
	start, err := dbtime.OptionalDate("startDate", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dbtime.OptionalDate("endDate", r.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return &model.AcademicSessionModel{
		AcademicSessionName:      r.Name,
		AcademicSessionStartDate: start,
		AcademicSessionEndDate:   end,
	}, nil
}

type UpdateSessionRequest struct {
	Name      helper.PatchField[string] `json:"name"`
	StartDate helper.PatchField[string] `json:"startDate"`
	EndDate   helper.PatchField[string] `json:"endDate"`
	IsActive  helper.PatchField[bool]   `json:"isActive"`
}

func (r *UpdateSessionRequest) Normalize() {
	helper.TrimPatch(&r.Name)
}

// Updates memvalidasi dan membangun patch; cur dipakai untuk cek rentang tanggal.
// isActive tidak ikut: aktivasi lewat service.Activate.
func (r *UpdateSessionRequest) Updates(cur *model.AcademicSessionModel) (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	if len(r.Name.Get()) > 60 {
		return nil, helper.Validation("name", "name must be at most 60 characters")
	}
	u := map[string]any{}
	r.Name.Apply(u, "academic_session_name")
	if err := dbtime.ApplyDate(u, "academic_session_start_date", "startDate", r.StartDate); err != nil {
		return nil, err
	}
	if err := dbtime.ApplyDate(u, "academic_session_end_date", "endDate", r.EndDate); err != nil {
		return nil, err
	}

	start, end := cur.AcademicSessionStartDate, cur.AcademicSessionEndDate
	if v, ok := u["academic_session_start_date"]; ok {
		start = asTime(v)
	}
	if v, ok := u["academic_session_end_date"]; ok {
		end = asTime(v)
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if r.IsActive.Set() && !r.IsActive.Get() {
		u["academic_session_is_active"] = false
	}
	return u, nil
}

func asTime(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return helper.Validation("endDate", "endDate must not be before startDate")
	}
	return nil
}
