package dto

import (
	"strings"

	"schoolku_backend/internals/features/academics/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Code string `json:"code" validate:"required,max=40"`
	Type string `json:"type" validate:"omitempty,oneof=theory practical"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = model.SubjectTheory
	}
}

func (r *CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{SubjectName: r.Name, SubjectCode: r.Code, SubjectType: r.Type}
}

type UpdateSubjectRequest struct {
	Name helper.PatchField[string] `json:"name"`
	Code helper.PatchField[string] `json:"code"`
	Type helper.PatchField[string] `json:"type"`
}

func (r *UpdateSubjectRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	if r.Code.Value != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code.Value))
		r.Code.Value = &v
	}
	if r.Type.Value != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Type.Value))
		r.Type.Value = &v
	}
}

func (r *UpdateSubjectRequest) Validate() error {
	if r.Name.Present && r.Name.Get() == "" {
		return helper.Validation("name", "name is required")
	}
	if r.Code.Present && r.Code.Get() == "" {
		return helper.Validation("code", "code is required")
	}
	if r.Type.Present {
		if t := r.Type.Get(); t != model.SubjectTheory && t != model.SubjectPractical {
			return helper.Validation("type", "type must be one of [theory practical]")
		}
	}
	return nil
}

func (r *UpdateSubjectRequest) Updates() map[string]any {
	u := map[string]any{}
	r.Name.Apply(u, "subject_name")
	r.Code.Apply(u, "subject_code")
	r.Type.Apply(u, "subject_type")
	return u
}
