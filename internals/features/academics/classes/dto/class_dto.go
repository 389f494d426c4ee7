package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"schoolku_backend/internals/features/academics/classes/model"
	helper "schoolku_backend/internals/helpers"
)

/* ================= Sections ================= */

type SectionRequest struct {
	Name string `json:"name" validate:"required,max=40"`
}

func (r *SectionRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

/* ================= Classes ================= */

type CreateClassRequest struct {
	Name        string      `json:"name" validate:"required,max=80"`
	Description *string     `json:"description"`
	Order       int         `json:"order" validate:"gte=0"`
	SectionIDs  []uuid.UUID `json:"sectionIds"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = helper.TrimPtr(r.Description)
	r.SectionIDs = lo.Uniq(r.SectionIDs)
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassName:        r.Name,
		ClassDescription: r.Description,
		ClassOrder:       r.Order,
	}
}

type UpdateClassRequest struct {
	Name        helper.PatchField[string]      `json:"name"`
	Description helper.PatchField[*string]     `json:"description"`
	Order       helper.PatchField[int]         `json:"order"`
	SectionIDs  helper.PatchField[[]uuid.UUID] `json:"sectionIds"`
}

func (r *UpdateClassRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	helper.TrimPatchPtr(&r.Description)
	if r.SectionIDs.Value != nil {
		v := lo.Uniq(*r.SectionIDs.Value)
		r.SectionIDs.Value = &v
	}
}

func (r *UpdateClassRequest) Validate() error {
	if r.Name.Present && r.Name.Get() == "" {
		return helper.Validation("name", "name is required")
	}
	if len(r.Name.Get()) > 80 {
		return helper.Validation("name", "name must be at most 80 characters")
	}
	if r.Order.Get() < 0 {
		return helper.Validation("order", "order must be greater than or equal to 0")
	}
	return nil
}

func (r *UpdateClassRequest) Updates() map[string]any {
	u := map[string]any{}
	r.Name.Apply(u, "class_name")
	r.Description.Apply(u, "class_description")
	if r.Order.Set() {
		u["class_order"] = r.Order.Get()
	}
	return u
}
