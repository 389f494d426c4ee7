package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/users/roles/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateRoleRequest struct {
	Name          string      `json:"name" validate:"required,max=80"`
	Slug          string      `json:"slug" validate:"omitempty,max=80"`
	Description   *string     `json:"description"`
	PermissionIDs []uuid.UUID `json:"permissionIds"`
}

func (r *CreateRoleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = helper.Slugify(r.Slug, 80)
	if r.Slug == "" {
		r.Slug = helper.Slugify(r.Name, 80)
	}
	r.Description = helper.TrimPtr(r.Description)
}

func (r *CreateRoleRequest) ToModel() *model.RoleModel {
	return &model.RoleModel{
		RoleName:        r.Name,
		RoleSlug:        r.Slug,
		RoleDescription: r.Description,
	}
}

type UpdateRoleRequest struct {
	Name        helper.PatchField[string]  `json:"name"`
	Slug        helper.PatchField[string]  `json:"slug"`
	Description helper.PatchField[*string] `json:"description"`
}

func (r *UpdateRoleRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	if r.Slug.Value != nil {
		v := helper.Slugify(*r.Slug.Value, 80)
		r.Slug.Value = &v
	}
	helper.TrimPatchPtr(&r.Description)
}

func (r *UpdateRoleRequest) Validate() error {
	if r.Name.Present && r.Name.Get() == "" {
		return helper.Validation("name", "name is required")
	}
	if len(r.Name.Get()) > 80 {
		return helper.Validation("name", "name must be at most 80 characters")
	}
	if r.Slug.Present && r.Slug.Get() == "" {
		return helper.Validation("slug", "slug is required")
	}
	return nil
}

// Renames true bila name/slug benar-benar berubah.
func (r *UpdateRoleRequest) Renames(cur *model.RoleModel) bool {
	return (r.Name.Set() && r.Name.Get() != cur.RoleName) || (r.Slug.Set() && r.Slug.Get() != cur.RoleSlug)
}

func (r *UpdateRoleRequest) Updates() map[string]any {
	u := map[string]any{}
	r.Name.Apply(u, "role_name")
	r.Slug.Apply(u, "role_slug")
	r.Description.Apply(u, "role_description")
	return u
}

type SetPermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permissionIds" validate:"required"`
}

type RoleResponse struct {
	model.RoleModel
	Permissions []model.PermissionModel `json:"permissions"`
}
