package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=60,excludes=@"`
	Email    string     `json:"email" validate:"required,email,max=160"`
	FullName string     `json:"fullName" validate:"required,max=160"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	RoleID   *uuid.UUID `json:"roleId"`
	IsActive *bool      `json:"isActive"`
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
}

func (r *CreateUserRequest) ToModel(hash string) *model.UserModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.UserModel{
		UserRoleID:       r.RoleID,
		UserUsername:     r.Username,
		UserEmail:        r.Email,
		UserFullName:     r.FullName,
		UserPasswordHash: hash,
		UserIsActive:     active,
	}
}

type UpdateUserRequest struct {
	Username helper.PatchField[string]     `json:"username"`
	Email    helper.PatchField[string]     `json:"email"`
	FullName helper.PatchField[string]     `json:"fullName"`
	Password helper.PatchField[string]     `json:"password"`
	RoleID   helper.PatchField[uuid.UUID]  `json:"roleId"`
	IsActive helper.PatchField[bool]       `json:"isActive"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Username.Value != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Username.Value))
		r.Username.Value = &v
	}
	if r.Email.Value != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email.Value))
		r.Email.Value = &v
	}
	helper.TrimPatch(&r.FullName)
}

func (r *UpdateUserRequest) Validate() error {
	if r.Username.Present {
		if n := len(r.Username.Get()); n < 3 || n > 60 {
			return helper.Validation("username", "username must be between 3 and 60 characters")
		}
		if strings.Contains(r.Username.Get(), "@") {
			return helper.Validation("username", `username must not contain "@"`)
		}
	}
	if r.Email.Present {
		if err := helper.Validator().Var(r.Email.Get(), "required,email,max=160"); err != nil {
			return helper.Validation("email", "email must be a valid email")
		}
	}
	if r.FullName.Present && r.FullName.Get() == "" {
		return helper.Validation("fullName", "fullName is required")
	}
	if r.Password.Present {
		if n := len(r.Password.Get()); n < 8 || n > 72 {
			return helper.Validation("password", "password must be between 8 and 72 characters")
		}
	}
	if r.IsActive.Present && r.IsActive.Value == nil {
		return helper.Validation("isActive", "isActive must be a boolean")
	}
	return nil
}

// Updates tanpa password; hash diisi controller.
func (r *UpdateUserRequest) Updates() map[string]any {
	u := map[string]any{}
	r.Username.Apply(u, "user_username")
	r.Email.Apply(u, "user_email")
	r.FullName.Apply(u, "user_full_name")
	r.RoleID.Apply(u, "user_role_id")
	r.IsActive.Apply(u, "user_is_active")
	return u
}
