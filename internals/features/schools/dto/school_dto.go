package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	helper "schoolku_backend/internals/helpers"
)

type UpdateSchoolRequest struct {
	Name     helper.PatchField[string]            `json:"name" validate:"omitempty"`
	Address  helper.PatchField[*string]           `json:"address"`
	Phone    helper.PatchField[*string]           `json:"phone"`
	Email    helper.PatchField[*string]           `json:"email"`
	Locale   helper.PatchField[string]            `json:"locale"`
	Currency helper.PatchField[string]            `json:"currency"`
	Timezone helper.PatchField[string]            `json:"timezone"`
	Settings helper.PatchField[datatypes.JSONMap] `json:"settings"`
}

func (r *UpdateSchoolRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	helper.TrimPatch(&r.Locale)
	helper.TrimPatch(&r.Timezone)
	helper.TrimPatch(&r.Currency)
	if r.Currency.Value != nil {
		v := strings.ToUpper(*r.Currency.Value)
		r.Currency.Value = &v
	}
	helper.TrimPatchPtr(&r.Address)
	helper.TrimPatchPtr(&r.Phone)
	helper.TrimPatchPtr(&r.Email)
}

// Validate aturan field yang tidak bisa diekspresikan lewat tag.
func (r *UpdateSchoolRequest) Validate() error {
	if r.Name.Present && r.Name.Get() == "" {
		return helper.Validation("name", "name is required")
	}
	if r.Name.Set() && len(r.Name.Get()) > 160 {
		return helper.Validation("name", "name must be at most 160 characters")
	}
	if r.Locale.Present && r.Locale.Get() == "" {
		return helper.Validation("locale", "locale is required")
	}
	if r.Currency.Present && len(r.Currency.Get()) != 3 {
		return helper.Validation("currency", "currency must be a 3-letter code")
	}
	if r.Timezone.Present {
		if _, err := time.LoadLocation(r.Timezone.Get()); err != nil || r.Timezone.Get() == "" {
			return helper.Validation("timezone", "timezone is invalid")
		}
	}
	if r.Email.Set() {
		if e := r.Email.Get(); e != nil {
			if err := helper.Validator().Var(*e, "email"); err != nil {
				return helper.Validation("email", "email must be a valid email")
			}
		}
	}
	return nil
}

func (r *UpdateSchoolRequest) Updates() map[string]any {
	u := map[string]any{}
	r.Name.Apply(u, "school_name")
	r.Address.Apply(u, "school_address")
	r.Phone.Apply(u, "school_phone")
	r.Email.Apply(u, "school_email")
	r.Locale.Apply(u, "school_locale")
	r.Currency.Apply(u, "school_currency")
	r.Timezone.Apply(u, "school_timezone")
	if r.Settings.Present {
		s := r.Settings.Get()
		if s == nil {
			s = datatypes.JSONMap{}
		}
		u["school_settings"] = s
	}
	return u
}
