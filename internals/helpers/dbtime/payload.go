package dbtime

import (
	"strings"
	"time"

	helper "schoolku_backend/internals/helpers"
)

func invalidDate(field string) error {
	return helper.Validation(field, field+" must be a valid date (YYYY-MM-DD)")
}

// RequiredDate parse tanggal wajib dari payload.
func RequiredDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, helper.Validation(field, field+" is required")
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, invalidDate(field)
	}
	return t, nil
}

// OptionalDate: nil/"" → nil, selain itu harus valid.
func OptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, invalidDate(field)
	}
	return &t, nil
}

// ApplyDate menulis PatchField tanggal ke map updates; null/"" menghapus kolom.
func ApplyDate(updates map[string]any, column, field string, p helper.PatchField[string]) error {
	if !p.Present {
		return nil
	}
	if strings.TrimSpace(p.Get()) == "" {
		updates[column] = nil
		return nil
	}
	t, err := ParseDate(p.Get())
	if err != nil {
		return invalidDate(field)
	}
	updates[column] = t
	return nil
}
