package helper

import "encoding/json"

/* =========================================================
   PATCH FIELD, tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// Set true kalau field dikirim dengan nilai non-null.
func (p PatchField[T]) Set() bool { return p.Present && p.Value != nil }

// Get mengembalikan nilai (zero value jika null/absent).
func (p PatchField[T]) Get() T {
	var zero T
	if p.Value == nil {
		return zero
	}
	return *p.Value
}

// Apply menulis ke map updates hanya bila field dikirim. null → nil (clear kolom).
func (p PatchField[T]) Apply(updates map[string]any, column string) {
	if !p.Present {
		return
	}
	if p.Value == nil {
		updates[column] = nil
		return
	}
	updates[column] = *p.Value
}
