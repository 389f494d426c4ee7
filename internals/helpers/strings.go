package helper

import "strings"

// TrimPtr: trim; string kosong → nil.
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// TrimPatch normalisasi PatchField[string] yang dikirim; "" tetap "" supaya validator bisa menolak.
func TrimPatch(p *PatchField[string]) {
	if p.Value != nil {
		v := strings.TrimSpace(*p.Value)
		p.Value = &v
	}
}

// TrimPatchPtr untuk kolom nullable: "" dianggap null.
func TrimPatchPtr(p *PatchField[*string]) {
	if p.Value != nil {
		*p.Value = TrimPtr(*p.Value)
	}
}
