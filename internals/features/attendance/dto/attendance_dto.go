package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	helper "schoolku_backend/internals/helpers"
)

type StudentRecord struct {
	StudentSessionID uuid.UUID `json:"studentSessionId" validate:"required"`
	Status           string    `json:"status" validate:"required,oneof=present absent late half_day holiday"`
	Note             *string   `json:"note"`
}

type StudentAttendanceRequest struct {
	Date    string          `json:"date" validate:"required"`
	Records []StudentRecord `json:"records" validate:"required,min=1,dive"`
}

func (r *StudentAttendanceRequest) Normalize() {
	for i := range r.Records {
		r.Records[i].Status = strings.ToLower(strings.TrimSpace(r.Records[i].Status))
		r.Records[i].Note = helper.TrimPtr(r.Records[i].Note)
	}
}

// Dedup: record terakhir untuk id yang sama yang dipakai.
func (r *StudentAttendanceRequest) Dedup() []StudentRecord {
	last := lo.KeyBy(r.Records, func(x StudentRecord) uuid.UUID { return x.StudentSessionID })
	ids := lo.Uniq(lo.Map(r.Records, func(x StudentRecord, _ int) uuid.UUID { return x.StudentSessionID }))
	return lo.Map(ids, func(id uuid.UUID, _ int) StudentRecord { return last[id] })
}

type StaffRecord struct {
	StaffID uuid.UUID `json:"staffId" validate:"required"`
	Status  string    `json:"status" validate:"required,oneof=present absent late half_day holiday"`
	Note    *string   `json:"note"`
}

type StaffAttendanceRequest struct {
	Date    string        `json:"date" validate:"required"`
	Records []StaffRecord `json:"records" validate:"required,min=1,dive"`
}

func (r *StaffAttendanceRequest) Normalize() {
	for i := range r.Records {
		r.Records[i].Status = strings.ToLower(strings.TrimSpace(r.Records[i].Status))
		r.Records[i].Note = helper.TrimPtr(r.Records[i].Note)
	}
}

func (r *StaffAttendanceRequest) Dedup() []StaffRecord {
	last := lo.KeyBy(r.Records, func(x StaffRecord) uuid.UUID { return x.StaffID })
	ids := lo.Uniq(lo.Map(r.Records, func(x StaffRecord, _ int) uuid.UUID { return x.StaffID }))
	return lo.Map(ids, func(id uuid.UUID, _ int) StaffRecord { return last[id] })
}
