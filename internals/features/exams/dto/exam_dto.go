package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/exams/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type CreateExamRequest struct {
	SessionID   *uuid.UUID `json:"sessionId"`
	Name        string     `json:"name" validate:"required,max=120"`
	Description *string    `json:"description"`
}

func (r *CreateExamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = helper.TrimPtr(r.Description)
}

type UpdateExamRequest struct {
	Name        helper.PatchField[string]  `json:"name"`
	Description helper.PatchField[*string] `json:"description"`
}

func (r *UpdateExamRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	helper.TrimPatchPtr(&r.Description)
}

func (r *UpdateExamRequest) Updates() (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	u := map[string]any{}
	r.Name.Apply(u, "exam_name")
	r.Description.Apply(u, "exam_description")
	return u, nil
}

type CreateScheduleRequest struct {
	ClassSectionID uuid.UUID `json:"classSectionId" validate:"required"`
}

// ExamSubjectRequest dipakai untuk create dan replace (PUT).
type ExamSubjectRequest struct {
	SubjectID       uuid.UUID       `json:"subjectId" validate:"required"`
	Date            *string         `json:"date"`
	StartTime       *string         `json:"startTime"`
	DurationMinutes *int            `json:"durationMinutes" validate:"omitempty,min=1,max=1440"`
	Room            *string         `json:"room" validate:"omitempty,max=40"`
	MaxMarks        decimal.Decimal `json:"maxMarks"`
	MinMarks        decimal.Decimal `json:"minMarks"`
}

func (r *ExamSubjectRequest) Normalize() {
	r.Room = helper.TrimPtr(r.Room)
	r.StartTime = helper.TrimPtr(r.StartTime)
}

func (r *ExamSubjectRequest) ToModel(scheduleID uuid.UUID) (*model.ExamSubjectModel, error) {
	if !r.MaxMarks.IsPositive() {
		return nil, helper.Validation("maxMarks", "maxMarks must be greater than 0")
	}
	if r.MinMarks.IsNegative() {
		return nil, helper.Validation("minMarks", "minMarks must not be negative")
	}
	if r.MaxMarks.LessThan(r.MinMarks) {
		return nil, helper.Validation("maxMarks", "maxMarks must not be less than minMarks")
	}
	date, err := dbtime.OptionalDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	var start *dbtime.Tod
	if r.StartTime != nil {
		tod, err := dbtime.ParseTod(*r.StartTime)
		if err != nil {
			return nil, helper.Validation("startTime", "startTime must be a valid time (HH:MM)")
		}
		start = &tod
	}
	return &model.ExamSubjectModel{
		ExamSubjectExamScheduleID:  scheduleID,
		ExamSubjectSubjectID:       r.SubjectID,
		ExamSubjectDate:            date,
		ExamSubjectStartTime:       start,
		ExamSubjectDurationMinutes: r.DurationMinutes,
		ExamSubjectRoom:            r.Room,
		ExamSubjectMaxMarks:        r.MaxMarks,
		ExamSubjectMinMarks:        r.MinMarks,
	}, nil
}

type ResultRecord struct {
	StudentSessionID uuid.UUID        `json:"studentSessionId" validate:"required"`
	Marks            *decimal.Decimal `json:"marks"`
	IsAbsent         bool             `json:"isAbsent"`
	Note             *string          `json:"note" validate:"omitempty,max=500"`
}

type SaveResultsRequest struct {
	ExamSubjectID uuid.UUID      `json:"examSubjectId" validate:"required"`
	Records       []ResultRecord `json:"records" validate:"required,min=1,dive"`
}

func (r *SaveResultsRequest) Normalize() {
	for i := range r.Records {
		r.Records[i].Note = helper.TrimPtr(r.Records[i].Note)
		if r.Records[i].IsAbsent {
			r.Records[i].Marks = nil
		}
	}
}

// Check marks terhadap batas exam subject. Absent tidak butuh marks.
func (r *SaveResultsRequest) Check(maxMarks decimal.Decimal) error {
	for _, rec := range r.Records {
		if rec.IsAbsent {
			continue
		}
		switch {
		case rec.Marks == nil:
			return helper.Validation("marks", "marks is required")
		case rec.Marks.IsNegative():
			return helper.Validation("marks", "marks must not be negative")
		case rec.Marks.GreaterThan(maxMarks):
			return helper.Validation("marks", "marks must not exceed maxMarks")
		}
	}
	return nil
}

// Dedup: record terakhir per student session yang dipakai.
func (r *SaveResultsRequest) Dedup() []ResultRecord {
	last := lo.KeyBy(r.Records, func(x ResultRecord) uuid.UUID { return x.StudentSessionID })
	ids := lo.Uniq(lo.Map(r.Records, func(x ResultRecord, _ int) uuid.UUID { return x.StudentSessionID }))
	return lo.Map(ids, func(id uuid.UUID, _ int) ResultRecord { return last[id] })
}
