package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/homework/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type CreateHomeworkRequest struct {
	SessionID      *uuid.UUID       `json:"sessionId"`
	ClassSectionID uuid.UUID        `json:"classSectionId" validate:"required"`
	SubjectID      uuid.UUID        `json:"subjectId" validate:"required"`
	Title          string           `json:"title" validate:"required,max=200"`
	Description    *string          `json:"description"`
	HomeworkDate   *string          `json:"homeworkDate"`
	SubmissionDate string           `json:"submissionDate"`
	MaxMarks       *decimal.Decimal `json:"maxMarks"`
}

func (r *CreateHomeworkRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = helper.TrimPtr(r.Description)
}

// ToModel: homeworkDate kosong → hari ini; submissionDate wajib dan tidak boleh mendahului homeworkDate.
func (r *CreateHomeworkRequest) ToModel(sessionID, createdBy uuid.UUID, today time.Time) (*model.HomeworkModel, error) {
	hd, err := dbtime.OptionalDate("homeworkDate", r.HomeworkDate)
	if err != nil {
		return nil, err
	}
	if hd == nil {
		hd = &today
	}
	sd, err := dbtime.RequiredDate("submissionDate", r.SubmissionDate)
	if err != nil {
		return nil, err
	}
	if err := CheckDates(*hd, sd); err != nil {
		return nil, err
	}
	if err := checkMaxMarks(r.MaxMarks); err != nil {
		return nil, err
	}
	return &model.HomeworkModel{
		HomeworkSessionID:      sessionID,
		HomeworkClassSectionID: r.ClassSectionID,
		HomeworkSubjectID:      r.SubjectID,
		HomeworkTitle:          r.Title,
		HomeworkDescription:    r.Description,
		HomeworkDate:           *hd,
		HomeworkSubmissionDate: sd,
		HomeworkMaxMarks:       r.MaxMarks,
		HomeworkCreatedBy:      createdBy,
	}, nil
}

func CheckDates(homeworkDate, submissionDate time.Time) error {
	if submissionDate.Before(homeworkDate) {
		return helper.Validation("submissionDate", "submissionDate must not be before homeworkDate")
	}
	return nil
}

func checkMaxMarks(m *decimal.Decimal) error {
	if m != nil && !m.IsPositive() {
		return helper.Validation("maxMarks", "maxMarks must be greater than 0")
	}
	return nil
}

type UpdateHomeworkRequest struct {
	SubjectID      helper.PatchField[uuid.UUID]        `json:"subjectId"`
	Title          helper.PatchField[string]           `json:"title"`
	Description    helper.PatchField[*string]          `json:"description"`
	HomeworkDate   helper.PatchField[string]           `json:"homeworkDate"`
	SubmissionDate helper.PatchField[string]           `json:"submissionDate"`
	MaxMarks       helper.PatchField[*decimal.Decimal] `json:"maxMarks"`
}

func (r *UpdateHomeworkRequest) Normalize() {
	helper.TrimPatch(&r.Title)
	helper.TrimPatchPtr(&r.Description)
}

// Updates: urutan tanggal dicek setelah digabung dengan nilai yang tersimpan.
func (r *UpdateHomeworkRequest) Updates(cur *model.HomeworkModel) (map[string]any, error) {
	if r.Title.Present && r.Title.Get() == "" {
		return nil, helper.Validation("title", "title is required")
	}
	if r.SubjectID.Present && r.SubjectID.Get() == uuid.Nil {
		return nil, helper.Validation("subjectId", "subjectId is required")
	}
	if r.HomeworkDate.Present && strings.TrimSpace(r.HomeworkDate.Get()) == "" {
		return nil, helper.Validation("homeworkDate", "homeworkDate is required")
	}
	if r.SubmissionDate.Present && strings.TrimSpace(r.SubmissionDate.Get()) == "" {
		return nil, helper.Validation("submissionDate", "submissionDate is required")
	}
	if err := checkMaxMarks(r.MaxMarks.Get()); err != nil {
		return nil, err
	}
	u := map[string]any{}
	if err := dbtime.ApplyDate(u, "homework_date", "homeworkDate", r.HomeworkDate); err != nil {
		return nil, err
	}
	if err := dbtime.ApplyDate(u, "homework_submission_date", "submissionDate", r.SubmissionDate); err != nil {
		return nil, err
	}
	hd, sd := cur.HomeworkDate, cur.HomeworkSubmissionDate
	if v, ok := u["homework_date"].(time.Time); ok {
		hd = v
	}
	if v, ok := u["homework_submission_date"].(time.Time); ok {
		sd = v
	}
	if err := CheckDates(dbtime.DateOnly(hd), dbtime.DateOnly(sd)); err != nil {
		return nil, err
	}
	r.SubjectID.Apply(u, "homework_subject_id")
	r.Title.Apply(u, "homework_title")
	r.Description.Apply(u, "homework_description")
	r.MaxMarks.Apply(u, "homework_max_marks")
	return u, nil
}

/* ============================ Submissions ============================ */

type SubmitRequest struct {
	HomeworkID       uuid.UUID `json:"homeworkId" validate:"required"`
	StudentSessionID uuid.UUID `json:"studentSessionId" validate:"required"`
	Content          *string   `json:"content"`
}

func (r *SubmitRequest) Normalize() { r.Content = helper.TrimPtr(r.Content) }

type EvaluateRequest struct {
	Status   string           `json:"status" validate:"required,oneof=accepted rejected"`
	Marks    *decimal.Decimal `json:"marks"`
	Feedback *string          `json:"feedback"`
}

func (r *EvaluateRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Feedback = helper.TrimPtr(r.Feedback)
}

// Check marks terhadap maxMarks homework (nil = tanpa batas atas).
func (r *EvaluateRequest) Check(max *decimal.Decimal) error {
	if r.Marks == nil {
		return nil
	}
	if r.Marks.IsNegative() {
		return helper.Validation("marks", "marks must not be negative")
	}
	if max != nil && r.Marks.GreaterThan(*max) {
		return helper.Validation("marks", "marks must not exceed maxMarks")
	}
	return nil
}
