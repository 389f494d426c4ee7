package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HomeworkModel struct {
	HomeworkID             uuid.UUID        `gorm:"column:homework_id;type:uuid;primaryKey" json:"id"`
	HomeworkSchoolID       uuid.UUID        `gorm:"column:homework_school_id;type:uuid;not null;index" json:"schoolId"`
	HomeworkSessionID      uuid.UUID        `gorm:"column:homework_session_id;type:uuid;not null;index" json:"sessionId"`
	HomeworkClassSectionID uuid.UUID        `gorm:"column:homework_class_section_id;type:uuid;not null;index" json:"classSectionId"`
	HomeworkSubjectID      uuid.UUID        `gorm:"column:homework_subject_id;type:uuid;not null" json:"subjectId"`
	HomeworkTitle          string           `gorm:"column:homework_title;size:200;not null" json:"title"`
	HomeworkDescription    *string          `gorm:"column:homework_description" json:"description"`
	HomeworkDate           time.Time        `gorm:"column:homework_date;type:date;not null" json:"homeworkDate"`
	HomeworkSubmissionDate time.Time        `gorm:"column:homework_submission_date;type:date;not null" json:"submissionDate"`
	HomeworkMaxMarks       *decimal.Decimal `gorm:"column:homework_max_marks;type:numeric(7,2)" json:"maxMarks"`
	HomeworkCreatedBy      uuid.UUID        `gorm:"column:homework_created_by;type:uuid;not null" json:"createdBy"`
	HomeworkCreatedAt      time.Time        `gorm:"column:homework_created_at;not null;autoCreateTime" json:"createdAt"`
	HomeworkUpdatedAt      time.Time        `gorm:"column:homework_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (HomeworkModel) TableName() string    { return "homeworks" }
func (HomeworkModel) TenantColumn() string { return "homework_school_id" }
func (HomeworkModel) KeyColumn() string    { return "homework_id" }
func (HomeworkModel) Label() string        { return "Homework" }

func (m *HomeworkModel) SetSchoolID(id uuid.UUID) { m.HomeworkSchoolID = id }

func (m *HomeworkModel) BeforeCreate(*gorm.DB) error {
	if m.HomeworkID == uuid.Nil {
		m.HomeworkID = uuid.New()
	}
	return nil
}

const (
	SubmissionPending  = "pending"
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
)

// HomeworkSubmissionModel: pending → accepted | rejected (terminal).
type HomeworkSubmissionModel struct {
	HomeworkSubmissionID               uuid.UUID        `gorm:"column:homework_submission_id;type:uuid;primaryKey" json:"id"`
	HomeworkSubmissionSchoolID         uuid.UUID        `gorm:"column:homework_submission_school_id;type:uuid;not null;index" json:"schoolId"`
	HomeworkSubmissionHomeworkID       uuid.UUID        `gorm:"column:homework_submission_homework_id;type:uuid;not null;uniqueIndex:uq_homework_submissions_pair,priority:1" json:"homeworkId"`
	HomeworkSubmissionStudentSessionID uuid.UUID        `gorm:"column:homework_submission_student_session_id;type:uuid;not null;uniqueIndex:uq_homework_submissions_pair,priority:2" json:"studentSessionId"`
	HomeworkSubmissionContent          *string          `gorm:"column:homework_submission_content" json:"content"`
	HomeworkSubmissionStatus           string           `gorm:"column:homework_submission_status;size:16;not null;default:'pending'" json:"status"`
	HomeworkSubmissionMarks            *decimal.Decimal `gorm:"column:homework_submission_marks;type:numeric(7,2)" json:"marks"`
	HomeworkSubmissionFeedback         *string          `gorm:"column:homework_submission_feedback" json:"feedback"`
	HomeworkSubmissionEvaluatedBy      *uuid.UUID       `gorm:"column:homework_submission_evaluated_by;type:uuid" json:"evaluatedBy"`
	HomeworkSubmissionEvaluatedAt      *time.Time       `gorm:"column:homework_submission_evaluated_at" json:"evaluatedAt"`
	HomeworkSubmissionSubmittedAt      time.Time        `gorm:"column:homework_submission_submitted_at;not null" json:"submittedAt"`
	HomeworkSubmissionUpdatedAt        time.Time        `gorm:"column:homework_submission_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (HomeworkSubmissionModel) TableName() string    { return "homework_submissions" }
func (HomeworkSubmissionModel) TenantColumn() string { return "homework_submission_school_id" }
func (HomeworkSubmissionModel) KeyColumn() string    { return "homework_submission_id" }
func (HomeworkSubmissionModel) Label() string        { return "Submission" }

func (m *HomeworkSubmissionModel) SetSchoolID(id uuid.UUID) { m.HomeworkSubmissionSchoolID = id }

func (m *HomeworkSubmissionModel) BeforeCreate(*gorm.DB) error {
	if m.HomeworkSubmissionID == uuid.Nil {
		m.HomeworkSubmissionID = uuid.New()
	}
	return nil
}
