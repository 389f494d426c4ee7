package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolku_backend/internals/helpers/dbtime"
)

type ExamModel struct {
	ExamID          uuid.UUID `gorm:"column:exam_id;type:uuid;primaryKey" json:"id"`
	ExamSchoolID    uuid.UUID `gorm:"column:exam_school_id;type:uuid;not null;index" json:"schoolId"`
	ExamSessionID   uuid.UUID `gorm:"column:exam_session_id;type:uuid;not null;uniqueIndex:uq_exams_session_name,priority:1" json:"sessionId"`
	ExamName        string    `gorm:"column:exam_name;size:120;not null;uniqueIndex:uq_exams_session_name,priority:2" json:"name"`
	ExamDescription *string   `gorm:"column:exam_description" json:"description"`
	ExamCreatedAt   time.Time `gorm:"column:exam_created_at;not null;autoCreateTime" json:"createdAt"`
	ExamUpdatedAt   time.Time `gorm:"column:exam_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (ExamModel) TableName() string    { return "exams" }
func (ExamModel) TenantColumn() string { return "exam_school_id" }
func (ExamModel) KeyColumn() string    { return "exam_id" }
func (ExamModel) Label() string        { return "Exam" }

func (m *ExamModel) SetSchoolID(id uuid.UUID) { m.ExamSchoolID = id }

func (m *ExamModel) BeforeCreate(*gorm.DB) error {
	if m.ExamID == uuid.Nil {
		m.ExamID = uuid.New()
	}
	return nil
}

// ExamScheduleModel: exam dijadwalkan untuk satu class-section.
type ExamScheduleModel struct {
	ExamScheduleID             uuid.UUID `gorm:"column:exam_schedule_id;type:uuid;primaryKey" json:"id"`
	ExamScheduleSchoolID       uuid.UUID `gorm:"column:exam_schedule_school_id;type:uuid;not null;index" json:"schoolId"`
	ExamScheduleExamID         uuid.UUID `gorm:"column:exam_schedule_exam_id;type:uuid;not null;uniqueIndex:uq_exam_schedules_pair,priority:1" json:"examId"`
	ExamScheduleClassSectionID uuid.UUID `gorm:"column:exam_schedule_class_section_id;type:uuid;not null;uniqueIndex:uq_exam_schedules_pair,priority:2" json:"classSectionId"`
	ExamScheduleCreatedAt      time.Time `gorm:"column:exam_schedule_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (ExamScheduleModel) TableName() string    { return "exam_schedules" }
func (ExamScheduleModel) TenantColumn() string { return "exam_schedule_school_id" }
func (ExamScheduleModel) KeyColumn() string    { return "exam_schedule_id" }
func (ExamScheduleModel) Label() string        { return "Exam schedule" }

func (m *ExamScheduleModel) SetSchoolID(id uuid.UUID) { m.ExamScheduleSchoolID = id }

func (m *ExamScheduleModel) BeforeCreate(*gorm.DB) error {
	if m.ExamScheduleID == uuid.Nil {
		m.ExamScheduleID = uuid.New()
	}
	return nil
}

type ExamSubjectModel struct {
	ExamSubjectID              uuid.UUID       `gorm:"column:exam_subject_id;type:uuid;primaryKey" json:"id"`
	ExamSubjectSchoolID        uuid.UUID       `gorm:"column:exam_subject_school_id;type:uuid;not null;index" json:"schoolId"`
	ExamSubjectExamScheduleID  uuid.UUID       `gorm:"column:exam_subject_exam_schedule_id;type:uuid;not null;uniqueIndex:uq_exam_subjects_pair,priority:1" json:"examScheduleId"`
	ExamSubjectSubjectID       uuid.UUID       `gorm:"column:exam_subject_subject_id;type:uuid;not null;uniqueIndex:uq_exam_subjects_pair,priority:2" json:"subjectId"`
	ExamSubjectDate            *time.Time      `gorm:"column:exam_subject_date;type:date" json:"date"`
	ExamSubjectStartTime       *dbtime.Tod     `gorm:"column:exam_subject_start_time" json:"startTime"`
	ExamSubjectDurationMinutes *int            `gorm:"column:exam_subject_duration_minutes" json:"durationMinutes"`
	ExamSubjectRoom            *string         `gorm:"column:exam_subject_room;size:40" json:"room"`
	ExamSubjectMaxMarks        decimal.Decimal `gorm:"column:exam_subject_max_marks;type:numeric(7,2);not null" json:"maxMarks"`
	ExamSubjectMinMarks        decimal.Decimal `gorm:"column:exam_subject_min_marks;type:numeric(7,2);not null;default:0" json:"minMarks"`
	ExamSubjectCreatedAt       time.Time       `gorm:"column:exam_subject_created_at;not null;autoCreateTime" json:"createdAt"`
	ExamSubjectUpdatedAt       time.Time       `gorm:"column:exam_subject_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (ExamSubjectModel) TableName() string    { return "exam_subjects" }
func (ExamSubjectModel) TenantColumn() string { return "exam_subject_school_id" }
func (ExamSubjectModel) KeyColumn() string    { return "exam_subject_id" }
func (ExamSubjectModel) Label() string        { return "Exam subject" }

func (m *ExamSubjectModel) SetSchoolID(id uuid.UUID) { m.ExamSubjectSchoolID = id }

func (m *ExamSubjectModel) BeforeCreate(*gorm.DB) error {
	if m.ExamSubjectID == uuid.Nil {
		m.ExamSubjectID = uuid.New()
	}
	return nil
}

// ExamResultModel nilai per student session, upsert on (exam_subject, student_session).
type ExamResultModel struct {
	ExamResultID               uuid.UUID        `gorm:"column:exam_result_id;type:uuid;primaryKey" json:"id"`
	ExamResultSchoolID         uuid.UUID        `gorm:"column:exam_result_school_id;type:uuid;not null;index" json:"schoolId"`
	ExamResultExamSubjectID    uuid.UUID        `gorm:"column:exam_result_exam_subject_id;type:uuid;not null;uniqueIndex:uq_exam_results_pair,priority:1" json:"examSubjectId"`
	ExamResultStudentSessionID uuid.UUID        `gorm:"column:exam_result_student_session_id;type:uuid;not null;uniqueIndex:uq_exam_results_pair,priority:2" json:"studentSessionId"`
	ExamResultMarks            *decimal.Decimal `gorm:"column:exam_result_marks;type:numeric(7,2)" json:"marks"`
	ExamResultIsAbsent         bool             `gorm:"column:exam_result_is_absent;not null;default:false" json:"isAbsent"`
	ExamResultNote             *string          `gorm:"column:exam_result_note" json:"note"`
	ExamResultCreatedAt        time.Time        `gorm:"column:exam_result_created_at;not null;autoCreateTime" json:"createdAt"`
	ExamResultUpdatedAt        time.Time        `gorm:"column:exam_result_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (ExamResultModel) TableName() string    { return "exam_results" }
func (ExamResultModel) TenantColumn() string { return "exam_result_school_id" }
func (ExamResultModel) KeyColumn() string    { return "exam_result_id" }
func (ExamResultModel) Label() string        { return "Exam result" }

func (m *ExamResultModel) SetSchoolID(id uuid.UUID) { m.ExamResultSchoolID = id }

func (m *ExamResultModel) BeforeCreate(*gorm.DB) error {
	if m.ExamResultID == uuid.Nil {
		m.ExamResultID = uuid.New()
	}
	return nil
}
