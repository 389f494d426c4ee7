package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/exams/dto"
	"schoolku_backend/internals/features/exams/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

type ExamResultController struct {
	DB *gorm.DB
}

func NewExamResultController(db *gorm.DB) *ExamResultController {
	return &ExamResultController{DB: db}
}

// ResultView hasil + identitas siswa; Passed nil bila absent.
type ResultView struct {
	model.ExamResultModel
	AdmissionNo string  `gorm:"column:student_admission_no" json:"admissionNo"`
	FirstName   string  `gorm:"column:student_first_name" json:"firstName"`
	LastName    *string `gorm:"column:student_last_name" json:"lastName"`
	RollNo      *string `gorm:"column:student_session_roll_no" json:"rollNo"`
	Passed      *bool   `gorm:"-" json:"passed"`
}

// GET /api/exams/results?examSubjectId=&studentSessionId=
func (ctl *ExamResultController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)

	q := t.Table(&model.ExamResultModel{}).
		Joins("JOIN student_sessions ON student_sessions.student_session_id = exam_results.exam_result_student_session_id").
		Joins("JOIN students ON students.student_id = student_sessions.student_session_student_id")
	var subject *model.ExamSubjectModel
	if id := helper.QueryUUID(c, "examSubjectId"); id != nil {
		if subject, err = scope.First[model.ExamSubjectModel](t, *id); err != nil {
			return helper.JsonFromError(c, err)
		}
		q = q.Where("exam_results.exam_result_exam_subject_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "studentSessionId"); id != nil {
		q = q.Where("exam_results.exam_result_student_session_id = ?", *id)
	}
	q = q.Select(`exam_results.*, students.student_admission_no, students.student_first_name,
		students.student_last_name, student_sessions.student_session_roll_no`)

	rows := []ResultView{}
	pg, err := scope.Page(q, p, "student_sessions.student_session_roll_no ASC, students.student_first_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if subject != nil {
		for i := range rows {
			if m := rows[i].ExamResultMarks; m != nil && !rows[i].ExamResultIsAbsent {
				passed := m.GreaterThanOrEqual(subject.ExamSubjectMinMarks)
				rows[i].Passed = &passed
			}
		}
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/exams/results: upsert per (examSubjectId, studentSessionId).
// Siswa harus terdaftar di class-section jadwal ujian tersebut.
func (ctl *ExamResultController) Save(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SaveResultsRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	subject, err := scope.First[model.ExamSubjectModel](t, req.ExamSubjectID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Check(subject.ExamSubjectMaxMarks); err != nil {
		return helper.JsonFromError(c, err)
	}
	schedule, err := scope.First[model.ExamScheduleModel](t, subject.ExamSubjectExamScheduleID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	records := req.Dedup()
	ids := lo.Map(records, func(r dto.ResultRecord, _ int) uuid.UUID { return r.StudentSessionID })
	if err := t.OwnsAll(&studentModel.StudentSessionModel{}, ids); err != nil {
		return helper.JsonFromError(c, err)
	}
	n, err := t.Count(&studentModel.StudentSessionModel{},
		"student_session_id IN ? AND student_session_class_section_id = ?", ids, schedule.ExamScheduleClassSectionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if int(n) != len(ids) {
		return helper.JsonFromError(c, helper.Validation("studentSessionId", "student is not in the scheduled class section"))
	}

	rows := lo.Map(records, func(r dto.ResultRecord, _ int) model.ExamResultModel {
		return model.ExamResultModel{
			ExamResultExamSubjectID:    subject.ExamSubjectID,
			ExamResultStudentSessionID: r.StudentSessionID,
			ExamResultMarks:            r.Marks,
			ExamResultIsAbsent:         r.IsAbsent,
			ExamResultNote:             r.Note,
		}
	})
	err = t.Transaction(func(tx *scope.Tenant) error {
		return scope.CreateAll(tx, rows, clause.OnConflict{
			Columns: []clause.Column{{Name: "exam_result_exam_subject_id"}, {Name: "exam_result_student_session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"exam_result_marks", "exam_result_is_absent", "exam_result_note", "exam_result_updated_at",
			}),
		})
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	saved := []model.ExamResultModel{}
	if err := t.Query(&model.ExamResultModel{}).
		Where("exam_result_exam_subject_id = ? AND exam_result_student_session_id IN ?", subject.ExamSubjectID, ids).
		Find(&saved).Error; err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Results saved", saved)
}
