package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/homework/dto"
	"schoolku_backend/internals/features/homework/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SubmissionController struct {
	DB *gorm.DB
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{DB: db}
}

type SubmissionView struct {
	model.HomeworkSubmissionModel
	AdmissionNo string  `gorm:"column:student_admission_no" json:"admissionNo"`
	FirstName   string  `gorm:"column:student_first_name" json:"firstName"`
	LastName    *string `gorm:"column:student_last_name" json:"lastName"`
}

// GET /api/homework/submissions?homeworkId=&studentSessionId=&status=
func (ctl *SubmissionController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)
	q := t.Table(&model.HomeworkSubmissionModel{}).
		Joins("JOIN student_sessions ON student_sessions.student_session_id = homework_submissions.homework_submission_student_session_id").
		Joins("JOIN students ON students.student_id = student_sessions.student_session_student_id").
		Select(`homework_submissions.*, students.student_admission_no,
			students.student_first_name, students.student_last_name`)
	if id := helper.QueryUUID(c, "homeworkId"); id != nil {
		q = q.Where("homework_submissions.homework_submission_homework_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "studentSessionId"); id != nil {
		q = q.Where("homework_submissions.homework_submission_student_session_id = ?", *id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("homework_submissions.homework_submission_status = ?", s)
	}
	rows := []SubmissionView{}
	pg, err := scope.Page(q, p, "homework_submissions.homework_submission_submitted_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/homework/submissions: buat baru atau refresh selama masih pending.
func (ctl *SubmissionController) Submit(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SubmitRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	hw, err := scope.First[model.HomeworkModel](t, req.HomeworkID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	ss, err := scope.First[studentModel.StudentSessionModel](t, req.StudentSessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if ss.StudentSessionClassSectionID != hw.HomeworkClassSectionID || ss.StudentSessionSessionID != hw.HomeworkSessionID {
		return helper.JsonFromError(c, helper.Validation("studentSessionId", "student is not in the homework class section"))
	}

	now := time.Now()
	var out model.HomeworkSubmissionModel
	err = t.Transaction(func(tx *scope.Tenant) error {
		q := tx.Query(&model.HomeworkSubmissionModel{}).
			Where("homework_submission_homework_id = ? AND homework_submission_student_session_id = ?", hw.HomeworkID, ss.StudentSessionID)
		var existing []model.HomeworkSubmissionModel
		if err := q.Session(&gorm.Session{}).Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) == 0 {
			out = model.HomeworkSubmissionModel{
				HomeworkSubmissionHomeworkID:       hw.HomeworkID,
				HomeworkSubmissionStudentSessionID: ss.StudentSessionID,
				HomeworkSubmissionContent:          req.Content,
				HomeworkSubmissionStatus:           model.SubmissionPending,
				HomeworkSubmissionSubmittedAt:      now,
			}
			return tx.Create(&out)
		}
		out = existing[0]
		if out.HomeworkSubmissionStatus != model.SubmissionPending {
			return helper.Conflict("homeworkId", "submission is already evaluated")
		}
		if err := tx.Updates(&model.HomeworkSubmissionModel{}, out.HomeworkSubmissionID, map[string]any{
			"homework_submission_content":      req.Content,
			"homework_submission_submitted_at": now,
		}); err != nil {
			return err
		}
		out.HomeworkSubmissionContent = req.Content
		out.HomeworkSubmissionSubmittedAt = now
		return nil
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Submission saved", out)
}

// PATCH /api/homework/submissions/:id: evaluasi sekali; pending → accepted|rejected.
func (ctl *SubmissionController) Evaluate(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.EvaluateRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	sub, err := scope.First[model.HomeworkSubmissionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	hw, err := scope.First[model.HomeworkModel](t, sub.HomeworkSubmissionHomeworkID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Check(hw.HomeworkMaxMarks); err != nil {
		return helper.JsonFromError(c, err)
	}

	evaluator := tc.UserID
	now := time.Now()
	res := t.Query(&model.HomeworkSubmissionModel{}).
		Where("homework_submission_id = ? AND homework_submission_status = ?", id, model.SubmissionPending).
		Updates(map[string]any{
			"homework_submission_status":       req.Status,
			"homework_submission_marks":        req.Marks,
			"homework_submission_feedback":     req.Feedback,
			"homework_submission_evaluated_by": evaluator,
			"homework_submission_evaluated_at": now,
		})
	if res.Error != nil {
		return helper.JsonFromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonFromError(c, helper.Conflict("status", "submission is already evaluated"))
	}
	m, err := scope.First[model.HomeworkSubmissionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Submission evaluated", m)
}
