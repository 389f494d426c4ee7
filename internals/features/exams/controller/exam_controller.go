package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	sessionService "schoolku_backend/internals/features/academics/sessions/service"
	"schoolku_backend/internals/features/exams/dto"
	"schoolku_backend/internals/features/exams/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ExamController struct {
	DB *gorm.DB
}

func NewExamController(db *gorm.DB) *ExamController {
	return &ExamController{DB: db}
}

func tenantOf(db *gorm.DB, c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(db, tc.SchoolID).WithContext(c.UserContext()), nil
}

// uniqueName: nama exam unik per session.
func uniqueName(t *scope.Tenant, sessionID uuid.UUID, name string, excludeID uuid.UUID) error {
	q := "exam_session_id = ? AND exam_name = ?"
	args := []any{sessionID, name}
	if excludeID != uuid.Nil {
		q += " AND exam_id <> ?"
		args = append(args, excludeID)
	}
	dup, err := t.Exists(&model.ExamModel{}, q, args...)
	if err != nil {
		return err
	}
	if dup {
		return helper.Conflict("name", "name already exists")
	}
	return nil
}

// GET /api/exams?sessionId=&search=
func (ctl *ExamController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.ExamModel{})
	if id := helper.QueryUUID(c, "sessionId"); id != nil {
		q = q.Where("exam_session_id = ?", *id)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(exam_name) LIKE ?", s)
	}
	rows := []model.ExamModel{}
	pg, err := scope.Page(q, p, "exam_created_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *ExamController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.ExamModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *ExamController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateExamRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := sessionService.Resolve(t, req.SessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := uniqueName(t, sessionID, req.Name, uuid.Nil); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := &model.ExamModel{ExamSessionID: sessionID, ExamName: req.Name, ExamDescription: req.Description}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Exam created", m)
}

func (ctl *ExamController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.ExamModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateExamRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := uniqueName(t, cur.ExamSessionID, req.Name.Get(), id); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.ExamModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.ExamModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Exam updated", m)
}

// DELETE /api/exams/:id: ditolak selama ada hasil; jadwal & subject ikut terhapus.
func (ctl *ExamController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ExamModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	schedules := t.Query(&model.ExamScheduleModel{}).Select("exam_schedule_id").Where("exam_schedule_exam_id = ?", id)
	subjects := t.Query(&model.ExamSubjectModel{}).Select("exam_subject_id").Where("exam_subject_exam_schedule_id IN (?)", schedules)
	if has, err := t.Exists(&model.ExamResultModel{}, "exam_result_exam_subject_id IN (?)", subjects); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "exam has results"))
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		var scheduleIDs []uuid.UUID
		if err := tx.Query(&model.ExamScheduleModel{}).
			Where("exam_schedule_exam_id = ?", id).
			Pluck("exam_schedule_id", &scheduleIDs).Error; err != nil {
			return err
		}
		if err := deleteSchedules(tx, scheduleIDs); err != nil {
			return err
		}
		return tx.Delete(&model.ExamModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Exam deleted")
}

func deleteSchedules(tx *scope.Tenant, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Query(&model.ExamSubjectModel{}).
		Where("exam_subject_exam_schedule_id IN ?", ids).
		Delete(&model.ExamSubjectModel{}).Error; err != nil {
		return err
	}
	return tx.Query(&model.ExamScheduleModel{}).
		Where("exam_schedule_id IN ?", ids).
		Delete(&model.ExamScheduleModel{}).Error
}
