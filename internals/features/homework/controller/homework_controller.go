package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	sessionService "schoolku_backend/internals/features/academics/sessions/service"
	subjectModel "schoolku_backend/internals/features/academics/subjects/model"
	"schoolku_backend/internals/features/homework/dto"
	"schoolku_backend/internals/features/homework/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type HomeworkController struct {
	DB *gorm.DB
}

func NewHomeworkController(db *gorm.DB) *HomeworkController {
	return &HomeworkController{DB: db}
}

func tenantOf(db *gorm.DB, c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(db, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/homework?sessionId=&classSectionId=&subjectId=&from=&to=
func (ctl *HomeworkController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.HomeworkModel{})
	if id := helper.QueryUUID(c, "sessionId"); id != nil {
		q = q.Where("homework_session_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "classSectionId"); id != nil {
		q = q.Where("homework_class_section_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "subjectId"); id != nil {
		q = q.Where("homework_subject_id = ?", *id)
	}
	if d := dbtime.ParseDatePtr(c.Query("from")); d != nil {
		q = q.Where("homework_date >= ?", *d)
	}
	if d := dbtime.ParseDatePtr(c.Query("to")); d != nil {
		q = q.Where("homework_date <= ?", *d)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(homework_title) LIKE ?", s)
	}
	rows := []model.HomeworkModel{}
	pg, err := scope.Page(q, p, "homework_date DESC, homework_created_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *HomeworkController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.HomeworkModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *HomeworkController) Create(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	var req dto.CreateHomeworkRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := sessionService.Resolve(t, req.SessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&classModel.ClassSectionModel{}, req.ClassSectionID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&subjectModel.SubjectModel{}, req.SubjectID); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel(sessionID, tc.UserID, dbtime.TodayInSchool(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Homework created", m)
}

func (ctl *HomeworkController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.HomeworkModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateHomeworkRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates(cur)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.SubjectID.Set() {
		if err := t.Owns(&subjectModel.SubjectModel{}, req.SubjectID.Get()); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if mx := req.MaxMarks.Get(); mx != nil {
		over, err := t.Exists(&model.HomeworkSubmissionModel{},
			"homework_submission_homework_id = ? AND homework_submission_marks > ?", id, *mx)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if over {
			return helper.JsonFromError(c, helper.Conflict("maxMarks", "existing marks exceed maxMarks"))
		}
	}
	if err := t.Updates(&model.HomeworkModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.HomeworkModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Homework updated", m)
}

// DELETE /api/homework/:id: submission pending ikut terhapus; yang sudah dinilai menahan delete.
func (ctl *HomeworkController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.HomeworkModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if done, err := t.Exists(&model.HomeworkSubmissionModel{},
		"homework_submission_homework_id = ? AND homework_submission_status <> ?", id, model.SubmissionPending); err != nil {
		return helper.JsonFromError(c, err)
	} else if done {
		return helper.JsonFromError(c, helper.Conflict("id", "homework has evaluated submissions"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Query(&model.HomeworkSubmissionModel{}).
			Where("homework_submission_homework_id = ?", id).
			Delete(&model.HomeworkSubmissionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.HomeworkModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Homework deleted")
}
