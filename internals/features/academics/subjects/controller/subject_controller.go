package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/subjects/dto"
	"schoolku_backend/internals/features/academics/subjects/model"
	examModel "schoolku_backend/internals/features/exams/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

func (ctl *SubjectController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/subjects?search=&type=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.SubjectModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(subject_name) LIKE ? OR LOWER(subject_code) LIKE ?", s, s)
	}
	if typ := c.Query("type"); typ == model.SubjectTheory || typ == model.SubjectPractical {
		q = q.Where("subject_type = ?", typ)
	}
	rows := []model.SubjectModel{}
	pg, err := scope.Page(q, p, "subject_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *SubjectController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.SubjectModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateSubjectRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.SubjectModel{}, "subject_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.SubjectModel{}, "subject_code", req.Code, uuid.Nil, "code"); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := req.ToModel()
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Subject created", m)
}

func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.SubjectModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateSubjectRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := t.Unique(&model.SubjectModel{}, "subject_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if req.Code.Set() {
		if err := t.Unique(&model.SubjectModel{}, "subject_code", req.Code.Get(), id, "code"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.SubjectModel{}, id, req.Updates()); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.SubjectModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Subject updated", m)
}

func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.SubjectModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&examModel.ExamSubjectModel{}, "exam_subject_subject_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "subject is scheduled in an exam"))
	}
	if used, err := t.Exists(&homeworkModel.HomeworkModel{}, "homework_subject_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "subject has homework"))
	}
	if err := t.Delete(&model.SubjectModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Subject deleted")
}
