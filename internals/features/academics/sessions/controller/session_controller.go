package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/sessions/dto"
	"schoolku_backend/internals/features/academics/sessions/model"
	"schoolku_backend/internals/features/academics/sessions/service"
	examModel "schoolku_backend/internals/features/exams/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

func (ctl *SessionController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/sessions?search=&isActive=
func (ctl *SessionController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.AcademicSessionModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(academic_session_name) LIKE ?", s)
	}
	if helper.QueryBool(c, "isActive") {
		q = q.Where("academic_session_is_active = ?", true)
	}
	rows := []model.AcademicSessionModel{}
	pg, err := scope.Page(q, p, "academic_session_start_date DESC, academic_session_name DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *SessionController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	s, err := scope.First[model.AcademicSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", s)
}

func (ctl *SessionController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateSessionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.AcademicSessionModel{}, "academic_session_name", m.AcademicSessionName, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(m); err != nil {
			return err
		}
		if req.IsActive {
			return service.Activate(tx, m.AcademicSessionID)
		}
		return nil
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.AcademicSessionModel](t, m.AcademicSessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Session created", out)
}

func (ctl *SessionController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.AcademicSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateSessionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates(cur)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := t.Unique(&model.AcademicSessionModel{}, "academic_session_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Updates(&model.AcademicSessionModel{}, id, updates); err != nil {
			return err
		}
		if req.IsActive.Set() && req.IsActive.Get() {
			return service.Activate(tx, id)
		}
		return nil
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.AcademicSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Session updated", out)
}

// POST /api/sessions/:id/activate
func (ctl *SessionController) Activate(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := service.Activate(t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.AcademicSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Session activated", out)
}

func (ctl *SessionController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	s, err := scope.First[model.AcademicSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if s.AcademicSessionIsActive {
		return helper.JsonFromError(c, helper.Conflict("id", "cannot delete the active session"))
	}
	if err := ensureSessionUnused(t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Delete(&model.AcademicSessionModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Session deleted")
}

// ensureSessionUnused: session yang masih dirujuk enrollment, fees master, exam atau homework tidak boleh dihapus.
func ensureSessionUnused(t *scope.Tenant, id uuid.UUID) error {
	refs := []struct {
		m   scope.Tenanted
		col string
		msg string
	}{
		{&studentModel.StudentSessionModel{}, "student_session_session_id", "session has enrolled students"},
		{&feeModel.FeesMasterModel{}, "fees_master_session_id", "session has fee masters"},
		{&examModel.ExamModel{}, "exam_session_id", "session has exams"},
		{&homeworkModel.HomeworkModel{}, "homework_session_id", "session has homework"},
	}
	for _, r := range refs {
		used, err := t.Exists(r.m, r.col+" = ?", id)
		if err != nil {
			return err
		}
		if used {
			return helper.Conflict("id", r.msg)
		}
	}
	return nil
}
