package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/staff/dto"
	"schoolku_backend/internals/features/staff/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

func (ctl *DepartmentController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

func (ctl *DepartmentController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.DepartmentModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(department_name) LIKE ?", s)
	}
	rows := []model.DepartmentModel{}
	pg, err := scope.Page(q, p, "department_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *DepartmentController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.DepartmentModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *DepartmentController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.DepartmentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.DepartmentModel{}, "department_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := &model.DepartmentModel{DepartmentName: req.Name}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Department created", m)
}

func (ctl *DepartmentController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.DepartmentModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.DepartmentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.DepartmentModel{}, "department_name", req.Name, id, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Updates(&model.DepartmentModel{}, id, map[string]any{"department_name": req.Name}); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.DepartmentModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Department updated", m)
}

func (ctl *DepartmentController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.DepartmentModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.StaffModel{}, "staff_department_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "department has staff assigned"))
	}
	if err := t.Delete(&model.DepartmentModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Department deleted")
}
