package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/classes/dto"
	"schoolku_backend/internals/features/academics/classes/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

func (ctl *SectionController) List(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.SectionModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(section_name) LIKE ?", s)
	}
	rows := []model.SectionModel{}
	pg, err := scope.Page(q, p, "section_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *SectionController) Get(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	s, err := scope.First[model.SectionModel](scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", s)
}

func (ctl *SectionController) Create(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	var req dto.SectionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.SectionModel{}, "section_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := &model.SectionModel{SectionName: req.Name}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Section created", m)
}

func (ctl *SectionController) Update(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.SectionModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SectionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.SectionModel{}, "section_name", req.Name, id, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Updates(&model.SectionModel{}, id, map[string]any{"section_name": req.Name}); err != nil {
		return helper.JsonFromError(c, err)
	}
	s, err := scope.First[model.SectionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Section updated", s)
}

func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.SectionModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.ClassSectionModel{}, "class_section_section_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "section is used by a class"))
	}
	if err := t.Delete(&model.SectionModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Section deleted")
}
