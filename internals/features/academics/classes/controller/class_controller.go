package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/classes/dto"
	"schoolku_backend/internals/features/academics/classes/model"
	"schoolku_backend/internals/features/academics/classes/service"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	frontOfficeModel "schoolku_backend/internals/features/front_office/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

func (ctl *ClassController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/classes?search=&withSections=true
func (ctl *ClassController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.ClassModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(class_name) LIKE ?", s)
	}
	rows := []model.ClassModel{}
	pg, err := scope.Page(q, p, "class_order ASC, class_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	if helper.QueryBool(c, "withSections") {
		ids := lo.Map(rows, func(m model.ClassModel, _ int) uuid.UUID { return m.ClassID })
		byClass, err := service.SectionsFor(t, ids)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		for i := range rows {
			rows[i].Sections = nonNil(byClass[rows[i].ClassID])
		}
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *ClassController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

// load selalu menyertakan sections.
func (ctl *ClassController) load(t *scope.Tenant, id uuid.UUID) (*model.ClassModel, error) {
	m, err := scope.First[model.ClassModel](t, id)
	if err != nil {
		return nil, err
	}
	byClass, err := service.SectionsFor(t, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	m.Sections = nonNil(byClass[id])
	return m, nil
}

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateClassRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.ClassModel{}, "class_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}

	m := req.ToModel()
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(m); err != nil {
			return err
		}
		return service.SyncSections(tx, m.ClassID, req.SectionIDs)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.load(t, m.ClassID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Class created", out)
}

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ClassModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateClassRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := t.Unique(&model.ClassModel{}, "class_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Updates(&model.ClassModel{}, id, req.Updates()); err != nil {
			return err
		}
		if req.SectionIDs.Present {
			return service.SyncSections(tx, id, req.SectionIDs.Get())
		}
		return nil
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Class updated", out)
}

func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ClassModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	csIDs, err := service.ClassSectionIDs(t, &id, nil)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := service.EnsureNoEnrollment(t, csIDs); err != nil {
		if helper.IsKind(err, helper.KindConflict) {
			err = helper.Conflict("id", "class has enrolled students")
		}
		return helper.JsonFromError(c, err)
	}
	if err := service.EnsureNotScheduled(t, csIDs, "id"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&feeModel.FeesMasterModel{}, "fees_master_class_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "class has fee masters"))
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		// enquiry hanya mencatat minat calon siswa; referensinya dilepas
		if err := tx.Query(&frontOfficeModel.EnquiryModel{}).
			Where("enquiry_class_id = ?", id).
			Update("enquiry_class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Query(&model.ClassSectionModel{}).
			Where("class_section_class_id = ?", id).
			Delete(&model.ClassSectionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ClassModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Class deleted")
}

// GET /api/class-sections?classId=&sectionId=
func (ctl *ClassController) ListClassSections(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rows, err := service.ListViews(t, helper.QueryUUID(c, "classId"), helper.QueryUUID(c, "sectionId"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

func nonNil(v []model.ClassSectionView) []model.ClassSectionView {
	if v == nil {
		return []model.ClassSectionView{}
	}
	return v
}
