package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeTypeController struct {
	DB *gorm.DB
}

func NewFeeTypeController(db *gorm.DB) *FeeTypeController {
	return &FeeTypeController{DB: db}
}

func tenantOf(db *gorm.DB, c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(db, tc.SchoolID).WithContext(c.UserContext()), nil
}

func (ctl *FeeTypeController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.FeeTypeModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(fee_type_name) LIKE ? OR LOWER(fee_type_code) LIKE ?", s, s)
	}
	rows := []model.FeeTypeModel{}
	pg, err := scope.Page(q, p, "fee_type_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *FeeTypeController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.FeeTypeModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *FeeTypeController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateFeeTypeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.FeeTypeModel{}, "fee_type_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.FeeTypeModel{}, "fee_type_code", req.Code, uuid.Nil, "code"); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := &model.FeeTypeModel{FeeTypeName: req.Name, FeeTypeCode: req.Code, FeeTypeDescription: req.Description}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Fee type created", m)
}

func (ctl *FeeTypeController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeeTypeModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateFeeTypeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := t.Unique(&model.FeeTypeModel{}, "fee_type_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if req.Code.Set() {
		if err := t.Unique(&model.FeeTypeModel{}, "fee_type_code", req.Code.Get(), id, "code"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.FeeTypeModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.FeeTypeModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Fee type updated", m)
}

func (ctl *FeeTypeController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeeTypeModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.FeeGroupTypeModel{}, "fee_group_type_fee_type_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "fee type is used by a fee group"))
	}
	if err := t.Delete(&model.FeeTypeModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Fee type deleted")
}
