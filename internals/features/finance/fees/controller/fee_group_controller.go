package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeGroupController struct {
	DB *gorm.DB
}

func NewFeeGroupController(db *gorm.DB) *FeeGroupController {
	return &FeeGroupController{DB: db}
}

// attachTypes mengisi Types tiap group dalam satu query.
func attachTypes(t *scope.Tenant, groups []model.FeeGroupModel) error {
	if len(groups) == 0 {
		return nil
	}
	ids := lo.Map(groups, func(g model.FeeGroupModel, _ int) uuid.UUID { return g.FeeGroupID })
	var lines []model.FeeGroupTypeModel
	if err := t.Query(&model.FeeGroupTypeModel{}).
		Where("fee_group_type_fee_group_id IN ?", ids).
		Order("fee_group_type_due_date ASC, fee_group_type_created_at ASC").
		Find(&lines).Error; err != nil {
		return err
	}
	by := lo.GroupBy(lines, func(l model.FeeGroupTypeModel) uuid.UUID { return l.FeeGroupTypeFeeGroupID })
	for i := range groups {
		groups[i].Types = by[groups[i].FeeGroupID]
		if groups[i].Types == nil {
			groups[i].Types = []model.FeeGroupTypeModel{}
		}
	}
	return nil
}

func (ctl *FeeGroupController) load(t *scope.Tenant, id uuid.UUID) (*model.FeeGroupModel, error) {
	g, err := scope.First[model.FeeGroupModel](t, id)
	if err != nil {
		return nil, err
	}
	one := []model.FeeGroupModel{*g}
	if err := attachTypes(t, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// createLine: fee type milik tenant dan belum ada di group.
func createLine(tx *scope.Tenant, groupID uuid.UUID, r dto.FeeGroupTypeRequest) (*model.FeeGroupTypeModel, error) {
	if err := tx.Owns(&model.FeeTypeModel{}, r.FeeTypeID); err != nil {
		return nil, err
	}
	m, err := r.ToModel(groupID)
	if err != nil {
		return nil, err
	}
	dup, err := tx.Exists(&model.FeeGroupTypeModel{},
		"fee_group_type_fee_group_id = ? AND fee_group_type_fee_type_id = ?", groupID, r.FeeTypeID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, helper.Conflict("feeTypeId", "fee type is already in this group")
	}
	if err := tx.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (ctl *FeeGroupController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.FeeGroupModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(fee_group_name) LIKE ?", s)
	}
	rows := []model.FeeGroupModel{}
	pg, err := scope.Page(q, p, "fee_group_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := attachTypes(t, rows); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *FeeGroupController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	g, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", g)
}

// POST /api/fees/groups: types opsional, dibuat dalam transaksi yang sama.
func (ctl *FeeGroupController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateFeeGroupRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.DuplicateFeeType() {
		return helper.JsonFromError(c, helper.Conflict("types", "fee type is already in this group"))
	}
	if err := t.Unique(&model.FeeGroupModel{}, "fee_group_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}

	g := &model.FeeGroupModel{FeeGroupName: req.Name, FeeGroupDescription: req.Description}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(g); err != nil {
			return err
		}
		for _, line := range req.Types {
			if _, err := createLine(tx, g.FeeGroupID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.load(t, g.FeeGroupID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Fee group created", out)
}

func (ctl *FeeGroupController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeeGroupModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateFeeGroupRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Name.Set() {
		if err := t.Unique(&model.FeeGroupModel{}, "fee_group_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.FeeGroupModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Fee group updated", out)
}

func (ctl *FeeGroupController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeeGroupModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.FeesMasterModel{}, "fees_master_fee_group_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "fee group is assigned to a class"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Query(&model.FeeGroupTypeModel{}).
			Where("fee_group_type_fee_group_id = ?", id).
			Delete(&model.FeeGroupTypeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.FeeGroupModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Fee group deleted")
}

/* ===================== /fees/groups/:id/types ===================== */

func (ctl *FeeGroupController) ListTypes(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	g, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", g.Types)
}

func (ctl *FeeGroupController) AddType(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeeGroupModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.FeeGroupTypeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	var line *model.FeeGroupTypeModel
	err = t.Transaction(func(tx *scope.Tenant) error {
		var err error
		line, err = createLine(tx, id, req)
		return err
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Fee group type created", line)
}

// PUT /api/fees/groups/:id/types/:typeId: replace penuh satu line.
func (ctl *FeeGroupController) UpdateType(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, line, err := ctl.line(c, t)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.FeeGroupTypeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.FeeTypeModel{}, req.FeeTypeID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.FeeTypeID != line.FeeGroupTypeFeeTypeID {
		dup, err := t.Exists(&model.FeeGroupTypeModel{},
			"fee_group_type_fee_group_id = ? AND fee_group_type_fee_type_id = ?", groupID, req.FeeTypeID)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if dup {
			return helper.JsonFromError(c, helper.Conflict("feeTypeId", "fee type is already in this group"))
		}
	}
	m, err := req.ToModel(groupID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	err = t.Updates(&model.FeeGroupTypeModel{}, line.FeeGroupTypeID, map[string]any{
		"fee_group_type_fee_type_id":  m.FeeGroupTypeFeeTypeID,
		"fee_group_type_amount":       m.FeeGroupTypeAmount,
		"fee_group_type_due_date":     m.FeeGroupTypeDueDate,
		"fee_group_type_fine_type":    m.FeeGroupTypeFineType,
		"fee_group_type_fine_percent": m.FeeGroupTypeFinePercent,
		"fee_group_type_fine_amount":  m.FeeGroupTypeFineAmount,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.FeeGroupTypeModel](t, line.FeeGroupTypeID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Fee group type updated", out)
}

func (ctl *FeeGroupController) DeleteType(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	_, line, err := ctl.line(c, t)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.FeePaymentModel{}, "fee_payment_fee_group_type_id = ?", line.FeeGroupTypeID); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("typeId", "fee group type has payments"))
	}
	if err := t.Delete(&model.FeeGroupTypeModel{}, line.FeeGroupTypeID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Fee group type deleted")
}

// line memuat :typeId dan memastikan memang anggota group :id.
func (ctl *FeeGroupController) line(c *fiber.Ctx, t *scope.Tenant) (uuid.UUID, *model.FeeGroupTypeModel, error) {
	groupID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, nil, err
	}
	typeID, err := helper.ParseUUIDParam(c, "typeId")
	if err != nil {
		return uuid.Nil, nil, err
	}
	line, err := scope.First[model.FeeGroupTypeModel](t, typeID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if line.FeeGroupTypeFeeGroupID != groupID {
		return uuid.Nil, nil, helper.NotFound(line.Label())
	}
	return groupID, line, nil
}
