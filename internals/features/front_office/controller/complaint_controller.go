package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/front_office/dto"
	"schoolku_backend/internals/features/front_office/model"
	staffModel "schoolku_backend/internals/features/staff/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type ComplaintController struct {
	DB *gorm.DB
}

func NewComplaintController(db *gorm.DB) *ComplaintController {
	return &ComplaintController{DB: db}
}

func tenantOf(db *gorm.DB, c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(db, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/front-office/complaints?status=&from=&to=&search=
func (ctl *ComplaintController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.ComplaintModel{})
	if s := c.Query("status"); s != "" {
		q = q.Where("complaint_status = ?", s)
	}
	if d := dbtime.ParseDatePtr(c.Query("from")); d != nil {
		q = q.Where("complaint_date >= ?", *d)
	}
	if d := dbtime.ParseDatePtr(c.Query("to")); d != nil {
		q = q.Where("complaint_date <= ?", *d)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(complaint_complainant_name) LIKE ? OR LOWER(complaint_type) LIKE ?", s, s)
	}
	rows := []model.ComplaintModel{}
	pg, err := scope.Page(q, p, "complaint_date DESC, complaint_created_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *ComplaintController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.ComplaintModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *ComplaintController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateComplaintRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel(dbtime.TodayInSchool(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.AssignedTo != nil {
		if err := t.Owns(&staffModel.StaffModel{}, *req.AssignedTo); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Complaint created", m)
}

func (ctl *ComplaintController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ComplaintModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateComplaintRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if a := req.AssignedTo.Get(); a != nil {
		if err := t.Owns(&staffModel.StaffModel{}, *a); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.ComplaintModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.ComplaintModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Complaint updated", m)
}

// PATCH /api/front-office/complaints/:id/status
func (ctl *ComplaintController) SetStatus(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.StatusRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates := map[string]any{"complaint_status": req.Status}
	if req.Note != nil {
		updates["complaint_note"] = *req.Note
	}
	if err := t.Updates(&model.ComplaintModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.ComplaintModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Complaint status updated", m)
}

func (ctl *ComplaintController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Delete(&model.ComplaintModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Complaint deleted")
}
