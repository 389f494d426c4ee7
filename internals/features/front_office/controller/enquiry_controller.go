package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	"schoolku_backend/internals/features/front_office/dto"
	"schoolku_backend/internals/features/front_office/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type EnquiryController struct {
	DB *gorm.DB
}

func NewEnquiryController(db *gorm.DB) *EnquiryController {
	return &EnquiryController{DB: db}
}

// GET /api/front-office/enquiries?status=&classId=&followUpBefore=&search=
func (ctl *EnquiryController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.EnquiryModel{})
	if s := c.Query("status"); s != "" {
		q = q.Where("enquiry_status = ?", s)
	}
	if id := helper.QueryUUID(c, "classId"); id != nil {
		q = q.Where("enquiry_class_id = ?", *id)
	}
	if d := dbtime.ParseDatePtr(c.Query("followUpBefore")); d != nil {
		q = q.Where("enquiry_next_follow_up <= ?", *d)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(enquiry_name) LIKE ? OR LOWER(enquiry_email) LIKE ? OR enquiry_phone LIKE ?", s, s, s)
	}
	rows := []model.EnquiryModel{}
	pg, err := scope.Page(q, p, "enquiry_date DESC, enquiry_created_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *EnquiryController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.EnquiryModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *EnquiryController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateEnquiryRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel(dbtime.TodayInSchool(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.ClassID != nil {
		if err := t.Owns(&classModel.ClassModel{}, *req.ClassID); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Enquiry created", m)
}

func (ctl *EnquiryController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.EnquiryModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateEnquiryRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if cid := req.ClassID.Get(); cid != nil {
		if err := t.Owns(&classModel.ClassModel{}, *cid); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.EnquiryModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.EnquiryModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Enquiry updated", m)
}

// PATCH /api/front-office/enquiries/:id/status
func (ctl *EnquiryController) SetStatus(c *fiber.Ctx) error {
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
	updates := map[string]any{"enquiry_status": req.Status}
	if req.Note != nil {
		updates["enquiry_note"] = *req.Note
	}
	if err := t.Updates(&model.EnquiryModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.EnquiryModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Enquiry status updated", m)
}

func (ctl *EnquiryController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Delete(&model.EnquiryModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Enquiry deleted")
}
