package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	sessionService "schoolku_backend/internals/features/academics/sessions/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

type FeesMasterController struct {
	DB *gorm.DB
}

func NewFeesMasterController(db *gorm.DB) *FeesMasterController {
	return &FeesMasterController{DB: db}
}

// FeesMasterView master + nama group/class/session untuk list.
type FeesMasterView struct {
	model.FeesMasterModel
	FeeGroupName string `gorm:"column:fee_group_name" json:"feeGroupName"`
	ClassName    string `gorm:"column:class_name" json:"className"`
	SessionName  string `gorm:"column:academic_session_name" json:"sessionName"`
}

// GET /api/fees/masters?sessionId=&classId=&feeGroupId=
func (ctl *FeesMasterController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Table(&model.FeesMasterModel{}).
		Joins("JOIN fee_groups ON fee_groups.fee_group_id = fees_masters.fees_master_fee_group_id").
		Joins("JOIN classes ON classes.class_id = fees_masters.fees_master_class_id").
		Joins("JOIN academic_sessions ON academic_sessions.academic_session_id = fees_masters.fees_master_session_id")
	if id := helper.QueryUUID(c, "sessionId"); id != nil {
		q = q.Where("fees_masters.fees_master_session_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "classId"); id != nil {
		q = q.Where("fees_masters.fees_master_class_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "feeGroupId"); id != nil {
		q = q.Where("fees_masters.fees_master_fee_group_id = ?", *id)
	}
	q = q.Select("fees_masters.*, fee_groups.fee_group_name, classes.class_name, academic_sessions.academic_session_name")

	rows := []FeesMasterView{}
	pg, err := scope.Page(q, p, "classes.class_order ASC, fee_groups.fee_group_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/fees/masters: assignToAll=true langsung materialisasi ke semua siswa class.
func (ctl *FeesMasterController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateFeesMasterRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.FeeGroupModel{}, req.FeeGroupID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&classModel.ClassModel{}, req.ClassID); err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := sessionService.Resolve(t, req.SessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	dup, err := t.Exists(&model.FeesMasterModel{},
		"fees_master_session_id = ? AND fees_master_fee_group_id = ? AND fees_master_class_id = ?",
		sessionID, req.FeeGroupID, req.ClassID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if dup {
		return helper.JsonFromError(c, helper.Conflict("feeGroupId", "fee group is already assigned to this class in this session"))
	}

	m := &model.FeesMasterModel{
		FeesMasterSessionID:  sessionID,
		FeesMasterFeeGroupID: req.FeeGroupID,
		FeesMasterClassID:    req.ClassID,
	}
	assigned := 0
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(m); err != nil {
			return err
		}
		if !req.AssignToAll {
			return nil
		}
		n, err := service.AssignToClass(tx, m)
		assigned = n
		return err
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Fees master created", fiber.Map{"master": m, "assigned": assigned})
}

// POST /api/fees/masters/:id/assign: untuk siswa yang masuk setelah master dibuat.
func (ctl *FeesMasterController) Assign(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.FeesMasterModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	assigned := 0
	err = t.Transaction(func(tx *scope.Tenant) error {
		n, err := service.AssignToClass(tx, m)
		assigned = n
		return err
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Fees assigned", fiber.Map{"assigned": assigned})
}

func (ctl *FeesMasterController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.FeesMasterModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if paid, err := service.HasPayments(t, id); err != nil {
		return helper.JsonFromError(c, err)
	} else if paid {
		return helper.JsonFromError(c, helper.Conflict("id", "fees master has payments"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Query(&model.StudentFeesMasterModel{}).
			Where("student_fees_master_fees_master_id = ?", id).
			Delete(&model.StudentFeesMasterModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.FeesMasterModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Fees master deleted")
}

/* ====================== /fees/student-masters ====================== */

// GET /api/fees/student-masters?studentSessionId=&studentId=&feesMasterId=&isActive=
func (ctl *FeesMasterController) ListStudent(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.StudentFeesMasterModel{})
	if id := helper.QueryUUID(c, "studentSessionId"); id != nil {
		q = q.Where("student_fees_master_student_session_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "feesMasterId"); id != nil {
		q = q.Where("student_fees_master_fees_master_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "studentId"); id != nil {
		sub := t.Query(&studentModel.StudentSessionModel{}).
			Select("student_session_id").
			Where("student_session_student_id = ?", *id)
		q = q.Where("student_fees_master_student_session_id IN (?)", sub)
	}
	switch c.Query("isActive") {
	case "true":
		q = q.Where("student_fees_master_is_active = ?", true)
	case "false":
		q = q.Where("student_fees_master_is_active = ?", false)
	}

	rows := []model.StudentFeesMasterModel{}
	pg, err := scope.Page(q, p, "student_fees_master_created_at ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/fees/student-masters: assignment individual.
func (ctl *FeesMasterController) CreateStudent(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateStudentFeesMasterRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	master, err := scope.First[model.FeesMasterModel](t, req.FeesMasterID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	ss, err := scope.First[studentModel.StudentSessionModel](t, req.StudentSessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if ss.StudentSessionSessionID != master.FeesMasterSessionID {
		return helper.JsonFromError(c, helper.Validation("studentSessionId", "student is not enrolled in the fees master session"))
	}
	dup, err := t.Exists(&model.StudentFeesMasterModel{},
		"student_fees_master_fees_master_id = ? AND student_fees_master_student_session_id = ?",
		master.FeesMasterID, ss.StudentSessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if dup {
		return helper.JsonFromError(c, helper.Conflict("studentSessionId", "fees master is already assigned to this student"))
	}

	m := &model.StudentFeesMasterModel{
		StudentFeesMasterFeesMasterID:     master.FeesMasterID,
		StudentFeesMasterStudentSessionID: ss.StudentSessionID,
		StudentFeesMasterIsActive:         true,
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Fees assigned", m)
}

// PATCH /api/fees/student-masters/:id: hanya isActive.
func (ctl *FeesMasterController) PatchStudent(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StudentFeesMasterModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.PatchStudentFeesMasterRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Updates(&model.StudentFeesMasterModel{}, id, map[string]any{
		"student_fees_master_is_active": *req.IsActive,
	}); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.StudentFeesMasterModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Fees assignment updated", m)
}

