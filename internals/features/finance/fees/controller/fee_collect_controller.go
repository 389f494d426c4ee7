package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/ledger"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type FeeCollectController struct {
	DB *gorm.DB
}

func NewFeeCollectController(db *gorm.DB) *FeeCollectController {
	return &FeeCollectController{DB: db}
}

// GET /api/fees/collect?studentFeesMasterId=&studentSessionId=&studentId=&mode=&from=&to=
func (ctl *FeeCollectController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.FeePaymentModel{})
	if id := helper.QueryUUID(c, "studentFeesMasterId"); id != nil {
		q = q.Where("fee_payment_student_fees_master_id = ?", *id)
	}
	ssID := helper.QueryUUID(c, "studentSessionId")
	studentID := helper.QueryUUID(c, "studentId")
	if ssID != nil || studentID != nil {
		sub := t.Query(&model.StudentFeesMasterModel{}).Select("student_fees_master_id")
		if ssID != nil {
			sub = sub.Where("student_fees_master_student_session_id = ?", *ssID)
		}
		if studentID != nil {
			ss := t.Query(&studentModel.StudentSessionModel{}).
				Select("student_session_id").
				Where("student_session_student_id = ?", *studentID)
			sub = sub.Where("student_fees_master_student_session_id IN (?)", ss)
		}
		q = q.Where("fee_payment_student_fees_master_id IN (?)", sub)
	}
	if m := c.Query("mode"); m != "" {
		q = q.Where("fee_payment_mode = ?", m)
	}
	if from := dbtime.ParseDatePtr(c.Query("from")); from != nil {
		q = q.Where("fee_payment_paid_at >= ?", *from)
	}
	if to := dbtime.ParseDatePtr(c.Query("to")); to != nil {
		q = q.Where("fee_payment_paid_at < ?", to.AddDate(0, 0, 1))
	}

	rows := []model.FeePaymentModel{}
	pg, err := scope.Page(q, p, "fee_payment_paid_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/fees/collect: payment append-only, collector = pemanggil.
func (ctl *FeeCollectController) Collect(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	var req dto.CollectFeeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	sfm, err := scope.First[model.StudentFeesMasterModel](t, req.StudentFeesMasterID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !sfm.StudentFeesMasterIsActive {
		return helper.JsonFromError(c, helper.Conflict("studentFeesMasterId", "fee assignment is inactive"))
	}
	if req.FeeGroupTypeID != nil {
		master, err := scope.First[model.FeesMasterModel](t, sfm.StudentFeesMasterFeesMasterID)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		line, err := scope.First[model.FeeGroupTypeModel](t, *req.FeeGroupTypeID)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if line.FeeGroupTypeFeeGroupID != master.FeesMasterFeeGroupID {
			return helper.JsonFromError(c, helper.Validation("feeGroupTypeId", "feeGroupTypeId is not part of the assigned fee group"))
		}
	}

	m, err := req.ToModel(tc.UserID, dbtime.NowInSchool(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Payment recorded", m)
}

// GET /api/fees/due?classId=&sectionId=&studentId=&sessionId=&onlyDue=
// Ledger dihitung penuh dulu, baru dipaginasi (onlyDue butuh grandTotal).
func (ctl *FeeCollectController) Due(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	rows, err := ledger.Load(t, ledger.Filter{
		ClassID:   helper.QueryUUID(c, "classId"),
		SectionID: helper.QueryUUID(c, "sectionId"),
		SessionID: helper.QueryUUID(c, "sessionId"),
		StudentID: helper.QueryUUID(c, "studentId"),
		OnlyDue:   helper.QueryBool(c, "onlyDue"),
	}, dbtime.NowInSchool(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, helper.PageSlice(rows, p), helper.BuildPagination(int64(len(rows)), p))
}
