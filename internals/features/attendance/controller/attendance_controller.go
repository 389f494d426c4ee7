package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/attendance/dto"
	"schoolku_backend/internals/features/attendance/model"
	staffModel "schoolku_backend/internals/features/staff/model"
	studentModel "schoolku_backend/internals/features/students/model"
	studentService "schoolku_backend/internals/features/students/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

func (ctl *AttendanceController) tenant(c *fiber.Ctx) (*scope.Tenant, *helperAuth.TenantContext, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), tc, nil
}

/* =========================== Students =========================== */

// POST /api/attendance/students
// Upsert per (studentSessionId, date): kirim ulang = update, bukan duplikat.
func (ctl *AttendanceController) MarkStudents(c *fiber.Ctx) error {
	t, tc, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.StudentAttendanceRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	date, err := dbtime.RequiredDate("date", req.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	records := req.Dedup()
	ids := lo.Map(records, func(r dto.StudentRecord, _ int) uuid.UUID { return r.StudentSessionID })
	if err := t.OwnsAll(&studentModel.StudentSessionModel{}, ids); err != nil {
		return helper.JsonFromError(c, err)
	}

	rows := lo.Map(records, func(r dto.StudentRecord, _ int) model.StudentAttendanceModel {
		return model.StudentAttendanceModel{
			StudentAttendanceStudentSessionID: r.StudentSessionID,
			StudentAttendanceDate:             date,
			StudentAttendanceStatus:           r.Status,
			StudentAttendanceNote:             r.Note,
			StudentAttendanceRecordedBy:       &tc.UserID,
		}
	})
	err = t.Transaction(func(tx *scope.Tenant) error {
		return scope.CreateAll(tx, rows, clause.OnConflict{
			Columns: []clause.Column{{Name: "student_attendance_student_session_id"}, {Name: "student_attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"student_attendance_status", "student_attendance_note",
				"student_attendance_recorded_by", "student_attendance_updated_at",
			}),
		})
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	saved := []model.StudentAttendanceModel{}
	if err := t.Query(&model.StudentAttendanceModel{}).
		Where("student_attendance_date = ? AND student_attendance_student_session_id IN ?", date, ids).
		Find(&saved).Error; err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Attendance saved", saved)
}

// GET /api/attendance/students?date=&from=&to=&classId=&sectionId=&sessionId=&studentSessionId=&status=
func (ctl *AttendanceController) ListStudents(c *fiber.Ctx) error {
	t, _, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)

	q := t.Query(&model.StudentAttendanceModel{})
	q = dateFilter(c, q, "student_attendance_date")
	if id := helper.QueryUUID(c, "studentSessionId"); id != nil {
		q = q.Where("student_attendance_student_session_id = ?", *id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("student_attendance_status = ?", s)
	}
	ssIDs, filtered, err := studentService.StudentSessionIDs(t,
		helper.QueryUUID(c, "classId"), helper.QueryUUID(c, "sectionId"), helper.QueryUUID(c, "sessionId"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if filtered {
		if len(ssIDs) == 0 {
			return helper.JsonList(c, []model.StudentAttendanceModel{}, helper.BuildPagination(0, p))
		}
		q = q.Where("student_attendance_student_session_id IN ?", ssIDs)
	}

	rows := []model.StudentAttendanceModel{}
	pg, err := scope.Page(q, p, "student_attendance_date DESC, student_attendance_created_at", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

/* ============================ Staff ============================= */

// POST /api/attendance/staff
func (ctl *AttendanceController) MarkStaff(c *fiber.Ctx) error {
	t, tc, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.StaffAttendanceRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	date, err := dbtime.RequiredDate("date", req.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	records := req.Dedup()
	ids := lo.Map(records, func(r dto.StaffRecord, _ int) uuid.UUID { return r.StaffID })
	if err := t.OwnsAll(&staffModel.StaffModel{}, ids); err != nil {
		return helper.JsonFromError(c, err)
	}

	rows := lo.Map(records, func(r dto.StaffRecord, _ int) model.StaffAttendanceModel {
		return model.StaffAttendanceModel{
			StaffAttendanceStaffID:    r.StaffID,
			StaffAttendanceDate:       date,
			StaffAttendanceStatus:     r.Status,
			StaffAttendanceNote:       r.Note,
			StaffAttendanceRecordedBy: &tc.UserID,
		}
	})
	err = t.Transaction(func(tx *scope.Tenant) error {
		return scope.CreateAll(tx, rows, clause.OnConflict{
			Columns: []clause.Column{{Name: "staff_attendance_staff_id"}, {Name: "staff_attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"staff_attendance_status", "staff_attendance_note",
				"staff_attendance_recorded_by", "staff_attendance_updated_at",
			}),
		})
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	saved := []model.StaffAttendanceModel{}
	if err := t.Query(&model.StaffAttendanceModel{}).
		Where("staff_attendance_date = ? AND staff_attendance_staff_id IN ?", date, ids).
		Find(&saved).Error; err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Attendance saved", saved)
}

// GET /api/attendance/staff?date=&from=&to=&roleId=&departmentId=&staffId=&status=
func (ctl *AttendanceController) ListStaff(c *fiber.Ctx) error {
	t, _, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)

	q := t.Query(&model.StaffAttendanceModel{})
	q = dateFilter(c, q, "staff_attendance_date")
	if id := helper.QueryUUID(c, "staffId"); id != nil {
		q = q.Where("staff_attendance_staff_id = ?", *id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("staff_attendance_status = ?", s)
	}
	roleID, depID := helper.QueryUUID(c, "roleId"), helper.QueryUUID(c, "departmentId")
	if roleID != nil || depID != nil {
		sub := t.Query(&staffModel.StaffModel{}).Select("staff_id")
		if roleID != nil {
			sub = sub.Where("staff_role_id = ?", *roleID)
		}
		if depID != nil {
			sub = sub.Where("staff_department_id = ?", *depID)
		}
		q = q.Where("staff_attendance_staff_id IN (?)", sub)
	}

	rows := []model.StaffAttendanceModel{}
	pg, err := scope.Page(q, p, "staff_attendance_date DESC, staff_attendance_created_at", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// ?date= satu hari, atau rentang ?from=&to= (inklusif). Nilai invalid diabaikan.
func dateFilter(c *fiber.Ctx, q *gorm.DB, column string) *gorm.DB {
	if d := dbtime.ParseDatePtr(c.Query("date")); d != nil {
		return q.Where(column+" = ?", *d)
	}
	if from := dbtime.ParseDatePtr(c.Query("from")); from != nil {
		q = q.Where(column+" >= ?", *from)
	}
	if to := dbtime.ParseDatePtr(c.Query("to")); to != nil {
		q = q.Where(column+" < ?", to.Add(24*time.Hour))
	}
	return q
}
