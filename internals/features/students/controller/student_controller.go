package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	libraryModel "schoolku_backend/internals/features/library/model"
	"schoolku_backend/internals/features/students/dto"
	"schoolku_backend/internals/features/students/model"
	"schoolku_backend/internals/features/students/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

func (ctl *StudentController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/students?search=&classId=&sectionId=&sessionId=&isActive=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.StudentModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(student_first_name) LIKE ? OR LOWER(student_last_name) LIKE ? OR LOWER(student_admission_no) LIKE ?", s, s, s)
	}
	switch c.Query("isActive") {
	case "true":
		q = q.Where("student_is_active = ?", true)
	case "false":
		q = q.Where("student_is_active = ?", false)
	}

	ssIDs, filtered, err := service.StudentSessionIDs(t,
		helper.QueryUUID(c, "classId"), helper.QueryUUID(c, "sectionId"), helper.QueryUUID(c, "sessionId"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if filtered {
		if len(ssIDs) == 0 {
			return helper.JsonList(c, []model.StudentModel{}, helper.BuildPagination(0, p))
		}
		sub := t.Query(&model.StudentSessionModel{}).
			Select("student_session_student_id").
			Where("student_session_id IN ?", ssIDs)
		q = q.Where("student_id IN (?)", sub)
	}

	rows := []model.StudentModel{}
	pg, err := scope.Page(q, p, "student_admission_no ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *StudentController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.StudentModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateStudentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var enrolled *model.StudentSessionModel
	err = t.Transaction(func(tx *scope.Tenant) error {
		if m.StudentAdmissionNo == "" {
			no, err := service.NextAdmissionNo(tx, dto.AdmissionYear(m, dbtime.TodayInSchool(c)))
			if err != nil {
				return err
			}
			m.StudentAdmissionNo = no
		} else if err := tx.Unique(&model.StudentModel{}, "student_admission_no", m.StudentAdmissionNo, uuid.Nil, "admissionNo"); err != nil {
			return err
		}
		if err := tx.Create(m); err != nil {
			return err
		}
		if req.ClassSectionID == nil {
			return nil
		}
		ss, err := service.Enroll(tx, service.EnrollInput{
			StudentID:      m.StudentID,
			ClassSectionID: *req.ClassSectionID,
			SessionID:      req.SessionID,
			RollNo:         req.RollNo,
		})
		enrolled = ss
		return err
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if enrolled != nil {
		return helper.JsonCreated(c, "Student created", fiber.Map{"student": m, "enrollment": enrolled})
	}
	return helper.JsonCreated(c, "Student created", m)
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StudentModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateStudentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.AdmissionNo.Set() {
		if err := t.Unique(&model.StudentModel{}, "student_admission_no", req.AdmissionNo.Get(), id, "admissionNo"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.StudentModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.StudentModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Student updated", m)
}

// DELETE /api/students/:id: ditolak bila sudah ada tagihan atau keanggotaan perpustakaan.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StudentModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}

	var ssIDs []uuid.UUID
	if err := t.Query(&model.StudentSessionModel{}).
		Where("student_session_student_id = ?", id).
		Pluck("student_session_id", &ssIDs).Error; err != nil {
		return helper.JsonFromError(c, err)
	}
	if len(ssIDs) > 0 {
		if has, err := t.Exists(&feeModel.StudentFeesMasterModel{}, "student_fees_master_student_session_id IN ?", ssIDs); err != nil {
			return helper.JsonFromError(c, err)
		} else if has {
			return helper.JsonFromError(c, helper.Conflict("id", "student has fee assignments"))
		}
	}
	if has, err := t.Exists(&libraryModel.LibraryMemberModel{}, "library_member_student_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "student is a library member"))
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if len(ssIDs) > 0 {
			if err := service.PurgeEnrollments(tx, ssIDs); err != nil {
				return err
			}
		}
		return tx.Delete(&model.StudentModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Student deleted")
}

// POST /api/students/:id/enroll
func (ctl *StudentController) Enroll(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StudentModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.EnrollRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	var ss *model.StudentSessionModel
	err = t.Transaction(func(tx *scope.Tenant) error {
		var err error
		ss, err = service.Enroll(tx, service.EnrollInput{
			StudentID:      id,
			ClassSectionID: req.ClassSectionID,
			SessionID:      req.SessionID,
			RollNo:         req.RollNo,
		})
		return err
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Student enrolled", ss)
}
