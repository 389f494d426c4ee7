package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/students/dto"
	"schoolku_backend/internals/features/students/model"
	"schoolku_backend/internals/features/students/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentSessionController struct {
	DB *gorm.DB
}

func NewStudentSessionController(db *gorm.DB) *StudentSessionController {
	return &StudentSessionController{DB: db}
}

func (ctl *StudentSessionController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/student-sessions?sessionId=&classId=&sectionId=&classSectionId=&studentId=&search=
func (ctl *StudentSessionController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Table(&model.StudentSessionModel{}).
		Joins("JOIN students ON students.student_id = student_sessions.student_session_student_id").
		Joins("JOIN class_sections ON class_sections.class_section_id = student_sessions.student_session_class_section_id").
		Joins("JOIN classes ON classes.class_id = class_sections.class_section_class_id").
		Joins("JOIN sections ON sections.section_id = class_sections.class_section_section_id")

	if id := helper.QueryUUID(c, "sessionId"); id != nil {
		q = q.Where("student_sessions.student_session_session_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "classSectionId"); id != nil {
		q = q.Where("student_sessions.student_session_class_section_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "classId"); id != nil {
		q = q.Where("class_sections.class_section_class_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "sectionId"); id != nil {
		q = q.Where("class_sections.class_section_section_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "studentId"); id != nil {
		q = q.Where("student_sessions.student_session_student_id = ?", *id)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(students.student_first_name) LIKE ? OR LOWER(students.student_admission_no) LIKE ?", s, s)
	}

	q = q.Select(`student_sessions.student_session_id, students.student_id, students.student_admission_no,
		students.student_first_name, students.student_last_name, student_sessions.student_session_session_id,
		student_sessions.student_session_class_section_id, classes.class_id, classes.class_name,
		sections.section_id, sections.section_name, student_sessions.student_session_roll_no`)

	rows := []dto.StudentSessionView{}
	pg, err := scope.Page(q, p, "classes.class_order ASC, sections.section_name ASC, students.student_first_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// PUT /api/student-sessions/:id: pindah class-section / ganti roll.
func (ctl *StudentSessionController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.StudentSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateStudentSessionRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.ClassSectionID.Present && !req.ClassSectionID.Set() {
		return helper.JsonFromError(c, helper.Validation("classSectionId", "classSectionId is required"))
	}

	csID := cur.StudentSessionClassSectionID
	if req.ClassSectionID.Set() {
		csID = req.ClassSectionID.Get()
		if err := t.Owns(&classModel.ClassSectionModel{}, csID); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	roll := cur.StudentSessionRollNo
	if req.RollNo.Present {
		roll = req.RollNo.Get()
	}
	if err := service.CheckRollNo(t, csID, cur.StudentSessionSessionID, roll, id); err != nil {
		return helper.JsonFromError(c, err)
	}

	u := map[string]any{}
	req.ClassSectionID.Apply(u, "student_session_class_section_id")
	req.RollNo.Apply(u, "student_session_roll_no")
	if err := t.Updates(&model.StudentSessionModel{}, id, u); err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.StudentSessionModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Enrollment updated", out)
}

func (ctl *StudentSessionController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StudentSessionModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if has, err := t.Exists(&feeModel.StudentFeesMasterModel{}, "student_fees_master_student_session_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "enrollment has fee assignments"))
	}
	if err := t.Transaction(func(tx *scope.Tenant) error {
		return service.PurgeEnrollments(tx, []uuid.UUID{id})
	}); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment deleted")
}
