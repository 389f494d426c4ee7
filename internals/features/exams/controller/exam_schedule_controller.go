package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	subjectModel "schoolku_backend/internals/features/academics/subjects/model"
	"schoolku_backend/internals/features/exams/dto"
	"schoolku_backend/internals/features/exams/model"
	helper "schoolku_backend/internals/helpers"
)

type ExamScheduleController struct {
	DB *gorm.DB
}

func NewExamScheduleController(db *gorm.DB) *ExamScheduleController {
	return &ExamScheduleController{DB: db}
}

type ScheduleView struct {
	model.ExamScheduleModel
	ClassName   string `gorm:"column:class_name" json:"className"`
	SectionName string `gorm:"column:section_name" json:"sectionName"`
}

type ExamSubjectView struct {
	model.ExamSubjectModel
	SubjectName string `gorm:"column:subject_name" json:"subjectName"`
	SubjectCode string `gorm:"column:subject_code" json:"subjectCode"`
}

// GET /api/exams/:id/schedules
func (ctl *ExamScheduleController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	examID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.ExamModel{}, examID); err != nil {
		return helper.JsonFromError(c, err)
	}
	rows := []ScheduleView{}
	err = t.Table(&model.ExamScheduleModel{}).
		Joins("JOIN class_sections ON class_sections.class_section_id = exam_schedules.exam_schedule_class_section_id").
		Joins("JOIN classes ON classes.class_id = class_sections.class_section_class_id").
		Joins("JOIN sections ON sections.section_id = class_sections.class_section_section_id").
		Where("exam_schedules.exam_schedule_exam_id = ?", examID).
		Select("exam_schedules.*, classes.class_name, sections.section_name").
		Order("classes.class_order ASC, class_sections.class_section_order ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// POST /api/exams/:id/schedules
func (ctl *ExamScheduleController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	examID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.ExamModel{}, examID); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateScheduleRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&classModel.ClassSectionModel{}, req.ClassSectionID); err != nil {
		return helper.JsonFromError(c, err)
	}
	dup, err := t.Exists(&model.ExamScheduleModel{},
		"exam_schedule_exam_id = ? AND exam_schedule_class_section_id = ?", examID, req.ClassSectionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if dup {
		return helper.JsonFromError(c, helper.Conflict("classSectionId", "exam is already scheduled for this class section"))
	}
	m := &model.ExamScheduleModel{ExamScheduleExamID: examID, ExamScheduleClassSectionID: req.ClassSectionID}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Exam schedule created", m)
}

// DELETE /api/exams/schedules/:id
func (ctl *ExamScheduleController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ExamScheduleModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	subjects := t.Query(&model.ExamSubjectModel{}).Select("exam_subject_id").Where("exam_subject_exam_schedule_id = ?", id)
	if has, err := t.Exists(&model.ExamResultModel{}, "exam_result_exam_subject_id IN (?)", subjects); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "exam schedule has results"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		return deleteSchedules(tx, []uuid.UUID{id})
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Exam schedule deleted")
}

/* ================= /exams/schedules/:id/subjects ================= */

func (ctl *ExamScheduleController) ListSubjects(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.ExamScheduleModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	rows := []ExamSubjectView{}
	err = t.Table(&model.ExamSubjectModel{}).
		Joins("JOIN subjects ON subjects.subject_id = exam_subjects.exam_subject_subject_id").
		Where("exam_subjects.exam_subject_exam_schedule_id = ?", id).
		Select("exam_subjects.*, subjects.subject_name, subjects.subject_code").
		Order("exam_subjects.exam_subject_date ASC, subjects.subject_name ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

func (ctl *ExamScheduleController) AddSubject(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	scheduleID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.ExamScheduleModel{}, scheduleID); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ExamSubjectRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&subjectModel.SubjectModel{}, req.SubjectID); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel(scheduleID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := uniqueSubject(t, scheduleID, req.SubjectID, uuid.Nil); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Exam subject created", m)
}

// PUT /api/exams/subjects/:id: replace; maxMarks tidak boleh di bawah nilai yang sudah ada.
func (ctl *ExamScheduleController) UpdateSubject(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.ExamSubjectModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ExamSubjectRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&subjectModel.SubjectModel{}, req.SubjectID); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel(cur.ExamSubjectExamScheduleID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := uniqueSubject(t, cur.ExamSubjectExamScheduleID, req.SubjectID, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if over, err := t.Exists(&model.ExamResultModel{},
		"exam_result_exam_subject_id = ? AND exam_result_marks > ?", id, m.ExamSubjectMaxMarks); err != nil {
		return helper.JsonFromError(c, err)
	} else if over {
		return helper.JsonFromError(c, helper.Conflict("maxMarks", "existing results exceed maxMarks"))
	}

	err = t.Updates(&model.ExamSubjectModel{}, id, map[string]any{
		"exam_subject_subject_id":       m.ExamSubjectSubjectID,
		"exam_subject_date":             m.ExamSubjectDate,
		"exam_subject_start_time":       m.ExamSubjectStartTime,
		"exam_subject_duration_minutes": m.ExamSubjectDurationMinutes,
		"exam_subject_room":             m.ExamSubjectRoom,
		"exam_subject_max_marks":        m.ExamSubjectMaxMarks,
		"exam_subject_min_marks":        m.ExamSubjectMinMarks,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := scope.First[model.ExamSubjectModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Exam subject updated", out)
}

func (ctl *ExamScheduleController) DeleteSubject(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.ExamSubjectModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if has, err := t.Exists(&model.ExamResultModel{}, "exam_result_exam_subject_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "exam subject has results"))
	}
	if err := t.Delete(&model.ExamSubjectModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Exam subject deleted")
}

func uniqueSubject(t *scope.Tenant, scheduleID, subjectID, excludeID uuid.UUID) error {
	q := "exam_subject_exam_schedule_id = ? AND exam_subject_subject_id = ?"
	args := []any{scheduleID, subjectID}
	if excludeID != uuid.Nil {
		q += " AND exam_subject_id <> ?"
		args = append(args, excludeID)
	}
	dup, err := t.Exists(&model.ExamSubjectModel{}, q, args...)
	if err != nil {
		return err
	}
	if dup {
		return helper.Conflict("subjectId", "subject is already in this exam schedule")
	}
	return nil
}
