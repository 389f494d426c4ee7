package service

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	sessionService "schoolku_backend/internals/features/academics/sessions/service"
	"schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

type EnrollInput struct {
	StudentID      uuid.UUID
	ClassSectionID uuid.UUID
	SessionID      *uuid.UUID
	RollNo         *string
}

// Enroll membuat StudentSession. Session kosong → session aktif.
func Enroll(t *scope.Tenant, in EnrollInput) (*model.StudentSessionModel, error) {
	if err := t.Owns(&classModel.ClassSectionModel{}, in.ClassSectionID); err != nil {
		return nil, err
	}
	sessionID, err := sessionService.Resolve(t, in.SessionID)
	if err != nil {
		return nil, err
	}

	dup, err := t.Exists(&model.StudentSessionModel{},
		"student_session_student_id = ? AND student_session_session_id = ?", in.StudentID, sessionID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, helper.Conflict("sessionId", "student is already enrolled in this session")
	}
	if err := CheckRollNo(t, in.ClassSectionID, sessionID, in.RollNo, uuid.Nil); err != nil {
		return nil, err
	}

	ss := &model.StudentSessionModel{
		StudentSessionStudentID:      in.StudentID,
		StudentSessionSessionID:      sessionID,
		StudentSessionClassSectionID: in.ClassSectionID,
		StudentSessionRollNo:         in.RollNo,
	}
	if err := t.Create(ss); err != nil {
		return nil, err
	}
	return ss, nil
}

// CheckRollNo: roll unik per (class-section, session); nil roll dilewati.
func CheckRollNo(t *scope.Tenant, classSectionID, sessionID uuid.UUID, rollNo *string, excludeID uuid.UUID) error {
	if rollNo == nil {
		return nil
	}
	q := "student_session_class_section_id = ? AND student_session_session_id = ? AND student_session_roll_no = ?"
	args := []any{classSectionID, sessionID, *rollNo}
	if excludeID != uuid.Nil {
		q += " AND student_session_id <> ?"
		args = append(args, excludeID)
	}
	taken, err := t.Exists(&model.StudentSessionModel{}, q, args...)
	if err != nil {
		return err
	}
	if taken {
		return helper.Conflict("rollNo", "rollNo already exists")
	}
	return nil
}

// StudentSessionIDs: enrollment yang cocok dengan filter class/section/session.
// Nil pada semua filter → nil (tanpa filter).
func StudentSessionIDs(t *scope.Tenant, classID, sectionID, sessionID *uuid.UUID) ([]uuid.UUID, bool, error) {
	if classID == nil && sectionID == nil && sessionID == nil {
		return nil, false, nil
	}
	q := t.Table(&model.StudentSessionModel{}).
		Joins("JOIN class_sections ON class_sections.class_section_id = student_sessions.student_session_class_section_id")
	if classID != nil {
		q = q.Where("class_sections.class_section_class_id = ?", *classID)
	}
	if sectionID != nil {
		q = q.Where("class_sections.class_section_section_id = ?", *sectionID)
	}
	if sessionID != nil {
		q = q.Where("student_sessions.student_session_session_id = ?", *sessionID)
	}
	var ids []uuid.UUID
	err := q.Pluck("student_sessions.student_session_id", &ids).Error
	return ids, true, err
}
