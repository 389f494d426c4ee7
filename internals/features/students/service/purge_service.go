package service

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/databases/scope"
	attendanceModel "schoolku_backend/internals/features/attendance/model"
	examModel "schoolku_backend/internals/features/exams/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	"schoolku_backend/internals/features/students/model"
)

// PurgeEnrollments menghapus StudentSession beserta catatan turunannya
// (absensi, nilai ujian, submission PR). Tagihan harus sudah dicek pemanggil.
func PurgeEnrollments(tx *scope.Tenant, ssIDs []uuid.UUID) error {
	if err := tx.Query(&attendanceModel.StudentAttendanceModel{}).
		Where("student_attendance_student_session_id IN ?", ssIDs).
		Delete(&attendanceModel.StudentAttendanceModel{}).Error; err != nil {
		return err
	}
	if err := tx.Query(&examModel.ExamResultModel{}).
		Where("exam_result_student_session_id IN ?", ssIDs).
		Delete(&examModel.ExamResultModel{}).Error; err != nil {
		return err
	}
	if err := tx.Query(&homeworkModel.HomeworkSubmissionModel{}).
		Where("homework_submission_student_session_id IN ?", ssIDs).
		Delete(&homeworkModel.HomeworkSubmissionModel{}).Error; err != nil {
		return err
	}
	return tx.Query(&model.StudentSessionModel{}).
		Where("student_session_id IN ?", ssIDs).
		Delete(&model.StudentSessionModel{}).Error
}
