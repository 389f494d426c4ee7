package database

import (
	"log"

	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/academics/classes/model"
	sessionModel "schoolku_backend/internals/features/academics/sessions/model"
	subjectModel "schoolku_backend/internals/features/academics/subjects/model"
	attendanceModel "schoolku_backend/internals/features/attendance/model"
	examModel "schoolku_backend/internals/features/exams/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	frontOfficeModel "schoolku_backend/internals/features/front_office/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	libraryModel "schoolku_backend/internals/features/library/model"
	schoolModel "schoolku_backend/internals/features/schools/model"
	staffModel "schoolku_backend/internals/features/staff/model"
	studentModel "schoolku_backend/internals/features/students/model"
	transportModel "schoolku_backend/internals/features/transport/model"
	authModel "schoolku_backend/internals/features/users/auth/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	userModel "schoolku_backend/internals/features/users/users/model"
)

// Models urutan parent dulu.
func Models() []any {
	return []any{
		&schoolModel.SchoolModel{},
		&roleModel.PermissionModel{},
		&roleModel.RoleModel{},
		&roleModel.RolePermissionModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},

		&sessionModel.AcademicSessionModel{},
		&classModel.ClassModel{},
		&classModel.SectionModel{},
		&classModel.ClassSectionModel{},
		&subjectModel.SubjectModel{},

		&studentModel.StudentModel{},
		&studentModel.StudentSessionModel{},
		&staffModel.DepartmentModel{},
		&staffModel.StaffModel{},

		&attendanceModel.StudentAttendanceModel{},
		&attendanceModel.StaffAttendanceModel{},

		&feeModel.FeeTypeModel{},
		&feeModel.FeeGroupModel{},
		&feeModel.FeeGroupTypeModel{},
		&feeModel.FeesMasterModel{},
		&feeModel.StudentFeesMasterModel{},
		&feeModel.FeePaymentModel{},

		&examModel.ExamModel{},
		&examModel.ExamScheduleModel{},
		&examModel.ExamSubjectModel{},
		&examModel.ExamResultModel{},

		&libraryModel.BookModel{},
		&libraryModel.LibraryMemberModel{},
		&libraryModel.BookIssueModel{},

		&transportModel.VehicleModel{},
		&transportModel.TransportRouteModel{},
		&transportModel.VehicleRouteModel{},

		&frontOfficeModel.ComplaintModel{},
		&frontOfficeModel.EnquiryModel{},

		&homeworkModel.HomeworkModel{},
		&homeworkModel.HomeworkSubmissionModel{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Printf("[INFO] migrate: %d tabel OK", len(Models()))
	return nil
}
