package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel identitas permanen siswa. Data wali (guardian) ikut di sini.
type StudentModel struct {
	StudentID               uuid.UUID  `gorm:"column:student_id;type:uuid;primaryKey" json:"id"`
	StudentSchoolID         uuid.UUID  `gorm:"column:student_school_id;type:uuid;not null;uniqueIndex:uq_students_school_admission,priority:1" json:"schoolId"`
	StudentAdmissionNo      string     `gorm:"column:student_admission_no;size:40;not null;uniqueIndex:uq_students_school_admission,priority:2" json:"admissionNo"`
	StudentAdmissionDate    *time.Time `gorm:"column:student_admission_date;type:date" json:"admissionDate"`
	StudentFirstName        string     `gorm:"column:student_first_name;size:80;not null" json:"firstName"`
	StudentLastName         *string    `gorm:"column:student_last_name;size:80" json:"lastName"`
	StudentGender           *string    `gorm:"column:student_gender;size:10" json:"gender"`
	StudentDateOfBirth      *time.Time `gorm:"column:student_date_of_birth;type:date" json:"dateOfBirth"`
	StudentEmail            *string    `gorm:"column:student_email;size:160" json:"email"`
	StudentPhone            *string    `gorm:"column:student_phone;size:40" json:"phone"`
	StudentAddress          *string    `gorm:"column:student_address" json:"address"`
	StudentGuardianName     *string    `gorm:"column:student_guardian_name;size:160" json:"guardianName"`
	StudentGuardianPhone    *string    `gorm:"column:student_guardian_phone;size:40" json:"guardianPhone"`
	StudentGuardianRelation *string    `gorm:"column:student_guardian_relation;size:40" json:"guardianRelation"`
	StudentIsActive         bool       `gorm:"column:student_is_active;not null;default:true" json:"isActive"`
	StudentCreatedAt        time.Time  `gorm:"column:student_created_at;not null;autoCreateTime" json:"createdAt"`
	StudentUpdatedAt        time.Time  `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (StudentModel) TableName() string    { return "students" }
func (StudentModel) TenantColumn() string { return "student_school_id" }
func (StudentModel) KeyColumn() string    { return "student_id" }
func (StudentModel) Label() string        { return "Student" }

func (m *StudentModel) SetSchoolID(id uuid.UUID) { m.StudentSchoolID = id }

func (m *StudentModel) BeforeCreate(*gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

// StudentSessionModel enrollment siswa ke satu class-section pada satu tahun ajaran.
type StudentSessionModel struct {
	StudentSessionID             uuid.UUID `gorm:"column:student_session_id;type:uuid;primaryKey" json:"id"`
	StudentSessionSchoolID       uuid.UUID `gorm:"column:student_session_school_id;type:uuid;not null;index" json:"schoolId"`
	StudentSessionStudentID      uuid.UUID `gorm:"column:student_session_student_id;type:uuid;not null;uniqueIndex:uq_student_sessions_student_session,priority:1" json:"studentId"`
	StudentSessionSessionID      uuid.UUID `gorm:"column:student_session_session_id;type:uuid;not null;uniqueIndex:uq_student_sessions_student_session,priority:2;uniqueIndex:uq_student_sessions_roll,priority:2" json:"sessionId"`
	StudentSessionClassSectionID uuid.UUID `gorm:"column:student_session_class_section_id;type:uuid;not null;uniqueIndex:uq_student_sessions_roll,priority:1" json:"classSectionId"`
	StudentSessionRollNo         *string   `gorm:"column:student_session_roll_no;size:20;uniqueIndex:uq_student_sessions_roll,priority:3" json:"rollNo"`
	StudentSessionCreatedAt      time.Time `gorm:"column:student_session_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (StudentSessionModel) TableName() string    { return "student_sessions" }
func (StudentSessionModel) TenantColumn() string { return "student_session_school_id" }
func (StudentSessionModel) KeyColumn() string    { return "student_session_id" }
func (StudentSessionModel) Label() string        { return "Student session" }

func (m *StudentSessionModel) SetSchoolID(id uuid.UUID) { m.StudentSessionSchoolID = id }

func (m *StudentSessionModel) BeforeCreate(*gorm.DB) error {
	if m.StudentSessionID == uuid.Nil {
		m.StudentSessionID = uuid.New()
	}
	return nil
}
