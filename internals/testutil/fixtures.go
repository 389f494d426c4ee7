package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/academics/classes/model"
	sessionModel "schoolku_backend/internals/features/academics/sessions/model"
	sessionService "schoolku_backend/internals/features/academics/sessions/service"
	subjectModel "schoolku_backend/internals/features/academics/subjects/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

// Academic satu class-section siap pakai di session aktif.
type Academic struct {
	SessionID      uuid.UUID
	ClassID        uuid.UUID
	SectionID      uuid.UUID
	ClassSectionID uuid.UUID
}

// Academic membuat class + section baru; session aktif dibuat bila belum ada.
func (f *Tenant) Academic(t testing.TB, db *gorm.DB, className string) Academic {
	t.Helper()
	sc := f.Scope(db)

	var sessionID uuid.UUID
	active, err := sessionService.Active(sc)
	switch {
	case err == nil:
		sessionID = active.AcademicSessionID
	case helper.IsKind(err, helper.KindNotFound):
		s := &sessionModel.AcademicSessionModel{AcademicSessionName: "2026/2027"}
		require.NoError(t, sc.Create(s))
		require.NoError(t, sessionService.Activate(sc, s.AcademicSessionID))
		sessionID = s.AcademicSessionID
	default:
		require.NoError(t, err)
	}

	cls := &classModel.ClassModel{ClassName: className}
	require.NoError(t, sc.Create(cls))
	sec := &classModel.SectionModel{SectionName: className + "-A"}
	require.NoError(t, sc.Create(sec))
	cs := &classModel.ClassSectionModel{ClassSectionClassID: cls.ClassID, ClassSectionSectionID: sec.SectionID}
	require.NoError(t, sc.Create(cs))

	return Academic{
		SessionID:      sessionID,
		ClassID:        cls.ClassID,
		SectionID:      sec.SectionID,
		ClassSectionID: cs.ClassSectionID,
	}
}

// Student membuat siswa dan mendaftarkannya ke class-section ac.
func (f *Tenant) Student(t testing.TB, db *gorm.DB, ac Academic, name string) (studentID, studentSessionID uuid.UUID) {
	t.Helper()
	sc := f.Scope(db)
	st := &studentModel.StudentModel{
		StudentAdmissionNo: fmt.Sprintf("T-%s", uuid.NewString()[:8]),
		StudentFirstName:   name,
		StudentIsActive:    true,
	}
	require.NoError(t, sc.Create(st))
	ss := &studentModel.StudentSessionModel{
		StudentSessionStudentID:      st.StudentID,
		StudentSessionSessionID:      ac.SessionID,
		StudentSessionClassSectionID: ac.ClassSectionID,
	}
	require.NoError(t, sc.Create(ss))
	return st.StudentID, ss.StudentSessionID
}

// Subject membuat subject dengan kode dari nama.
func (f *Tenant) Subject(t testing.TB, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	s := &subjectModel.SubjectModel{
		SubjectName: name,
		SubjectCode: strings.ToUpper(helper.Slugify(name, 20)),
		SubjectType: subjectModel.SubjectTheory,
	}
	require.NoError(t, f.Scope(db).Create(s))
	return s.SubjectID
}
