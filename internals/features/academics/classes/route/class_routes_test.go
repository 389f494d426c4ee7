package route_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/academics/classes/model"
	"schoolku_backend/internals/features/academics/classes/route"
	sessionModel "schoolku_backend/internals/features/academics/sessions/model"
	examModel "schoolku_backend/internals/features/exams/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	frontOfficeModel "schoolku_backend/internals/features/front_office/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	studentModel "schoolku_backend/internals/features/students/model"
	"schoolku_backend/internals/testutil"
)

func createSection(t *testing.T, app *fiber.App, token, name string) uuid.UUID {
	t.Helper()
	status, env := testutil.Do(t, app, "POST", "/api/sections", token, map[string]any{"name": name})
	require.Equal(t, 201, status, env.Error)
	return testutil.ID(t, env)
}

func TestClassWithSections(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "CL1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ClassRoutes(api, db) })

	a := createSection(t, app, ten.AdminToken, "A")
	b := createSection(t, app, ten.AdminToken, "B")
	c := createSection(t, app, ten.AdminToken, "C")

	status, env := testutil.Do(t, app, "POST", "/api/classes", ten.AdminToken, map[string]any{
		"name":       "Kelas 1",
		"order":      1,
		"sectionIds": []uuid.UUID{a, b, a},
	})
	require.Equal(t, 201, status, env.Error)
	cls := testutil.Decode[model.ClassModel](t, env.Data)
	require.Len(t, cls.Sections, 2)

	status, env = testutil.Do(t, app, "PUT", "/api/classes/"+cls.ClassID.String(), ten.AdminToken, map[string]any{
		"sectionIds": []uuid.UUID{b, c},
	})
	require.Equal(t, 200, status, env.Error)
	cls = testutil.Decode[model.ClassModel](t, env.Data)
	names := []string{}
	for _, s := range cls.Sections {
		names = append(names, s.SectionName)
	}
	assert.ElementsMatch(t, []string{"B", "C"}, names)

	status, env = testutil.Do(t, app, "GET", "/api/classes?withSections=true", ten.AdminToken, nil)
	require.Equal(t, 200, status)
	list := testutil.Decode[[]model.ClassModel](t, env.Data)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Sections, 2)

	status, env = testutil.Do(t, app, "GET", "/api/class-sections?classId="+cls.ClassID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Len(t, testutil.Decode[[]model.ClassSectionView](t, env.Data), 2)

	status, env = testutil.Do(t, app, "DELETE", "/api/sections/"+b.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "section is used by a class", env.Error)

	status, _ = testutil.Do(t, app, "DELETE", "/api/sections/"+a.String(), ten.AdminToken, nil)
	assert.Equal(t, 200, status)
}

func TestClassSectionRejectsForeignSection(t *testing.T) {
	db := testutil.NewDB(t)
	x := testutil.NewTenant(t, db, "CLX")
	y := testutil.NewTenant(t, db, "CLY")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ClassRoutes(api, db) })

	foreign := createSection(t, app, y.AdminToken, "A")
	status, env := testutil.Do(t, app, "POST", "/api/classes", x.AdminToken, map[string]any{
		"name":       "Kelas 1",
		"sectionIds": []uuid.UUID{foreign},
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Section not found", env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/classes", x.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(0), env.Pagination.Total)
}

func TestClassDeleteBlockedByEnrollment(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "CL2")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ClassRoutes(api, db) })
	sc := ten.Scope(db)

	a := createSection(t, app, ten.AdminToken, "A")
	b := createSection(t, app, ten.AdminToken, "B")
	status, env := testutil.Do(t, app, "POST", "/api/classes", ten.AdminToken, map[string]any{
		"name": "Kelas 2", "sectionIds": []uuid.UUID{a, b},
	})
	require.Equal(t, 201, status, env.Error)
	cls := testutil.Decode[model.ClassModel](t, env.Data)

	sess := &sessionModel.AcademicSessionModel{AcademicSessionName: "2026"}
	require.NoError(t, sc.Create(sess))
	st := &studentModel.StudentModel{StudentAdmissionNo: "20260001", StudentFirstName: "Ani", StudentIsActive: true}
	require.NoError(t, sc.Create(st))
	var csA uuid.UUID
	for _, s := range cls.Sections {
		if s.SectionID == a {
			csA = s.ClassSectionID
		}
	}
	require.NoError(t, sc.Create(&studentModel.StudentSessionModel{
		StudentSessionStudentID:      st.StudentID,
		StudentSessionSessionID:      sess.AcademicSessionID,
		StudentSessionClassSectionID: csA,
	}))

	status, env = testutil.Do(t, app, "PUT", "/api/classes/"+cls.ClassID.String(), ten.AdminToken, map[string]any{
		"sectionIds": []uuid.UUID{b},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "class section has enrolled students", env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/classes/"+cls.ClassID.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "class has enrolled students", env.Error)

	// section B tanpa siswa boleh dilepas
	status, env = testutil.Do(t, app, "PUT", "/api/classes/"+cls.ClassID.String(), ten.AdminToken, map[string]any{
		"sectionIds": []uuid.UUID{a},
	})
	require.Equal(t, 200, status, env.Error)
	assert.Len(t, testutil.Decode[model.ClassModel](t, env.Data).Sections, 1)
}

func TestClassDeleteBlockedByDependents(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "CL3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ClassRoutes(api, db) })
	sc := ten.Scope(db)

	a := createSection(t, app, ten.AdminToken, "A")
	status, env := testutil.Do(t, app, "POST", "/api/classes", ten.AdminToken, map[string]any{
		"name": "Kelas 3", "sectionIds": []uuid.UUID{a},
	})
	require.Equal(t, 201, status, env.Error)
	cls := testutil.Decode[model.ClassModel](t, env.Data)
	require.Len(t, cls.Sections, 1)
	csID := cls.Sections[0].ClassSectionID
	path := "/api/classes/" + cls.ClassID.String()

	sess := &sessionModel.AcademicSessionModel{AcademicSessionName: "2026"}
	require.NoError(t, sc.Create(sess))

	// fees master
	fg := &feeModel.FeeGroupModel{FeeGroupName: "Term 1"}
	require.NoError(t, sc.Create(fg))
	fm := &feeModel.FeesMasterModel{
		FeesMasterSessionID:  sess.AcademicSessionID,
		FeesMasterFeeGroupID: fg.FeeGroupID,
		FeesMasterClassID:    cls.ClassID,
	}
	require.NoError(t, sc.Create(fm))
	status, env = testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "class has fee masters", env.Error)
	require.NoError(t, sc.Delete(&feeModel.FeesMasterModel{}, fm.FeesMasterID))

	// jadwal ujian
	exam := &examModel.ExamModel{ExamSessionID: sess.AcademicSessionID, ExamName: "UTS"}
	require.NoError(t, sc.Create(exam))
	es := &examModel.ExamScheduleModel{ExamScheduleExamID: exam.ExamID, ExamScheduleClassSectionID: csID}
	require.NoError(t, sc.Create(es))
	status, env = testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "class section has exam schedules", env.Error)
	status, env = testutil.Do(t, app, "PUT", path, ten.AdminToken, map[string]any{"sectionIds": []uuid.UUID{}})
	assert.Equal(t, 400, status)
	assert.Equal(t, "class section has exam schedules", env.Error)
	require.NoError(t, sc.Delete(&examModel.ExamScheduleModel{}, es.ExamScheduleID))

	// homework
	hw := &homeworkModel.HomeworkModel{
		HomeworkSessionID:      sess.AcademicSessionID,
		HomeworkClassSectionID: csID,
		HomeworkSubjectID:      uuid.New(),
		HomeworkTitle:          "Latihan",
		HomeworkDate:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		HomeworkSubmissionDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		HomeworkCreatedBy:      ten.Admin.UserID,
	}
	require.NoError(t, sc.Create(hw))
	status, env = testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "class section has homework", env.Error)
	require.NoError(t, sc.Delete(&homeworkModel.HomeworkModel{}, hw.HomeworkID))

	// enquiry tidak menahan delete, referensinya dikosongkan
	enq := &frontOfficeModel.EnquiryModel{
		EnquiryName:    "Calon",
		EnquiryClassID: &cls.ClassID,
		EnquiryDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EnquiryStatus:  "pending",
	}
	require.NoError(t, sc.Create(enq))
	status, env = testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)

	var left frontOfficeModel.EnquiryModel
	require.NoError(t, db.Where("enquiry_id = ?", enq.EnquiryID).Take(&left).Error)
	assert.Nil(t, left.EnquiryClassID)
	n, err := sc.Count(&model.ClassSectionModel{}, "class_section_id = ?", csID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
