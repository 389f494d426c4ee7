package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/exams/controller"
	"schoolku_backend/internals/features/exams/model"
	"schoolku_backend/internals/features/exams/route"
	"schoolku_backend/internals/testutil"
)

func TestExamResultsFlow(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "EX1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ExamRoutes(api, db) })

	ac := ten.Academic(t, db, "Kelas 7")
	other := ten.Academic(t, db, "Kelas 8")
	_, ssA := ten.Student(t, db, ac, "Ani")
	_, ssB := ten.Student(t, db, ac, "Budi")
	_, ssOther := ten.Student(t, db, other, "Cici")
	mathID := ten.Subject(t, db, "Matematika")

	status, env := testutil.Do(t, app, "POST", "/api/exams", ten.AdminToken, map[string]any{"name": "UTS"})
	require.Equal(t, 201, status, env.Error)
	examID := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/exams", ten.AdminToken, map[string]any{"name": "UTS"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "name already exists", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/exams/"+examID.String()+"/schedules", ten.AdminToken, map[string]any{
		"classSectionId": ac.ClassSectionID,
	})
	require.Equal(t, 201, status, env.Error)
	scheduleID := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/exams/"+examID.String()+"/schedules", ten.AdminToken, map[string]any{
		"classSectionId": ac.ClassSectionID,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "classSectionId", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/exams/schedules/"+scheduleID.String()+"/subjects", ten.AdminToken, map[string]any{
		"subjectId": mathID, "maxMarks": 30, "minMarks": 50,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "maxMarks must not be less than minMarks", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/exams/schedules/"+scheduleID.String()+"/subjects", ten.AdminToken, map[string]any{
		"subjectId": mathID, "date": "2026-11-02", "startTime": "08:00", "room": "R-1", "maxMarks": 100, "minMarks": 60,
	})
	require.Equal(t, 201, status, env.Error)
	subjectID := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "GET", "/api/exams/schedules/"+scheduleID.String()+"/subjects", ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	views := testutil.Decode[[]controller.ExamSubjectView](t, env.Data)
	require.Len(t, views, 1)
	assert.Equal(t, "Matematika", views[0].SubjectName)
	require.NotNil(t, views[0].ExamSubjectStartTime)
	assert.Equal(t, "08:00:00", views[0].ExamSubjectStartTime.String())

	status, env = testutil.Do(t, app, "POST", "/api/exams/results", ten.AdminToken, map[string]any{
		"examSubjectId": subjectID,
		"records":       []map[string]any{{"studentSessionId": ssA, "marks": 101}},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "marks must not exceed maxMarks", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/exams/results", ten.AdminToken, map[string]any{
		"examSubjectId": subjectID,
		"records":       []map[string]any{{"studentSessionId": ssOther, "marks": 70}},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "student is not in the scheduled class section", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/exams/results", ten.AdminToken, map[string]any{
		"examSubjectId": subjectID,
		"records": []map[string]any{
			{"studentSessionId": ssA, "marks": 55},
			{"studentSessionId": ssB, "isAbsent": true, "marks": 90},
		},
	})
	require.Equal(t, 200, status, env.Error)

	// upsert kedua: nilai diperbarui, tidak ada baris baru
	status, env = testutil.Do(t, app, "POST", "/api/exams/results", ten.AdminToken, map[string]any{
		"examSubjectId": subjectID,
		"records":       []map[string]any{{"studentSessionId": ssA, "marks": 85.5}},
	})
	require.Equal(t, 200, status, env.Error)

	var n int64
	require.NoError(t, db.Model(&model.ExamResultModel{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)

	status, env = testutil.Do(t, app, "GET", "/api/exams/results?examSubjectId="+subjectID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	results := testutil.Decode[[]controller.ResultView](t, env.Data)
	require.Len(t, results, 2)
	for _, r := range results {
		switch r.ExamResultStudentSessionID {
		case ssA:
			require.NotNil(t, r.ExamResultMarks)
			assert.True(t, decimal.RequireFromString("85.5").Equal(*r.ExamResultMarks))
			require.NotNil(t, r.Passed)
			assert.True(t, *r.Passed)
		case ssB:
			assert.True(t, r.ExamResultIsAbsent)
			assert.Nil(t, r.ExamResultMarks)
			assert.Nil(t, r.Passed)
		}
	}

	// maxMarks tidak bisa diturunkan di bawah nilai yang ada
	status, env = testutil.Do(t, app, "PUT", "/api/exams/subjects/"+subjectID.String(), ten.AdminToken, map[string]any{
		"subjectId": mathID, "maxMarks": 80, "minMarks": 40,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "existing results exceed maxMarks", env.Error)

	for _, path := range []string{"/api/exams/" + examID.String(), "/api/exams/schedules/" + scheduleID.String(), "/api/exams/subjects/" + subjectID.String()} {
		status, env = testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
		assert.Equal(t, 400, status, path)
		assert.Contains(t, env.Error, "has results")
	}
}

func TestExamDeleteCascadesWithoutResults(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "EX2")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ExamRoutes(api, db) })
	ac := ten.Academic(t, db, "Kelas 1")
	subject := ten.Subject(t, db, "IPA")

	status, env := testutil.Do(t, app, "POST", "/api/exams", ten.AdminToken, map[string]any{"name": "UAS", "sessionId": ac.SessionID})
	require.Equal(t, 201, status, env.Error)
	examID := testutil.ID(t, env)
	status, env = testutil.Do(t, app, "POST", "/api/exams/"+examID.String()+"/schedules", ten.AdminToken, map[string]any{"classSectionId": ac.ClassSectionID})
	require.Equal(t, 201, status, env.Error)
	scheduleID := testutil.ID(t, env)
	status, env = testutil.Do(t, app, "POST", "/api/exams/schedules/"+scheduleID.String()+"/subjects", ten.AdminToken, map[string]any{
		"subjectId": subject, "maxMarks": 100,
	})
	require.Equal(t, 201, status, env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/exams/"+examID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)

	var n int64
	require.NoError(t, db.Model(&model.ExamSubjectModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&model.ExamScheduleModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestExamsAreTenantScoped(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "EX3")
	b := testutil.NewTenant(t, db, "EX4")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.ExamRoutes(api, db) })
	a.Academic(t, db, "Kelas A")
	bc := b.Academic(t, db, "Kelas B")

	status, env := testutil.Do(t, app, "POST", "/api/exams", a.AdminToken, map[string]any{"name": "UTS"})
	require.Equal(t, 201, status, env.Error)
	examID := testutil.ID(t, env)

	status, _ = testutil.Do(t, app, "GET", "/api/exams/"+examID.String(), b.AdminToken, nil)
	assert.Equal(t, 404, status)

	// class-section tenant lain tidak bisa dipakai
	status, env = testutil.Do(t, app, "POST", "/api/exams/"+examID.String()+"/schedules", a.AdminToken, map[string]any{"classSectionId": bc.ClassSectionID})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Class section not found", env.Error)

	status, _ = testutil.Do(t, app, "GET", "/api/exams/results?examSubjectId="+uuid.NewString(), a.AdminToken, nil)
	assert.Equal(t, 404, status)
}
