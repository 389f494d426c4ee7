package route_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/academics/sessions/model"
	"schoolku_backend/internals/features/academics/sessions/route"
	"schoolku_backend/internals/features/academics/sessions/service"
	examModel "schoolku_backend/internals/features/exams/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	"schoolku_backend/internals/testutil"
)

func activeCount(t *testing.T, db *gorm.DB, ten *testutil.Tenant) int64 {
	t.Helper()
	n, err := ten.Scope(db).Count(&model.AcademicSessionModel{}, "academic_session_is_active = ?", true)
	require.NoError(t, err)
	return n
}

func TestSingleActiveSession(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SS1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.SessionRoutes(api, db) })

	ids := make([]uuid.UUID, 0, 3)
	for _, name := range []string{"2024/2025", "2025/2026", "2026/2027"} {
		status, env := testutil.Do(t, app, "POST", "/api/sessions", ten.AdminToken, map[string]any{
			"name":     name,
			"isActive": true,
		})
		require.Equal(t, 201, status, env.Error)
		ids = append(ids, testutil.ID(t, env))
		assert.Equal(t, int64(1), activeCount(t, db, ten))
	}

	active, err := service.Active(ten.Scope(db))
	require.NoError(t, err)
	assert.Equal(t, ids[2], active.AcademicSessionID)

	status, env := testutil.Do(t, app, "POST", "/api/sessions/"+ids[0].String()+"/activate", ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.True(t, testutil.Decode[model.AcademicSessionModel](t, env.Data).AcademicSessionIsActive)
	assert.Equal(t, int64(1), activeCount(t, db, ten))

	status, env = testutil.Do(t, app, "PUT", "/api/sessions/"+ids[1].String(), ten.AdminToken, map[string]any{"isActive": true})
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(1), activeCount(t, db, ten))

	active, err = service.Active(ten.Scope(db))
	require.NoError(t, err)
	assert.Equal(t, ids[1], active.AcademicSessionID)
}

func TestActivationDoesNotTouchOtherTenants(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "SSA")
	b := testutil.NewTenant(t, db, "SSB")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.SessionRoutes(api, db) })

	status, _ := testutil.Do(t, app, "POST", "/api/sessions", a.AdminToken, map[string]any{"name": "2026", "isActive": true})
	require.Equal(t, 201, status)
	status, env := testutil.Do(t, app, "POST", "/api/sessions", b.AdminToken, map[string]any{"name": "2026", "isActive": true})
	require.Equal(t, 201, status, env.Error)
	bID := testutil.ID(t, env)

	assert.Equal(t, int64(1), activeCount(t, db, a))
	assert.Equal(t, int64(1), activeCount(t, db, b))

	status, _ = testutil.Do(t, app, "POST", "/api/sessions/"+bID.String()+"/activate", a.AdminToken, nil)
	assert.Equal(t, 404, status)
}

func TestSessionValidationAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SS2")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.SessionRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/sessions", ten.AdminToken, map[string]any{
		"name":      "2026",
		"startDate": "2026-07-01",
		"endDate":   "2026-01-01",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "endDate must not be before startDate", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/sessions", ten.AdminToken, map[string]any{
		"name":      "2026",
		"startDate": "2026-07-01",
		"endDate":   "2027-06-30",
		"isActive":  true,
	})
	require.Equal(t, 201, status, env.Error)
	id := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/sessions", ten.AdminToken, map[string]any{"name": "2026"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "name already exists", env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/sessions/"+id.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "cannot delete the active session", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/sessions/"+id.String(), ten.AdminToken, map[string]any{"isActive": false})
	require.Equal(t, 200, status, env.Error)
	status, _ = testutil.Do(t, app, "DELETE", "/api/sessions/"+id.String(), ten.AdminToken, nil)
	assert.Equal(t, 200, status)

	_, err := service.Active(ten.Scope(db))
	assert.EqualError(t, err, "Active session not found")
}

func TestSessionDeleteBlockedByDependents(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SS3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.SessionRoutes(api, db) })
	sc := ten.Scope(db)

	sess := &model.AcademicSessionModel{AcademicSessionName: "2025/2026"}
	require.NoError(t, sc.Create(sess))
	path := "/api/sessions/" + sess.AcademicSessionID.String()

	del := func(want string) {
		t.Helper()
		status, env := testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
		assert.Equal(t, 400, status)
		assert.Equal(t, want, env.Error)
	}

	fm := &feeModel.FeesMasterModel{
		FeesMasterSessionID:  sess.AcademicSessionID,
		FeesMasterFeeGroupID: uuid.New(),
		FeesMasterClassID:    uuid.New(),
	}
	require.NoError(t, sc.Create(fm))
	del("session has fee masters")
	require.NoError(t, sc.Delete(&feeModel.FeesMasterModel{}, fm.FeesMasterID))

	exam := &examModel.ExamModel{ExamSessionID: sess.AcademicSessionID, ExamName: "UAS"}
	require.NoError(t, sc.Create(exam))
	del("session has exams")
	require.NoError(t, sc.Delete(&examModel.ExamModel{}, exam.ExamID))

	hw := &homeworkModel.HomeworkModel{
		HomeworkSessionID:      sess.AcademicSessionID,
		HomeworkClassSectionID: uuid.New(),
		HomeworkSubjectID:      uuid.New(),
		HomeworkTitle:          "Latihan",
		HomeworkDate:           time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		HomeworkSubmissionDate: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		HomeworkCreatedBy:      ten.Admin.UserID,
	}
	require.NoError(t, sc.Create(hw))
	del("session has homework")
	require.NoError(t, sc.Delete(&homeworkModel.HomeworkModel{}, hw.HomeworkID))

	status, env := testutil.Do(t, app, "DELETE", path, ten.AdminToken, nil)
	assert.Equal(t, 200, status, env.Error)
}
