package route_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/students/dto"
	"schoolku_backend/internals/features/students/model"
	"schoolku_backend/internals/features/students/route"
	"schoolku_backend/internals/features/students/service"
	"schoolku_backend/internals/testutil"
)

func newStudentApp(t *testing.T, code string) (*fiber.App, *testutil.Tenant, func() testutil.Academic) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, code)
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StudentRoutes(api, db) })
	n := 0
	return app, ten, func() testutil.Academic {
		n++
		return ten.Academic(t, db, fmt.Sprintf("Kelas %d", n))
	}
}

func TestAdmissionNumbersAreMonotonic(t *testing.T) {
	app, ten, _ := newStudentApp(t, "ST1")

	var got []string
	for i := 0; i < 3; i++ {
		status, env := testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{
			"firstName":     fmt.Sprintf("Siswa %d", i),
			"admissionDate": "2026-07-15",
		})
		require.Equal(t, 201, status, env.Error)
		got = append(got, testutil.Decode[model.StudentModel](t, env.Data).StudentAdmissionNo)
	}
	assert.Equal(t, []string{"20260001", "20260002", "20260003"}, got)

	// nomor manual di depan urutan → generator melompat setelahnya
	status, env := testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{
		"firstName": "Manual", "admissionNo": "20260010", "admissionDate": "2026-07-15",
	})
	require.Equal(t, 201, status, env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{
		"firstName": "Lagi", "admissionDate": "2026-08-01",
	})
	require.Equal(t, 201, status, env.Error)
	assert.Equal(t, "20260011", testutil.Decode[model.StudentModel](t, env.Data).StudentAdmissionNo)

	status, env = testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{
		"firstName": "Dup", "admissionNo": "20260011",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "admissionNo already exists", env.Error)
	assert.Equal(t, "admissionNo", env.Field)
}

func TestAdmissionSequenceIsPerTenant(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "STA")
	b := testutil.NewTenant(t, db, "STB")

	require.NoError(t, a.Scope(db).Create(&model.StudentModel{StudentAdmissionNo: "20260041", StudentFirstName: "X"}))
	no, err := service.NextAdmissionNo(b.Scope(db), 2026)
	require.NoError(t, err)
	assert.Equal(t, "20260001", no)

	no, err = service.NextAdmissionNo(a.Scope(db), 2026)
	require.NoError(t, err)
	assert.Equal(t, "20260042", no)

	// nomor manual berekor non-angka tidak mereset urutan
	require.NoError(t, a.Scope(db).Create(&model.StudentModel{StudentAdmissionNo: "2026-PINDAHAN-A", StudentFirstName: "Y"}))
	no, err = service.NextAdmissionNo(a.Scope(db), 2026)
	require.NoError(t, err)
	assert.Equal(t, "20260042", no)
}

func TestEnrollment(t *testing.T) {
	app, ten, academic := newStudentApp(t, "ST2")
	k1 := academic()
	k2 := academic()

	status, env := testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{
		"firstName":      "Ani",
		"guardianName":   "Bu Sri",
		"classSectionId": k1.ClassSectionID,
		"rollNo":         "1",
	})
	require.Equal(t, 201, status, env.Error)
	created := testutil.Decode[struct {
		Student    model.StudentModel        `json:"student"`
		Enrollment model.StudentSessionModel `json:"enrollment"`
	}](t, env.Data)
	assert.Equal(t, k1.SessionID, created.Enrollment.StudentSessionSessionID)
	assert.Equal(t, "Bu Sri", *created.Student.StudentGuardianName)

	status, env = testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{"firstName": "Budi"})
	require.Equal(t, 201, status, env.Error)
	budi := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/students/"+budi.String()+"/enroll", ten.AdminToken, map[string]any{
		"classSectionId": k1.ClassSectionID,
		"rollNo":         "1",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "rollNo already exists", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/students/"+budi.String()+"/enroll", ten.AdminToken, map[string]any{
		"classSectionId": k2.ClassSectionID,
		"rollNo":         "1",
	})
	require.Equal(t, 201, status, env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/students/"+budi.String()+"/enroll", ten.AdminToken, map[string]any{
		"classSectionId": k1.ClassSectionID,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "student is already enrolled in this session", env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/students?classId="+k2.ClassID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	list := testutil.Decode[[]model.StudentModel](t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "Budi", list[0].StudentFirstName)

	status, env = testutil.Do(t, app, "GET", "/api/students?sessionId="+k1.SessionID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(2), env.Pagination.Total)

	status, env = testutil.Do(t, app, "GET", "/api/students?classId="+uuid.NewString(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(0), env.Pagination.Total)

	status, env = testutil.Do(t, app, "GET", "/api/student-sessions?classId="+k1.ClassID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	views := testutil.Decode[[]dto.StudentSessionView](t, env.Data)
	require.Len(t, views, 1)
	assert.Equal(t, "Ani", views[0].FirstName)
	assert.Equal(t, "Kelas 1", views[0].ClassName)

	// pindah kelas dengan roll yang bentrok
	status, env = testutil.Do(t, app, "PUT", "/api/student-sessions/"+views[0].ID.String(), ten.AdminToken, map[string]any{
		"classSectionId": k2.ClassSectionID,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "rollNo already exists", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/student-sessions/"+views[0].ID.String(), ten.AdminToken, map[string]any{
		"classSectionId": k2.ClassSectionID,
		"rollNo":         "2",
	})
	require.Equal(t, 200, status, env.Error)
}

func TestEnrollWithoutActiveSession(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "ST3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StudentRoutes(api, db) })
	ac := ten.Academic(t, db, "Kelas 1")
	require.NoError(t, db.Exec("UPDATE academic_sessions SET academic_session_is_active = ?", false).Error)

	status, env := testutil.Do(t, app, "POST", "/api/students", ten.AdminToken, map[string]any{"firstName": "Ani"})
	require.Equal(t, 201, status)
	id := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/students/"+id.String()+"/enroll", ten.AdminToken, map[string]any{
		"classSectionId": ac.ClassSectionID,
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Active session not found", env.Error)

	status, _ = testutil.Do(t, app, "POST", "/api/students/"+id.String()+"/enroll", ten.AdminToken, map[string]any{
		"classSectionId": ac.ClassSectionID,
		"sessionId":      ac.SessionID,
	})
	assert.Equal(t, 201, status)
}

func TestStudentDeleteGuards(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "ST4")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StudentRoutes(api, db) })
	ac := ten.Academic(t, db, "Kelas 1")
	sc := ten.Scope(db)

	billed, billedSS := ten.Student(t, db, ac, "Ani")
	free, _ := ten.Student(t, db, ac, "Budi")

	grp := &feeModel.FeeGroupModel{FeeGroupName: "SPP"}
	require.NoError(t, sc.Create(grp))
	fm := &feeModel.FeesMasterModel{FeesMasterSessionID: ac.SessionID, FeesMasterFeeGroupID: grp.FeeGroupID, FeesMasterClassID: ac.ClassID}
	require.NoError(t, sc.Create(fm))
	require.NoError(t, sc.Create(&feeModel.StudentFeesMasterModel{
		StudentFeesMasterFeesMasterID:     fm.FeesMasterID,
		StudentFeesMasterStudentSessionID: billedSS,
		StudentFeesMasterIsActive:         true,
	}))

	status, env := testutil.Do(t, app, "DELETE", "/api/students/"+billed.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "student has fee assignments", env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/students/"+free.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	n, err := sc.Count(&model.StudentSessionModel{}, "student_session_student_id = ?", free)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStudentsTenantIsolation(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "STX")
	b := testutil.NewTenant(t, db, "STY")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StudentRoutes(api, db) })
	acB := b.Academic(t, db, "Kelas B")
	idB, _ := b.Student(t, db, acB, "Milik B")

	status, _ := testutil.Do(t, app, "GET", "/api/students/"+idB.String(), a.AdminToken, nil)
	assert.Equal(t, 404, status)
	status, _ = testutil.Do(t, app, "PUT", "/api/students/"+idB.String(), a.AdminToken, map[string]any{"firstName": "X"})
	assert.Equal(t, 404, status)
	status, _ = testutil.Do(t, app, "DELETE", "/api/students/"+idB.String(), a.AdminToken, nil)
	assert.Equal(t, 404, status)

	status, env := testutil.Do(t, app, "POST", "/api/students", a.AdminToken, map[string]any{
		"firstName": "Ani", "classSectionId": acB.ClassSectionID,
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Class section not found", env.Error)

	_, librarian := a.UserWithRole(t, db, constants.RoleLibrarian)
	status, _ = testutil.Do(t, app, "GET", "/api/students", librarian, nil)
	assert.Equal(t, 200, status)
	status, _ = testutil.Do(t, app, "POST", "/api/students", librarian, map[string]any{"firstName": "X"})
	assert.Equal(t, 403, status)
}
