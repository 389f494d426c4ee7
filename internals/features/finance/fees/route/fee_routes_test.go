package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/route"
	"schoolku_backend/internals/features/finance/ledger"
	"schoolku_backend/internals/testutil"
)

type feeEnv struct {
	db  *gorm.DB
	app *fiber.App
	ten *testutil.Tenant
	ac  testutil.Academic
}

func newFeeEnv(t *testing.T, code string) feeEnv {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, code)
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.FeeRoutes(api, db) })
	return feeEnv{db: db, app: app, ten: ten, ac: ten.Academic(t, db, "Kelas C")}
}

func (e feeEnv) tuitionGroup(t *testing.T) (groupID uuid.UUID) {
	status, env := testutil.Do(t, e.app, "POST", "/api/fees/types", e.ten.AdminToken, map[string]any{
		"name": "Tuition", "code": "tui",
	})
	require.Equal(t, 201, status, env.Error)
	typeID := testutil.ID(t, env)

	status, env = testutil.Do(t, e.app, "POST", "/api/fees/groups", e.ten.AdminToken, map[string]any{
		"name": "Term 1",
		"types": []map[string]any{{
			"feeTypeId": typeID, "amount": 5000, "dueDate": "2020-01-31",
			"fineType": "percentage", "finePercent": 10,
		}},
	})
	require.Equal(t, 201, status, env.Error)
	return testutil.ID(t, env)
}

func TestTuitionLedgerScenario(t *testing.T) {
	e := newFeeEnv(t, "FE1")
	db, ten, app := e.db, e.ten, e.app

	studentID, ssID := ten.Student(t, db, e.ac, "Xena")
	groupID := e.tuitionGroup(t)

	status, env := testutil.Do(t, app, "POST", "/api/fees/masters", ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID, "assignToAll": true,
	})
	require.Equal(t, 201, status, env.Error)
	created := testutil.Decode[struct {
		Master   model.FeesMasterModel `json:"master"`
		Assigned int                   `json:"assigned"`
	}](t, env.Data)
	assert.Equal(t, 1, created.Assigned)
	assert.Equal(t, e.ac.SessionID, created.Master.FeesMasterSessionID)

	var sfm model.StudentFeesMasterModel
	require.NoError(t, db.Where("student_fees_master_student_session_id = ?", ssID).Take(&sfm).Error)

	status, env = testutil.Do(t, app, "POST", "/api/fees/collect", ten.AdminToken, map[string]any{
		"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": 2000, "mode": "cash",
	})
	require.Equal(t, 201, status, env.Error)
	pay := testutil.Decode[model.FeePaymentModel](t, env.Data)
	assert.Equal(t, ten.Admin.UserID, pay.FeePaymentCollectedBy)

	status, env = testutil.Do(t, app, "GET", "/api/fees/due?studentId="+studentID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	rows := testutil.Decode[[]ledger.StudentLedger](t, env.Data)
	require.Len(t, rows, 1)
	sum := rows[0].Summary
	assert.True(t, decimal.NewFromInt(5000).Equal(sum.TotalAssigned), sum.TotalAssigned.String())
	assert.True(t, decimal.NewFromInt(2000).Equal(sum.TotalPaid))
	assert.True(t, decimal.NewFromInt(3000).Equal(sum.TotalDue))
	assert.True(t, decimal.NewFromInt(500).Equal(sum.TotalFine))
	assert.True(t, decimal.NewFromInt(3500).Equal(sum.GrandTotal))
	require.Len(t, rows[0].Sessions, 1)
	assert.Equal(t, "Kelas C", rows[0].Sessions[0].ClassName)
}

func TestDueOnlyDueAndZeroStudents(t *testing.T) {
	e := newFeeEnv(t, "FE2")
	db, ten, app := e.db, e.ten, e.app

	ten.Student(t, db, e.ac, "Tanpa Tagihan")
	_, ssPaid := ten.Student(t, db, e.ac, "Lunas")
	groupID := e.tuitionGroup(t)

	status, env := testutil.Do(t, app, "POST", "/api/fees/masters", ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID,
	})
	require.Equal(t, 201, status, env.Error)
	masterID := testutil.Decode[struct {
		Master model.FeesMasterModel `json:"master"`
	}](t, env.Data).Master.FeesMasterID

	status, env = testutil.Do(t, app, "POST", "/api/fees/student-masters", ten.AdminToken, map[string]any{
		"feesMasterId": masterID, "studentSessionId": ssPaid,
	})
	require.Equal(t, 201, status, env.Error)
	sfmID := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "POST", "/api/fees/student-masters", ten.AdminToken, map[string]any{
		"feesMasterId": masterID, "studentSessionId": ssPaid,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "studentSessionId", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/fees/collect", ten.AdminToken, map[string]any{
		"studentFeesMasterId": sfmID, "amount": "5500", "mode": "upi",
	})
	require.Equal(t, 201, status, env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/fees/due?classId="+e.ac.ClassID.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(2), env.Pagination.Total)
	for _, r := range testutil.Decode[[]ledger.StudentLedger](t, env.Data) {
		if r.FirstName == "Tanpa Tagihan" {
			assert.True(t, r.Summary.GrandTotal.IsZero())
		}
	}

	// 5000 + 500 denda - 5500 = 0 → tidak termasuk onlyDue
	status, env = testutil.Do(t, app, "GET", "/api/fees/due?onlyDue=true", ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(0), env.Pagination.Total)

	// page jauh di luar jangkauan → halaman kosong, bukan panic
	status, env = testutil.Do(t, app, "GET", "/api/fees/due?page=9223372036854775807&limit=2", ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Empty(t, testutil.Decode[[]ledger.StudentLedger](t, env.Data))
}

func TestAssignPicksUpLateEnrollments(t *testing.T) {
	e := newFeeEnv(t, "FE3")
	groupID := e.tuitionGroup(t)

	status, env := testutil.Do(t, e.app, "POST", "/api/fees/masters", e.ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID, "assignToAll": true,
	})
	require.Equal(t, 201, status, env.Error)
	masterID := testutil.Decode[struct {
		Master model.FeesMasterModel `json:"master"`
	}](t, env.Data).Master.FeesMasterID

	e.ten.Student(t, e.db, e.ac, "Baru")
	e.ten.Student(t, e.db, e.ac, "Baru Juga")

	status, env = testutil.Do(t, e.app, "POST", "/api/fees/masters/"+masterID.String()+"/assign", e.ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, 2, testutil.Decode[struct {
		Assigned int `json:"assigned"`
	}](t, env.Data).Assigned)

	// kedua kali tidak ada yang baru
	status, env = testutil.Do(t, e.app, "POST", "/api/fees/masters/"+masterID.String()+"/assign", e.ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, 0, testutil.Decode[struct {
		Assigned int `json:"assigned"`
	}](t, env.Data).Assigned)

	status, env = testutil.Do(t, e.app, "GET", "/api/fees/student-masters?feesMasterId="+masterID.String(), e.ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(2), env.Pagination.Total)
}

func TestCollectValidation(t *testing.T) {
	e := newFeeEnv(t, "FE4")
	db, ten, app := e.db, e.ten, e.app
	ten.Student(t, db, e.ac, "Ani")
	groupID := e.tuitionGroup(t)

	status, env := testutil.Do(t, app, "POST", "/api/fees/masters", ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID, "assignToAll": true,
	})
	require.Equal(t, 201, status, env.Error)
	var sfm model.StudentFeesMasterModel
	require.NoError(t, db.Take(&sfm).Error)

	cases := []struct {
		body  map[string]any
		field string
	}{
		{map[string]any{"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": 0, "mode": "cash"}, "amount"},
		{map[string]any{"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": 10, "discount": -1, "mode": "cash"}, "discount"},
		{map[string]any{"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": 10, "mode": "barter"}, "mode"},
	}
	for _, tc := range cases {
		status, env := testutil.Do(t, app, "POST", "/api/fees/collect", ten.AdminToken, tc.body)
		assert.Equal(t, 400, status)
		assert.Equal(t, tc.field, env.Field, env.Error)
	}

	// koreksi negatif diperbolehkan
	status, env = testutil.Do(t, app, "POST", "/api/fees/collect", ten.AdminToken, map[string]any{
		"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": -100, "mode": "cash", "note": "refund",
	})
	require.Equal(t, 201, status, env.Error)

	// pembayaran tidak bisa diubah/dihapus
	status, _ = testutil.Do(t, app, "DELETE", "/api/fees/collect/"+uuid.NewString(), ten.AdminToken, nil)
	assert.NotEqual(t, 200, status)

	// master dengan pembayaran tidak bisa dihapus
	status, env = testutil.Do(t, app, "DELETE", "/api/fees/masters/"+sfm.StudentFeesMasterFeesMasterID.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "fees master has payments", env.Error)

	// nonaktif → keluar dari ledger, collect ditolak
	status, env = testutil.Do(t, app, "PATCH", "/api/fees/student-masters/"+sfm.StudentFeesMasterID.String(), ten.AdminToken, map[string]any{"isActive": false})
	require.Equal(t, 200, status, env.Error)
	status, env = testutil.Do(t, app, "POST", "/api/fees/collect", ten.AdminToken, map[string]any{
		"studentFeesMasterId": sfm.StudentFeesMasterID, "amount": 100, "mode": "cash",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "fee assignment is inactive", env.Error)
}

func TestFeeSetupGuards(t *testing.T) {
	e := newFeeEnv(t, "FE5")
	groupID := e.tuitionGroup(t)

	status, env := testutil.Do(t, e.app, "POST", "/api/fees/types", e.ten.AdminToken, map[string]any{"name": "Other", "code": "TUI"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "code already exists", env.Error)

	status, env = testutil.Do(t, e.app, "GET", "/api/fees/groups/"+groupID.String()+"/types", e.ten.AdminToken, nil)
	require.Equal(t, 200, status, env.Error)
	lines := testutil.Decode[[]model.FeeGroupTypeModel](t, env.Data)
	require.Len(t, lines, 1)

	status, env = testutil.Do(t, e.app, "POST", "/api/fees/groups/"+groupID.String()+"/types", e.ten.AdminToken, map[string]any{
		"feeTypeId": lines[0].FeeGroupTypeFeeTypeID, "amount": 10,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "fee type is already in this group", env.Error)

	status, env = testutil.Do(t, e.app, "DELETE", "/api/fees/types/"+lines[0].FeeGroupTypeFeeTypeID.String(), e.ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "fee type is used by a fee group", env.Error)

	status, env = testutil.Do(t, e.app, "POST", "/api/fees/masters", e.ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID,
	})
	require.Equal(t, 201, status, env.Error)
	status, env = testutil.Do(t, e.app, "POST", "/api/fees/masters", e.ten.AdminToken, map[string]any{
		"feeGroupId": groupID, "classId": e.ac.ClassID,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "feeGroupId", env.Field)

	status, env = testutil.Do(t, e.app, "DELETE", "/api/fees/groups/"+groupID.String(), e.ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "fee group is assigned to a class", env.Error)

	status, env = testutil.Do(t, e.app, "POST", "/api/fees/groups/"+groupID.String()+"/types", e.ten.AdminToken, map[string]any{
		"feeTypeId": lines[0].FeeGroupTypeFeeTypeID, "amount": 10, "fineType": "fixed",
	})
	assert.Equal(t, 400, status)
}

func TestFeePermissions(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "FE6")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.FeeRoutes(api, db) })

	_, librarian := ten.UserWithRole(t, db, constants.RoleLibrarian)
	status, _ := testutil.Do(t, app, "GET", "/api/fees/due", librarian, nil)
	assert.Equal(t, 403, status)

	_, accountant := ten.UserWithRole(t, db, constants.RoleAccountant)
	status, env := testutil.Do(t, app, "GET", "/api/fees/due", accountant, nil)
	assert.Equal(t, 200, status, env.Error)
}
