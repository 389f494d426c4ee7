package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/staff/model"
	"schoolku_backend/internals/features/staff/route"
	"schoolku_backend/internals/features/staff/service"
	"schoolku_backend/internals/testutil"
)

func TestStaffEmployeeIDs(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SF1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StaffRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/departments", ten.AdminToken, map[string]any{"name": "Akademik"})
	require.Equal(t, 201, status, env.Error)
	dep := testutil.ID(t, env)

	ids := []string{}
	for _, name := range []string{"Ani", "Budi"} {
		status, env = testutil.Do(t, app, "POST", "/api/staff", ten.AdminToken, map[string]any{
			"firstName":     name,
			"departmentId":  dep,
			"roleId":        ten.Roles[constants.RoleTeacher].RoleID,
			"dateOfJoining": "2025-07-01",
		})
		require.Equal(t, 201, status, env.Error)
		ids = append(ids, testutil.Decode[model.StaffModel](t, env.Data).StaffEmployeeID)
	}
	assert.Equal(t, []string{"EMP0001", "EMP0002"}, ids)

	status, env = testutil.Do(t, app, "POST", "/api/staff", ten.AdminToken, map[string]any{"firstName": "Cici", "employeeId": "emp0002"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "employeeId already exists", env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/staff?departmentId="+dep.String(), ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(2), env.Pagination.Total)

	status, env = testutil.Do(t, app, "DELETE", "/api/departments/"+dep.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "department has staff assigned", env.Error)
}

func TestStaffReferencesMustBelongToTenant(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "SFA")
	b := testutil.NewTenant(t, db, "SFB")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.StaffRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/staff", a.AdminToken, map[string]any{
		"firstName": "Ani", "roleId": b.Roles[constants.RoleTeacher].RoleID,
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Role not found", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/staff", a.AdminToken, map[string]any{
		"firstName": "Ani", "userId": b.Admin.UserID,
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "User not found", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/staff", a.AdminToken, map[string]any{"firstName": "Ani"})
	require.Equal(t, 201, status, env.Error)
	id := testutil.ID(t, env)

	status, env = testutil.Do(t, app, "PUT", "/api/staff/"+id.String(), a.AdminToken, map[string]any{"designation": "Guru BK", "lastName": nil})
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, "Guru BK", *testutil.Decode[model.StaffModel](t, env.Data).StaffDesignation)

	status, _ = testutil.Do(t, app, "GET", "/api/staff/"+id.String(), b.AdminToken, nil)
	assert.Equal(t, 404, status)

	status, _ = testutil.Do(t, app, "DELETE", "/api/staff/"+id.String(), a.AdminToken, nil)
	assert.Equal(t, 200, status)
}

func TestEmployeeIDIgnoresManualNonNumericIDs(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SF3")
	sc := ten.Scope(db)

	for _, id := range []string{"EMP0041", "EMPLOYEE-X", "EMP-7", "EMP00009"} {
		require.NoError(t, sc.Create(&model.StaffModel{StaffEmployeeID: id, StaffFirstName: id, StaffIsActive: true}))
	}
	next, err := service.NextEmployeeID(sc)
	require.NoError(t, err)
	assert.Equal(t, "EMP0042", next)
}
