package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/users/users/model"
	"schoolku_backend/internals/features/users/users/route"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/testutil"
)

func TestUserCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "US1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.UserRoutes(api, db) })
	teacher := ten.Roles[constants.RoleTeacher]

	status, env := testutil.Do(t, app, "POST", "/api/users", ten.AdminToken, map[string]any{
		"username": " Budi ",
		"email":    "Budi@Mail.test",
		"fullName": "Budi Santoso",
		"password": "rahasia123",
		"roleId":   teacher.RoleID,
	})
	require.Equal(t, 201, status, env.Error)
	u := testutil.Decode[model.UserModel](t, env.Data)
	assert.Equal(t, "budi", u.UserUsername)
	assert.Equal(t, "budi@mail.test", u.UserEmail)
	assert.NotContains(t, string(env.Data), "rahasia123")

	stored, err := scope.First[model.UserModel](ten.Scope(db), u.UserID)
	require.NoError(t, err)
	assert.True(t, helperAuth.CheckPassword(stored.UserPasswordHash, "rahasia123"))

	status, env = testutil.Do(t, app, "POST", "/api/users", ten.AdminToken, map[string]any{
		"username": "budi", "email": "other@mail.test", "fullName": "B", "password": "rahasia123",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "username already exists", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/users", ten.AdminToken, map[string]any{
		"username": "ani", "email": "ani@mail.test", "fullName": "Ani", "password": "short",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "password must be at least 8 characters", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/users/"+u.UserID.String(), ten.AdminToken, map[string]any{
		"isActive": false,
		"roleId":   nil,
		"password": "baru12345",
	})
	require.Equal(t, 200, status, env.Error)
	u = testutil.Decode[model.UserModel](t, env.Data)
	assert.False(t, u.UserIsActive)
	assert.Nil(t, u.UserRoleID)

	stored, err = scope.First[model.UserModel](ten.Scope(db), u.UserID)
	require.NoError(t, err)
	assert.True(t, helperAuth.CheckPassword(stored.UserPasswordHash, "baru12345"))

	status, env = testutil.Do(t, app, "GET", "/api/users?search=santoso", ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(1), env.Pagination.Total)

	status, _ = testutil.Do(t, app, "DELETE", "/api/users/"+u.UserID.String(), ten.AdminToken, nil)
	assert.Equal(t, 200, status)
}

func TestUserCannotDeleteSelf(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "US2")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.UserRoutes(api, db) })

	status, env := testutil.Do(t, app, "DELETE", "/api/users/"+ten.Admin.UserID.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "cannot delete your own account", env.Error)
}

func TestUserRoleMustBelongToTenant(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "USA")
	b := testutil.NewTenant(t, db, "USB")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.UserRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/users", a.AdminToken, map[string]any{
		"username": "xuser1", "email": "x1@mail.test", "fullName": "X", "password": "rahasia123",
		"roleId": b.Roles[constants.RoleTeacher].RoleID,
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Role not found", env.Error)

	status, _ = testutil.Do(t, app, "GET", "/api/users/"+b.Admin.UserID.String(), a.AdminToken, nil)
	assert.Equal(t, 404, status)

	// username yang sama boleh dipakai di tenant lain
	status, env = testutil.Do(t, app, "POST", "/api/users", b.AdminToken, map[string]any{
		"username": "xuser1", "email": "x1@mail.test", "fullName": "X", "password": "rahasia123",
	})
	assert.Equal(t, 201, status, env.Error)
	status, _ = testutil.Do(t, app, "POST", "/api/users", a.AdminToken, map[string]any{
		"username": "xuser1", "email": "x1@mail.test", "fullName": "X", "password": "rahasia123",
	})
	assert.Equal(t, 201, status)

	status, env = testutil.Do(t, app, "POST", "/api/users", a.AdminToken, map[string]any{
		"username": "x1", "email": "x2@mail.test", "fullName": "X", "password": "rahasia123",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "username", env.Field)

	// "@" dicadangkan untuk login via email
	status, env = testutil.Do(t, app, "POST", "/api/users", a.AdminToken, map[string]any{
		"username": "x@user", "email": "x3@mail.test", "fullName": "X", "password": "rahasia123",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, `username must not contain "@"`, env.Error)
	status, env = testutil.Do(t, app, "PUT", "/api/users/"+a.Admin.UserID.String(), a.AdminToken, map[string]any{
		"username": "boss@school",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, `username must not contain "@"`, env.Error)
}
