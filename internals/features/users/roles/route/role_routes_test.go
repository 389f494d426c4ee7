package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/roles/dto"
	"schoolku_backend/internals/features/users/roles/model"
	"schoolku_backend/internals/features/users/roles/route"
	"schoolku_backend/internals/testutil"
)

func permissionID(t *testing.T, perms []model.PermissionModel, slug string) uuid.UUID {
	t.Helper()
	for _, p := range perms {
		if p.PermissionSlug == slug {
			return p.PermissionID
		}
	}
	t.Fatalf("permission %s not seeded", slug)
	return uuid.Nil
}

func TestRoleLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "RL1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.RoleRoutes(api, db) })

	status, env := testutil.Do(t, app, "GET", "/api/permissions", ten.AdminToken, nil)
	require.Equal(t, 200, status)
	perms := testutil.Decode[[]model.PermissionModel](t, env.Data)
	assert.Len(t, perms, len(constants.PermissionCatalog))

	status, env = testutil.Do(t, app, "POST", "/api/roles", ten.AdminToken, map[string]any{
		"name":          "Wali Kelas",
		"permissionIds": []uuid.UUID{permissionID(t, perms, constants.PermStudentsView)},
	})
	require.Equal(t, 201, status, env.Error)
	role := testutil.Decode[dto.RoleResponse](t, env.Data)
	assert.Equal(t, "wali-kelas", role.RoleSlug)
	require.Len(t, role.Permissions, 1)

	status, env = testutil.Do(t, app, "POST", "/api/roles", ten.AdminToken, map[string]any{"name": "Wali Kelas"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "name already exists", env.Error)
	assert.Equal(t, "name", env.Field)

	status, env = testutil.Do(t, app, "PUT", "/api/roles/"+role.RoleID.String()+"/permissions", ten.AdminToken, map[string]any{
		"permissionIds": []uuid.UUID{
			permissionID(t, perms, constants.PermAttendanceManage),
			permissionID(t, perms, constants.PermHomeworkManage),
		},
	})
	require.Equal(t, 200, status, env.Error)
	role = testutil.Decode[dto.RoleResponse](t, env.Data)
	assert.Len(t, role.Permissions, 2)

	status, env = testutil.Do(t, app, "PUT", "/api/roles/"+role.RoleID.String()+"/permissions", ten.AdminToken, map[string]any{
		"permissionIds": []uuid.UUID{uuid.New()},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "permissionIds", env.Field)

	status, env = testutil.Do(t, app, "PUT", "/api/roles/"+role.RoleID.String(), ten.AdminToken, map[string]any{"name": "Homeroom"})
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, "Homeroom", testutil.Decode[dto.RoleResponse](t, env.Data).RoleName)

	status, _ = testutil.Do(t, app, "DELETE", "/api/roles/"+role.RoleID.String(), ten.AdminToken, nil)
	assert.Equal(t, 200, status)
	status, _ = testutil.Do(t, app, "GET", "/api/roles/"+role.RoleID.String(), ten.AdminToken, nil)
	assert.Equal(t, 404, status)
}

func TestSystemRolesAreProtected(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "RL2")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.RoleRoutes(api, db) })
	teacher := ten.Roles[constants.RoleTeacher]

	status, env := testutil.Do(t, app, "PUT", "/api/roles/"+teacher.RoleID.String(), ten.AdminToken, map[string]any{"name": "Guru"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "system roles cannot be renamed", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/roles/"+teacher.RoleID.String(), ten.AdminToken, map[string]any{"description": "Pengajar"})
	require.Equal(t, 200, status, env.Error)

	status, env = testutil.Do(t, app, "DELETE", "/api/roles/"+teacher.RoleID.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "system roles cannot be deleted", env.Error)
}

func TestRoleInUseCannotBeDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "RL3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.RoleRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/roles", ten.AdminToken, map[string]any{"name": "Satpam"})
	require.Equal(t, 201, status, env.Error)
	role := testutil.Decode[dto.RoleResponse](t, env.Data)

	u := ten.Admin
	u.UserID = uuid.Nil
	u.UserUsername = "satpam"
	u.UserEmail = "satpam@rl3.test"
	u.UserRoleID = &role.RoleID
	require.NoError(t, ten.Scope(db).Create(&u))

	status, env = testutil.Do(t, app, "DELETE", "/api/roles/"+role.RoleID.String(), ten.AdminToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "role is assigned to users", env.Error)
}

func TestRolesAreTenantScoped(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "RLA")
	b := testutil.NewTenant(t, db, "RLB")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.RoleRoutes(api, db) })

	status, env := testutil.Do(t, app, "GET", "/api/roles", a.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(len(constants.SystemRoles)), env.Pagination.Total)

	status, _ = testutil.Do(t, app, "GET", "/api/roles/"+b.Roles[constants.RoleTeacher].RoleID.String(), a.AdminToken, nil)
	assert.Equal(t, 404, status)

	_, token := a.UserWithRole(t, db, constants.RoleTeacher)
	status, _ = testutil.Do(t, app, "GET", "/api/roles", token, nil)
	assert.Equal(t, 403, status)
}
