package route_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/auth/dto"
	"schoolku_backend/internals/features/users/auth/route"
	"schoolku_backend/internals/features/users/auth/scheduler"
	"schoolku_backend/internals/features/users/auth/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/testutil"
)

func newAuthApp(db *gorm.DB, revoker helperAuth.Revoker) *fiber.App {
	login := &service.LoginService{DB: db, Secret: testutil.Secret, TTL: time.Hour}
	return testutil.NewAppWithPublic(db, revoker,
		func(app *fiber.App) { route.AuthPublicRoutes(app, login, revoker) },
		func(api fiber.Router) { route.AuthRoutes(api, login, revoker) },
	)
}

func TestLoginMeLogoutWithDBRevoker(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.NewTenant(t, db, "SD1")
	app := newAuthApp(db, &service.DBRevoker{DB: db, Secret: testutil.Secret})

	status, env := testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{
		"schoolCode": "sd1", "username": "ADMIN", "password": "password123",
	})
	require.Equal(t, 200, status, env.Error)
	res := testutil.Decode[dto.LoginResponse](t, env.Data)
	assert.Equal(t, constants.RoleAdmin, res.User.Role)
	assert.Equal(t, "SD1", res.School.Code)

	status, env = testutil.Do(t, app, "GET", "/api/auth/me", res.Token, nil)
	require.Equal(t, 200, status)
	me := testutil.Decode[helperAuth.TenantContext](t, env.Data)
	assert.Equal(t, res.School.ID, me.SchoolID)

	status, _ = testutil.Do(t, app, "POST", "/api/auth/logout", res.Token, nil)
	require.Equal(t, 200, status)

	status, env = testutil.Do(t, app, "GET", "/api/auth/me", res.Token, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Token revoked", env.Error)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.NewTenant(t, db, "SD1")
	app := newAuthApp(db, nil)

	status, env := testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{
		"schoolCode": "SD1", "username": "admin", "password": "wrong-password",
	})
	assert.Equal(t, 401, status)
	assert.Equal(t, "Invalid credentials", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{
		"schoolCode": "NOPE", "username": "admin", "password": "password123",
	})
	assert.Equal(t, 401, status)
	assert.Equal(t, "Invalid credentials", env.Error)

	status, env = testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{"schoolCode": "SD1"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "username is required", env.Error)
}

func TestLoginResolvesEmailAndUsernameSeparately(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SD1")
	app := newAuthApp(db, nil)

	// baris lama yang username-nya sama dengan email admin
	hash, err := helperAuth.HashPassword("other-pass-1")
	require.NoError(t, err)
	require.NoError(t, ten.Scope(db).Create(&userModel.UserModel{
		UserUsername:     ten.Admin.UserEmail,
		UserEmail:        "legacy@mail.test",
		UserFullName:     "Legacy",
		UserPasswordHash: hash,
		UserIsActive:     true,
	}))

	login := func(username, password string) (int, dto.LoginResponse) {
		t.Helper()
		status, env := testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{
			"schoolCode": "SD1", "username": username, "password": password,
		})
		if status != 200 {
			return status, dto.LoginResponse{}
		}
		return status, testutil.Decode[dto.LoginResponse](t, env.Data)
	}

	for i := 0; i < 5; i++ {
		status, res := login(ten.Admin.UserEmail, "password123")
		require.Equal(t, 200, status)
		assert.Equal(t, ten.Admin.UserID, res.User.ID)
	}
	status, _ := login(ten.Admin.UserEmail, "other-pass-1")
	assert.Equal(t, 401, status)

	status, res := login("admin", "password123")
	require.Equal(t, 200, status)
	assert.Equal(t, ten.Admin.UserID, res.User.ID)
}

func TestLoginCarriesRolePermissions(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SD1")
	u, _ := ten.UserWithRole(t, db, constants.RoleLibrarian)
	app := newAuthApp(db, nil)

	status, env := testutil.Do(t, app, "POST", "/api/auth/login", "", map[string]any{
		"schoolCode": "SD1", "username": u.UserUsername, "password": "password123",
	})
	require.Equal(t, 200, status, env.Error)
	res := testutil.Decode[dto.LoginResponse](t, env.Data)
	assert.ElementsMatch(t, []string{constants.PermLibraryManage, constants.PermStudentsView}, res.User.Permissions)
}

func TestRedisRevoker(t *testing.T) {
	mr := miniredis.RunT(t)
	r := &service.RedisRevoker{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}), Secret: "s"}
	ctx := context.Background()

	ok, err := r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Revoke(ctx, "tok", time.Now().Add(time.Minute)))
	ok, err = r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = r.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRevokerFallsBackToDB(t *testing.T) {
	db := testutil.NewDB(t)
	r := service.NewRevoker(context.Background(), db, "", "s")
	_, isDB := r.(*service.DBRevoker)
	assert.True(t, isDB)

	mr := miniredis.RunT(t)
	r = service.NewRevoker(context.Background(), db, mr.Addr(), "s")
	_, isRedis := r.(*service.RedisRevoker)
	assert.True(t, isRedis)
}

func TestCleanupExpiredBlacklist(t *testing.T) {
	db := testutil.NewDB(t)
	r := &service.DBRevoker{DB: db, Secret: "s"}
	ctx := context.Background()
	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Hour)))
	require.NoError(t, r.Revoke(ctx, "fresh", time.Now().Add(time.Hour)))

	n, err := scheduler.CleanupExpired(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := r.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}
