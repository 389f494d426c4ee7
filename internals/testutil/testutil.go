// Package testutil menyiapkan DB in-memory, tenant dan app fiber untuk test HTTP.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/databases/scope"
	schoolService "schoolku_backend/internals/features/schools/service"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	roleService "schoolku_backend/internals/features/users/roles/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth_school"
)

const Secret = "test-secret"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// NewDB sqlite in-memory, satu koneksi supaya semua query melihat DB yang sama.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type Tenant struct {
	SchoolID   uuid.UUID
	SchoolCode string
	Admin      userModel.UserModel
	AdminToken string
	Roles      map[string]roleModel.RoleModel
}

func (f *Tenant) Scope(db *gorm.DB) *scope.Tenant { return scope.For(db, f.SchoolID) }

// NewTenant membuat school baru lengkap dengan role sistem dan admin.
func NewTenant(t testing.TB, db *gorm.DB, code string) *Tenant {
	t.Helper()
	p, err := schoolService.Provision(context.Background(), db, schoolService.ProvisionInput{
		Code:          code,
		Name:          "School " + code,
		AdminUsername: "admin",
		AdminEmail:    "admin@" + strings.ToLower(code) + ".test",
		AdminPassword: "password123",
	})
	require.NoError(t, err)

	var roles []roleModel.RoleModel
	require.NoError(t, scope.For(db, p.School.SchoolID).Query(&roleModel.RoleModel{}).Find(&roles).Error)
	byslug := make(map[string]roleModel.RoleModel, len(roles))
	for _, r := range roles {
		byslug[r.RoleSlug] = r
	}

	f := &Tenant{
		SchoolID:   p.School.SchoolID,
		SchoolCode: p.School.SchoolCode,
		Admin:      p.Admin,
		Roles:      byslug,
	}
	f.AdminToken = f.TokenFor(t, db, p.Admin)
	return f
}

// TokenFor menerbitkan token untuk user, permission diambil dari role-nya.
func (f *Tenant) TokenFor(t testing.TB, db *gorm.DB, u userModel.UserModel) string {
	t.Helper()
	tc := helperAuth.TenantContext{
		UserID:      u.UserID,
		SchoolID:    f.SchoolID,
		SchoolCode:  f.SchoolCode,
		Permissions: []string{},
	}
	if u.UserRoleID != nil {
		for slug, r := range f.Roles {
			if r.RoleID == *u.UserRoleID {
				tc.RoleSlug = slug
				tc.RoleID = r.RoleID
			}
		}
		perms, err := roleService.PermissionSlugs(f.Scope(db), *u.UserRoleID)
		require.NoError(t, err)
		tc.Permissions = perms
	}
	raw, _, err := helperAuth.IssueToken(Secret, time.Hour, tc, time.Now())
	require.NoError(t, err)
	return raw
}

// UserWithRole membuat user baru dengan role sistem tertentu dan mengembalikan token-nya.
func (f *Tenant) UserWithRole(t testing.TB, db *gorm.DB, roleSlug string) (userModel.UserModel, string) {
	t.Helper()
	role, ok := f.Roles[roleSlug]
	require.True(t, ok, "role %s", roleSlug)
	hash, err := helperAuth.HashPassword("password123")
	require.NoError(t, err)
	u := userModel.UserModel{
		UserRoleID:       &role.RoleID,
		UserUsername:     roleSlug + "-" + uuid.NewString()[:8],
		UserEmail:        uuid.NewString()[:8] + "@mail.test",
		UserFullName:     "User " + roleSlug,
		UserPasswordHash: hash,
		UserIsActive:     true,
	}
	require.NoError(t, f.Scope(db).Create(&u))
	return u, f.TokenFor(t, db, u)
}

// NewApp: fiber app dengan config produksi; register menerima group /api di belakang AuthJWT.
func NewApp(db *gorm.DB, revoker helperAuth.Revoker, register func(api fiber.Router)) *fiber.App {
	return NewAppWithPublic(db, revoker, nil, register)
}

// NewAppWithPublic sama dengan NewApp, public didaftarkan sebelum AuthJWT.
func NewAppWithPublic(db *gorm.DB, revoker helperAuth.Revoker, public func(app *fiber.App), register func(api fiber.Router)) *fiber.App {
	app := fiber.New(middlewares.FiberConfig())
	if public != nil {
		public(app)
	}
	api := app.Group("/api", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:  Secret,
		DB:      db,
		Revoker: revoker,
	}))
	register(api)
	return app
}

type Envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Error      string             `json:"error"`
	Field      string             `json:"field"`
	Message    string             `json:"message"`
	Pagination *helper.Pagination `json:"pagination"`
}

// Do menjalankan request dan men-decode envelope.
func Do(t testing.TB, app *fiber.App, method, path, token string, body any) (int, Envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// Decode isi data envelope ke T.
func Decode[T any](t testing.TB, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// ID mengambil field "id" dari data envelope.
func ID(t testing.TB, env Envelope) uuid.UUID {
	t.Helper()
	v := Decode[struct {
		ID uuid.UUID `json:"id"`
	}](t, env.Data)
	require.NotEqual(t, uuid.Nil, v.ID, string(env.Data))
	return v.ID
}
