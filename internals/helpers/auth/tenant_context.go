package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	helper "schoolku_backend/internals/helpers"
)

// Locals keys yang diisi AuthJWT.
const (
	LocTenant   = "tenant_ctx"
	LocUserID   = "user_id"
	LocSchoolID = "school_id"
	LocRole     = "role"
	LocRawToken = "raw_token"
)

const RoleAdmin = "admin"

// TenantContext hasil resolusi token. SchoolID hanya boleh berasal dari sini.
type TenantContext struct {
	UserID      uuid.UUID `json:"id"`
	SchoolID    uuid.UUID `json:"schoolId"`
	RoleID      uuid.UUID `json:"roleId"`
	RoleSlug    string    `json:"role"`
	SchoolName  string    `json:"schoolName"`
	SchoolCode  string    `json:"schoolCode"`
	Permissions []string  `json:"permissions"`
}

func (t *TenantContext) IsAdmin() bool {
	return strings.EqualFold(t.RoleSlug, RoleAdmin)
}

// HasAny true bila admin atau memiliki salah satu permission.
func (t *TenantContext) HasAny(slugs ...string) bool {
	if t.IsAdmin() {
		return true
	}
	return lo.SomeBy(slugs, func(s string) bool { return lo.Contains(t.Permissions, s) })
}

func SetTenant(c *fiber.Ctx, t *TenantContext) {
	c.Locals(LocTenant, t)
	c.Locals(LocUserID, t.UserID.String())
	c.Locals(LocSchoolID, t.SchoolID.String())
	c.Locals(LocRole, t.RoleSlug)
}

// GetTenant mengambil tenant dari locals. Tidak ada → Unauthorized.
func GetTenant(c *fiber.Ctx) (*TenantContext, error) {
	if t, ok := c.Locals(LocTenant).(*TenantContext); ok && t != nil && t.SchoolID != uuid.Nil {
		return t, nil
	}
	return nil, helper.Unauthorized("Unauthorized")
}
