package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolModel "schoolku_backend/internals/features/schools/model"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

const LocTokenExpiresAt = "token_expires_at"

type AuthJWTOpts struct {
	Secret              string
	DB                  *gorm.DB
	Revoker             helperAuth.Revoker // nil → tidak cek revocation
	AllowCookieFallback bool               // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT me-resolve TenantContext dari token. School / user nonaktif → 401.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}
	if o.DB == nil {
		panic("AuthJWT: DB wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		cookie := ""
		if o.AllowCookieFallback {
			cookie = c.Cookies("access_token")
		}
		raw := helperAuth.RawToken(c.Get(fiber.HeaderAuthorization), cookie)
		if raw == "" {
			return helper.JsonFromError(c, helper.Unauthorized("Unauthorized"))
		}

		if o.Revoker != nil {
			revoked, err := o.Revoker.IsRevoked(c.UserContext(), raw)
			if err != nil {
				return helper.JsonFromError(c, err)
			}
			if revoked {
				return helper.JsonFromError(c, helper.Unauthorized("Token revoked"))
			}
		}

		tc, claims, err := helperAuth.ParseToken(secret, raw)
		if err != nil {
			return helper.JsonFromError(c, helper.Unauthorized("Invalid token"))
		}

		db := o.DB.WithContext(c.UserContext())

		var school schoolModel.SchoolModel
		if err := db.Where("school_id = ?", tc.SchoolID).Take(&school).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.JsonFromError(c, helper.Unauthorized("School not found"))
			}
			return helper.JsonFromError(c, err)
		}
		if !school.SchoolIsActive {
			return helper.JsonFromError(c, helper.Unauthorized("School is inactive"))
		}

		var user userModel.UserModel
		if err := db.Where("user_id = ? AND user_school_id = ?", tc.UserID, tc.SchoolID).Take(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.JsonFromError(c, helper.Unauthorized("User not found"))
			}
			return helper.JsonFromError(c, err)
		}
		if !user.UserIsActive {
			return helper.JsonFromError(c, helper.Unauthorized("User is inactive"))
		}

		// nama sekolah dari DB lebih segar daripada claim
		tc.SchoolName = school.SchoolName
		tc.SchoolCode = school.SchoolCode

		helperAuth.SetTenant(c, tc)
		c.Locals(helperAuth.LocRawToken, raw)
		c.Locals(dbtime.LocSchoolTimezone, school.SchoolTimezone)
		if claims.ExpiresAt != nil {
			c.Locals(LocTokenExpiresAt, claims.ExpiresAt.Time)
		} else {
			c.Locals(LocTokenExpiresAt, time.Now().Add(24*time.Hour))
		}
		return c.Next()
	}
}
