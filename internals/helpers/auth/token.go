package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims isi access token: {id, role, schoolId, schoolName, schoolCode, permissions[]}.
type Claims struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	RoleID      string   `json:"roleId,omitempty"`
	SchoolID    string   `json:"schoolId"`
	SchoolName  string   `json:"schoolName"`
	SchoolCode  string   `json:"schoolCode"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

func IssueToken(secret string, ttl time.Duration, t TenantContext, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	roleID := ""
	if t.RoleID != uuid.Nil {
		roleID = t.RoleID.String()
	}
	claims := Claims{
		ID:          t.UserID.String(),
		Role:        t.RoleSlug,
		RoleID:      roleID,
		SchoolID:    t.SchoolID.String(),
		SchoolName:  t.SchoolName,
		SchoolCode:  t.SchoolCode,
		Permissions: t.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken memverifikasi HMAC + exp dan mengubah claims jadi TenantContext.
func ParseToken(secret, raw string) (*TenantContext, *Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	schoolID, err := uuid.Parse(claims.SchoolID)
	if err != nil || schoolID == uuid.Nil {
		return nil, nil, ErrInvalidToken
	}
	roleID, _ := uuid.Parse(claims.RoleID)

	perms := claims.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &TenantContext{
		UserID:      userID,
		SchoolID:    schoolID,
		RoleID:      roleID,
		RoleSlug:    claims.Role,
		SchoolName:  claims.SchoolName,
		SchoolCode:  claims.SchoolCode,
		Permissions: perms,
	}, &claims, nil
}

// RawToken: Authorization Bearer, fallback cookie access_token.
func RawToken(authorization, cookie string) string {
	authz := strings.TrimSpace(authorization)
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(cookie)
}
