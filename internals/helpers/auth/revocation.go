package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Revoker menyimpan token yang sudah logout sampai exp-nya lewat.
type Revoker interface {
	Revoke(ctx context.Context, rawToken string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, rawToken string) (bool, error)
}

// TokenDigest HMAC-SHA256(token) dalam hex; token mentah tidak pernah disimpan.
func TokenDigest(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}
