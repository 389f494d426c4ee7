package model

import "time"

// TokenBlacklistModel fallback revocation store saat Redis tidak dikonfigurasi.
// Yang disimpan HMAC token, bukan token mentah.
type TokenBlacklistModel struct {
	TokenBlacklistID        uint      `gorm:"column:token_blacklist_id;primaryKey;autoIncrement" json:"id"`
	TokenBlacklistDigest    string    `gorm:"column:token_blacklist_digest;size:64;not null;uniqueIndex:uq_token_blacklists_digest" json:"-"`
	TokenBlacklistExpiredAt time.Time `gorm:"column:token_blacklist_expired_at;not null;index" json:"expiredAt"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklists"
}
