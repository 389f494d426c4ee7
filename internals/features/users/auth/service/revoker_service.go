package service

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/users/auth/model"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

const redisKeyPrefix = "revoked:"

// RedisRevoker: SET revoked:<digest> 1 EX <sisa umur token>.
type RedisRevoker struct {
	Client *redis.Client
	Secret string
}

func (r *RedisRevoker) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, redisKeyPrefix+helperAuth.TokenDigest(raw, r.Secret), "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, raw string) (bool, error) {
	n, err := r.Client.Exists(ctx, redisKeyPrefix+helperAuth.TokenDigest(raw, r.Secret)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DBRevoker menyimpan digest di token_blacklists; baris kadaluarsa dibersihkan scheduler.
type DBRevoker struct {
	DB     *gorm.DB
	Secret string
}

func (r *DBRevoker) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	row := model.TokenBlacklistModel{
		TokenBlacklistDigest:    helperAuth.TokenDigest(raw, r.Secret),
		TokenBlacklistExpiredAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_blacklist_digest"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_blacklist_expired_at"}),
	}).Create(&row).Error
}

func (r *DBRevoker) IsRevoked(ctx context.Context, raw string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.TokenBlacklistModel{}).
		Where("token_blacklist_digest = ? AND token_blacklist_expired_at > ?", helperAuth.TokenDigest(raw, r.Secret), time.Now()).
		Count(&n).Error
	return n > 0, err
}

// NewRevoker: Redis bila REDIS_ADDR diisi dan bisa di-ping, selain itu tabel DB.
func NewRevoker(ctx context.Context, db *gorm.DB, redisAddr, secret string) helperAuth.Revoker {
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		err := client.Ping(ctx).Err()
		if err == nil {
			log.Printf("[INFO] token revocation memakai redis %s", redisAddr)
			return &RedisRevoker{Client: client, Secret: secret}
		}
		log.Printf("[WARN] redis %s tidak bisa di-ping (%v), fallback ke token_blacklists", redisAddr, err)
		_ = client.Close()
	}
	return &DBRevoker{DB: db, Secret: secret}
}
