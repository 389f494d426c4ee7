package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menjalankan CleanupExpired sesuai jadwal cron (mis. "@every 24h").
// Caller wajib memanggil Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		log.Println("[CLEANUP] Menjalankan pembersihan token_blacklists...")
		n, err := CleanupExpired(db, time.Now())
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			return
		}
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func CleanupExpired(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("token_blacklist_expired_at < ?", now).Delete(&model.TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
