package database

import (
	"context"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] Koneksi ke PostgreSQL...")

	db, err := Open(configs.PostgresDSN())
	if err != nil {
		log.Fatalf("[ERROR] Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

// Open membuka koneksi postgres. TranslateError aktif supaya unique violation
// muncul sebagai gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, DB); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
