package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	scheduler "schoolku_backend/internals/features/users/auth/scheduler"
	authService "schoolku_backend/internals/features/users/auth/service"
	middlewares "schoolku_backend/internals/middlewares"
	routes "schoolku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(middlewares.FiberConfig())
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnv("DB_AUTO_MIGRATE") == "true" {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("[ERROR] migrate: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	revoker := authService.NewRevoker(ctx, database.DB, configs.RedisAddr, configs.JWTSecret)
	cancel()

	// ⏱ scheduler setelah DB siap
	cron, err := scheduler.StartBlacklistCleanupScheduler(database.DB, configs.CleanupSpec)
	if err != nil {
		log.Fatalf("[ERROR] cron spec %q: %v", configs.CleanupSpec, err)
	}

	routes.SetupRoutes(app, routes.Deps{
		DB: database.DB,
		Login: &authService.LoginService{
			DB:     database.DB,
			Secret: configs.JWTSecret,
			TTL:    configs.JWTTTL,
		},
		Revoker: revoker,
		Secret:  configs.JWTSecret,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: http → cron → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = app.ShutdownWithContext(shutdownCtx)
	<-cron.Stop().Done()
	database.Close(database.DB)
	log.Println("[INFO] server stopped")
}
