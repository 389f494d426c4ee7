// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"schoolku_backend/internals/configs"
)

// CorsMiddleware; origin diambil dari CORS_ORIGINS (pisah koma).
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3001")
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(parts, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: true,
	})
}
