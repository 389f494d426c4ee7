package middlewares

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	helper "schoolku_backend/internals/helpers"
)

// FiberConfig dipakai main dan test supaya encoder & error envelope sama.
func FiberConfig() fiber.Config {
	return fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		AppName:               "schoolku",
	}
}
