package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger writes one [HTTP] line per request.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[HTTP] ${time} ${status} - ${latency} ${method} ${path} | ${bytesSent}B ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
