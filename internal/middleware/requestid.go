package middleware

import (
	"matching-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware adds a unique request ID to each request and attaches a
// request-scoped logger carrying it.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.New().String()

		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		log := logger.FromContext(c).With(zap.String("request_id", requestID))
		c.Set("logger", log)

		return next(c)
	}
}
