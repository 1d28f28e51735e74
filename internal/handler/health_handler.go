package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Hello responds to liveness probes
func Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"service": "matching-service",
		"status":  "ok",
	})
}
