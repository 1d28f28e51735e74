package handler

import (
	"errors"
	"net/http"

	"matching-service/internal/matching"
	"matching-service/internal/workflow"
	"matching-service/pkg/config"
	"matching-service/pkg/database"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	engine *workflow.Engine
)

// Init wires the handler package to the shared workflow engine. Must run
// after database.InitDB.
func Init(c *config.Config) {
	cfg = c

	var dict *matching.Dictionary
	if c.Matching.CJKDictPath != "" {
		d, err := matching.LoadDictionary(c.Matching.CJKDictPath)
		if err != nil {
			panic("failed to load CJK dictionary: " + err.Error())
		}
		dict = d
		// The model layer's token cache must segment the same way
		matching.SetDefaultDictionary(d)
	}

	engine = workflow.New(
		workflow.NewGormStore(database.GetDB()),
		matching.NewTokenizer(dict),
		c.Matching,
	)
}

// errorResponse maps workflow errors onto HTTP status codes
func errorResponse(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, matching.ErrNotFound):
		log.Warn("Referenced record not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, matching.ErrConflict):
		log.Warn("Conflicting record", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, matching.ErrValidation):
		log.Warn("Invalid request parameters", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Error("Internal error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
