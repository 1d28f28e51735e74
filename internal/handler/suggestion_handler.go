package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"matching-service/internal/matching"
	"matching-service/pkg/logger"
	"matching-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListUnmatchedWithSuggestions returns one supplier's unmatched products,
// each annotated with its current top match suggestions. Pure read; finding
// nothing above threshold is an empty, successful result.
func ListUnmatchedWithSuggestions(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("suggest")
	defer prometheus.ObserveSuggestionDuration(time.Now())

	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid supplier ID"})
	}

	minSimilarity, err := floatParam(c, "min_similarity", cfg.Matching.MinSimilarity)
	if err != nil {
		return errorResponse(c, log, err)
	}
	maxSuggestions, err := intParam(c, "max_suggestions", cfg.Matching.MaxSuggestions)
	if err != nil {
		return errorResponse(c, log, err)
	}
	skip, err := intParam(c, "skip", 0)
	if err != nil {
		return errorResponse(c, log, err)
	}
	limit, err := intParam(c, "limit", 20)
	if err != nil {
		return errorResponse(c, log, err)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	log.Info("Listing unmatched supplier products with suggestions",
		zap.Uint64("supplier_id", supplierID),
		zap.Float64("min_similarity", minSimilarity),
		zap.Int("max_suggestions", maxSuggestions),
		zap.Int("skip", skip),
		zap.Int("limit", limit))

	defer prometheus.TrackDBOperation("query")(time.Now())

	products, total, err := engine.UnmatchedWithSuggestions(
		c.Request().Context(), uint(supplierID), minSimilarity, maxSuggestions, skip, limit)
	if err != nil {
		return errorResponse(c, log, err)
	}

	prometheus.UpdateUnmatchedProducts(total)

	log.Info("Unmatched products retrieved",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Uint64("supplier_id", supplierID))

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"pagination": echo.Map{
			"skip":  skip,
			"limit": limit,
			"total": total,
		},
	})
}

// floatParam parses an optional float query parameter, returning
// ErrValidation on malformed input rather than silently ignoring it.
func floatParam(c echo.Context, name string, def float64) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", matching.ErrValidation, name, raw)
	}
	return v, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", matching.ErrValidation, name, raw)
	}
	return v, nil
}
