package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"matching-service/internal/matching"
	"matching-service/internal/model"
	"matching-service/pkg/database"
	"matching-service/pkg/logger"
	"matching-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchRequest is the body of a manual match confirmation
type MatchRequest struct {
	CatalogProductID uint     `json:"catalog_product_id"`
	Actor            string   `json:"actor"`
	PriceOverride    *float64 `json:"price_override,omitempty"`
}

// PriceOverrideRequest edits the price override on a confirmed link
type PriceOverrideRequest struct {
	PriceOverride *float64 `json:"price_override"`
}

// MatchSupplierProduct confirms a supplier product against a catalog product.
// Confirming the already-linked catalog product is an idempotent success;
// a different one supersedes the prior link.
func MatchSupplierProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("confirm_manual")

	supplierID, pid, err := supplierProductParams(c)
	if err != nil {
		log.Error("Invalid path parameters", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.CatalogProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "catalog_product_id is required"})
	}

	if err := verifySupplierOwnership(c, supplierID, pid); err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Confirming manual match",
		zap.Uint("supplier_product_id", pid),
		zap.Uint("catalog_product_id", req.CatalogProductID),
		zap.String("actor", req.Actor))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	link, err := engine.ConfirmManual(c.Request().Context(), pid, req.CatalogProductID, req.Actor, req.PriceOverride)
	if err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Match confirmed",
		zap.Uint("link_id", link.ID),
		zap.Uint("supplier_product_id", link.SupplierProductID),
		zap.Uint("catalog_product_id", link.CatalogProductID),
		zap.String("method", link.Method))
	return c.JSON(http.StatusOK, link)
}

// RejectSuggestion puts a pairing on the permanent denylist so it is never
// suggested again. The supplier product's status is untouched.
func RejectSuggestion(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("eliminate")

	supplierID, pid, err := supplierProductParams(c)
	if err != nil {
		log.Error("Invalid path parameters", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cid, err := strconv.ParseUint(c.Param("cid"), 10, 32)
	if err != nil {
		log.Error("Invalid catalog product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid catalog product ID"})
	}

	if err := verifySupplierOwnership(c, supplierID, pid); err != nil {
		return errorResponse(c, log, err)
	}

	actor := c.QueryParam("actor")
	reason := c.QueryParam("reason")

	log.Info("Eliminating suggestion",
		zap.Uint("supplier_product_id", pid),
		zap.Uint64("catalog_product_id", cid),
		zap.String("actor", actor))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := engine.RejectSuggestion(c.Request().Context(), pid, uint(cid), actor, reason); err != nil {
		return errorResponse(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Suggestion eliminated"})
}

// BulkConfirm auto-confirms every unmatched product of the supplier whose
// best suggestion clears min_score. Partial failures are reported per item,
// never aborting the batch.
func BulkConfirm(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("confirm_bulk_auto")

	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid supplier ID"})
	}

	minScore, err := floatParam(c, "min_score", cfg.Matching.AutoConfirmThreshold)
	if err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Starting bulk auto-confirmation",
		zap.Uint64("supplier_id", supplierID),
		zap.Float64("min_score", minScore))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result, err := engine.ConfirmBulkAuto(c.Request().Context(), uint(supplierID), minScore)
	if err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Bulk auto-confirmation finished",
		zap.Int("examined", result.Examined),
		zap.Int("confirmed", result.Confirmed),
		zap.Int("failures", len(result.Failures)))
	return c.JSON(http.StatusOK, result)
}

// SetPriceOverride edits the price override on an active match link
func SetPriceOverride(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("price_override")

	supplierID, pid, err := supplierProductParams(c)
	if err != nil {
		log.Error("Invalid path parameters", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req PriceOverrideRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := verifySupplierOwnership(c, supplierID, pid); err != nil {
		return errorResponse(c, log, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	link, err := engine.SetPriceOverride(c.Request().Context(), pid, req.PriceOverride)
	if err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Price override updated",
		zap.Uint("link_id", link.ID),
		zap.Uint("supplier_product_id", pid))
	return c.JSON(http.StatusOK, link)
}

func supplierProductParams(c echo.Context) (uint, uint, error) {
	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, 0, errors.New("Invalid supplier ID")
	}
	pid, err := strconv.ParseUint(c.Param("pid"), 10, 32)
	if err != nil {
		return 0, 0, errors.New("Invalid supplier product ID")
	}
	return uint(supplierID), uint(pid), nil
}

// verifySupplierOwnership ensures the supplier product in the path belongs to
// the supplier in the path
func verifySupplierOwnership(c echo.Context, supplierID, pid uint) error {
	var sp model.SupplierProduct
	err := database.GetDB().WithContext(c.Request().Context()).First(&sp, pid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: supplier product %d", matching.ErrNotFound, pid)
	}
	if err != nil {
		return err
	}
	if sp.SupplierID != supplierID {
		return fmt.Errorf("%w: supplier product %d does not belong to supplier %d",
			matching.ErrNotFound, pid, supplierID)
	}
	return nil
}
