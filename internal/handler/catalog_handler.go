package handler

import (
	"net/http"
	"strconv"
	"time"

	"matching-service/internal/model"
	"matching-service/pkg/database"
	"matching-service/pkg/logger"
	"matching-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogProductRequest defines the structure for catalog product creation
type CatalogProductRequest struct {
	Name      string `json:"name" validate:"required"`
	AliasName string `json:"alias_name"`
	SKU       string `json:"sku" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

// CreateCatalogProduct creates a new canonical catalog product
func CreateCatalogProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new catalog product")

	var req CatalogProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" || req.SKU == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and sku are required"})
	}

	// Check if a product with the same SKU exists
	var count int64
	database.GetDB().Model(&model.CatalogProduct{}).
		Where("sku = ?", req.SKU).
		Count(&count)
	if count > 0 {
		log.Warn("Catalog product with this SKU already exists", zap.String("sku", req.SKU))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Catalog product with this SKU already exists",
		})
	}

	product := model.CatalogProduct{
		Name:      req.Name,
		AliasName: req.AliasName,
		SKU:       req.SKU,
		IsActive:  req.IsActive,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create catalog product",
			zap.String("name", req.Name),
			zap.String("sku", req.SKU),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create catalog product",
		})
	}

	log.Info("Catalog product created",
		zap.Uint("id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// ListCatalogProducts retrieves catalog products with pagination
func ListCatalogProducts(c echo.Context) error {
	log := logger.FromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.GetDB().Model(&model.CatalogProduct{})

	// Filter by active status if specified
	isActive := c.QueryParam("is_active")
	if isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var products []model.CatalogProduct
	result := query.
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list catalog products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve catalog products",
		})
	}

	var total int64
	query.Count(&total)

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"pagination": echo.Map{
			"current_page": page,
			"limit":        limit,
			"total":        total,
			"total_pages":  (int(total) + limit - 1) / limit,
		},
	})
}
