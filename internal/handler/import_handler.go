package handler

import (
	"net/http"
	"strconv"
	"time"

	"matching-service/internal/fileio"
	"matching-service/internal/matching"
	"matching-service/pkg/logger"
	"matching-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ImportBatchesRequest carries supplier rows assembled from multiple import
// sources, each batch tagged with its priority.
type ImportBatchesRequest struct {
	Batches []matching.SourceBatch `json:"batches"`
}

// ImportBatches deduplicates rows across the submitted source batches and
// persists the survivors as unmatched supplier products.
func ImportBatches(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("import")

	var req ImportBatchesRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if len(req.Batches) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "batches are required"})
	}

	totalRows := 0
	for _, b := range req.Batches {
		totalRows += len(b.Rows)
	}

	log.Info("Importing supplier product batches",
		zap.Int("batches", len(req.Batches)),
		zap.Int("rows", totalRows))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	imported, err := engine.ImportBatches(c.Request().Context(), req.Batches)
	if err != nil {
		return errorResponse(c, log, err)
	}

	collapsed := totalRows - imported
	if collapsed > 0 {
		prometheus.DedupCollapsedCounter.Add(float64(collapsed))
	}

	log.Info("Import finished",
		zap.Int("imported", imported),
		zap.Int("collapsed", collapsed))
	return c.JSON(http.StatusCreated, echo.Map{
		"imported":  imported,
		"collapsed": collapsed,
	})
}

// ImportSpreadsheet ingests one .xlsx supplier price list as a single source
// batch. Multipart fields: file, supplier_id, source, priority (optional).
func ImportSpreadsheet(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMatchOperation("import")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing spreadsheet file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	supplierID, err := strconv.ParseUint(c.FormValue("supplier_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "supplier_id is required"})
	}
	source := c.FormValue("source")
	if source == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source tag is required"})
	}
	priority := cfg.Import.DefaultPriority
	if raw := c.FormValue("priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "priority must be an integer"})
		}
		priority = p
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read uploaded file"})
	}
	defer f.Close()

	rows, err := fileio.ReadSupplierRows(f, uint(supplierID), source, cfg.Import.MaxSpreadsheetRows)
	if err != nil {
		return errorResponse(c, log, err)
	}

	log.Info("Importing spreadsheet",
		zap.String("file", fileHeader.Filename),
		zap.String("source", source),
		zap.Uint64("supplier_id", supplierID),
		zap.Int("rows", len(rows)))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	imported, err := engine.ImportBatches(c.Request().Context(), []matching.SourceBatch{
		{Source: source, Priority: priority, Rows: rows},
	})
	if err != nil {
		return errorResponse(c, log, err)
	}

	collapsed := len(rows) - imported
	if collapsed > 0 {
		prometheus.DedupCollapsedCounter.Add(float64(collapsed))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"imported":  imported,
		"collapsed": collapsed,
	})
}
