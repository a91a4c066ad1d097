package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"ad_generator_go/db"
	"ad_generator_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func printHistory() *services.PrintHistoryService {
	return services.NewPrintHistoryService(db.DB, services.Storage)
}

// dateRange reads the optional from/to query dates
func dateRange(c echo.Context) (services.DateRange, error) {
	return services.ParseDateRange(c.QueryParam("from"), c.QueryParam("to"))
}

// ListPrintJobsHandler returns the workspace's recent print jobs
func ListPrintJobsHandler(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	r, err := dateRange(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "errors.invalid_date")
	}

	jobs, err := printHistory().ListRange(currentWorkspace(c), r, limit)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "errors.history_failed")
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetPrintJobHandler returns one print job
func GetPrintJobHandler(c echo.Context) error {
	history := printHistory()
	job, err := history.Get(currentWorkspace(c), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, http.StatusNotFound, "errors.not_found")
	}
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "errors.history_failed")
	}

	if job.HasFile() && history.Storage != nil {
		job.URL = history.Storage.GetPublicURL(job.StorageKey)
	}
	return c.JSON(http.StatusOK, job)
}

// ExportPrintJobsHandler downloads the workspace's print history as XLSX
func ExportPrintJobsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	history := printHistory()
	r, err := dateRange(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "errors.invalid_date")
	}

	jobs, err := history.ListRange(currentWorkspace(c), r, 0)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "errors.history_failed")
	}

	data, err := history.ExportXLSX(ctx, jobs)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "errors.export_failed")
	}

	filename := fmt.Sprintf("print-history-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, services.XLSXContentType, data)
}

// DownloadPrintJobFileHandler serves the archived PDF of a print job. Private
// buckets without a public URL are reached through a short-lived signed URL.
func DownloadPrintJobFileHandler(c echo.Context) error {
	ctx := c.Request().Context()
	history := printHistory()

	job, err := history.Get(currentWorkspace(c), c.Param("id"))
	if err != nil || !job.HasFile() || history.Storage == nil {
		return jsonError(c, http.StatusNotFound, "errors.not_found")
	}

	if history.Storage.GetPublicURL(job.StorageKey) == "" {
		url, err := history.Storage.GetSignedURL(ctx, job.StorageKey, 15*time.Minute)
		if err != nil {
			log.Printf("[WARNING] Failed to sign print file URL: %v", err)
			return jsonError(c, http.StatusInternalServerError, "errors.history_failed")
		}
		return c.Redirect(http.StatusFound, url)
	}

	reader, contentType, err := history.Storage.Get(ctx, job.StorageKey)
	if err != nil {
		log.Printf("[WARNING] Failed to open print file: %v", err)
		return jsonError(c, http.StatusNotFound, "errors.not_found")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="print-%s.pdf"`, job.ID))
	return c.Stream(http.StatusOK, contentType, reader)
}
