package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"ad_generator_go/models"
	"ad_generator_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPrintJobs(t *testing.T) []models.PrintJob {
	t.Helper()
	database := setupTestDB(t)

	now := time.Now()
	jobs := []models.PrintJob{
		{Workspace: "shop", CreatedAt: now.Add(-time.Hour), PaperFormat: "a4-portrait", Content: "Old", ContentLength: 3, FontMM: 12.5, Status: models.PrintJobStatusPrinted},
		{Workspace: "shop", CreatedAt: now, PaperFormat: "a4-landscape", Content: "New", ContentLength: 3, FontMM: 10, Status: models.PrintJobStatusFailed, Error: "boom"},
		{Workspace: "other", CreatedAt: now, PaperFormat: "a4-portrait", Content: "Elsewhere", ContentLength: 9, Status: models.PrintJobStatusPrinted},
	}
	for i := range jobs {
		require.NoError(t, database.Create(&jobs[i]).Error)
	}
	return jobs
}

func TestListPrintJobsHandler(t *testing.T) {
	seedPrintJobs(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs?workspace=shop", nil)
	require.NoError(t, ListPrintJobsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var jobs []models.PrintJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 2)
	assert.Equal(t, "a4-landscape", jobs[0].PaperFormat)
	assert.Equal(t, "boom", jobs[0].Error)
	assert.Equal(t, "a4-portrait", jobs[1].PaperFormat)
}

func TestListPrintJobsHandlerInvalidDate(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs?from=03/01/2026", nil)
	require.NoError(t, ListPrintJobsHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ГГГГ-ММ-ДД")
}

func TestGetPrintJobHandler(t *testing.T) {
	jobs := seedPrintJobs(t)

	t.Run("Found", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs/"+jobs[0].ID+"?workspace=shop", nil)
		c.SetParamNames("id")
		c.SetParamValues(jobs[0].ID)

		require.NoError(t, GetPrintJobHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"`+jobs[0].ID+`"`)
		assert.Contains(t, rec.Body.String(), `"font_mm":12.5`)
	})

	t.Run("OtherWorkspace", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs/"+jobs[2].ID+"?workspace=shop", nil)
		c.SetParamNames("id")
		c.SetParamValues(jobs[2].ID)

		require.NoError(t, GetPrintJobHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Задание печати не найдено")
	})
}

func TestExportPrintJobsHandler(t *testing.T) {
	seedPrintJobs(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs/export?workspace=shop", nil)
	require.NoError(t, ExportPrintJobsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "print-history-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestDownloadPrintJobFileHandler(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	res, err := services.Storage.UploadReader(ctx, strings.NewReader("%PDF-1.4 test"), "workspaces/shop/prints/a4-portrait/x.pdf", "application/pdf", 13)
	require.NoError(t, err)

	archived := &models.PrintJob{Workspace: "shop", PaperFormat: "a4-portrait", Status: models.PrintJobStatusPrinted, StorageKey: res.Key}
	require.NoError(t, database.Create(archived).Error)
	failed := &models.PrintJob{Workspace: "shop", PaperFormat: "a4-portrait", Status: models.PrintJobStatusFailed}
	require.NoError(t, database.Create(failed).Error)

	t.Run("Archived", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs/"+archived.ID+"/file?workspace=shop", nil)
		c.SetParamNames("id")
		c.SetParamValues(archived.ID)

		require.NoError(t, DownloadPrintJobFileHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4 test", rec.Body.String())
	})

	t.Run("NoFile", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/print-jobs/"+failed.ID+"/file?workspace=shop", nil)
		c.SetParamNames("id")
		c.SetParamValues(failed.ID)

		require.NoError(t, DownloadPrintJobFileHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
