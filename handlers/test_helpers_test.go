package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ad_generator_go/config"
	"ad_generator_go/db"
	"ad_generator_go/models"
	"ad_generator_go/services"
	"ad_generator_go/services/i18n"
	"ad_generator_go/services/probe"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Settings{}, &models.PrintJob{})
	assert.NoError(t, err)

	// Set global DB and storage
	db.DB = testDB
	services.Storage = services.NewLocalStorage(t.TempDir())

	return testDB
}

// setupEditorService installs a Chrome-less editor service measuring with
// the bundled fonts
func setupEditorService(t *testing.T, database *gorm.DB) *services.EditorService {
	t.Helper()
	host, err := probe.NewFontHost()
	require.NoError(t, err)

	services.Editor = &services.EditorService{
		History:        services.NewPrintHistoryService(database, services.Storage),
		Storage:        services.Storage,
		Host:           host,
		CleanupTimeout: time.Second,
	}
	t.Cleanup(func() { services.Editor = nil })
	return services.Editor
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(i18n.WithLocale(context.Background(), "ru"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}
