package services

import (
	"testing"

	"ad_generator_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:services_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Settings{}, &models.PrintJob{})
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsServiceDefaults(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	s, err := svc.Get("fresh")
	require.NoError(t, err)

	assert.Equal(t, "fresh", s.Workspace)
	assert.Equal(t, "a4-portrait", s.PaperFormat)
	assert.Equal(t, 50, s.FontSize)
	assert.Equal(t, 50, s.VerticalPosition)
	assert.Equal(t, "", s.EditorContent)
	assert.False(t, s.DebugMode)
	assert.Empty(t, s.ID, "defaults are not persisted by a read")
}

func TestSettingsServiceUpdate(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	saved, err := svc.Update("shop", SettingsUpdate{
		PaperFormat:      strPtr("a4-landscape"),
		FontSize:         intPtr(500),
		VerticalPosition: intPtr(-3),
		EditorContent:    strPtr("a\u200eb"),
		DebugMode:        boolPtr(true),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 100, saved.FontSize)
	assert.Equal(t, 0, saved.VerticalPosition)
	assert.Equal(t, "ab", saved.EditorContent)

	// Partial update keeps the other fields
	saved, err = svc.Update("shop", SettingsUpdate{FontSize: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 10, saved.FontSize)
	assert.Equal(t, "a4-landscape", saved.PaperFormat)
	assert.True(t, saved.DebugMode)

	loaded, err := svc.Get("shop")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "ab", loaded.Editor().EditorContent)
}

func TestSettingsServiceStoresZeroValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	saved, err := svc.Update("top", SettingsUpdate{VerticalPosition: intPtr(0), DebugMode: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 0, saved.VerticalPosition)

	var stored models.Settings
	require.NoError(t, db.Where("workspace = ?", "top").First(&stored).Error)
	assert.Equal(t, 0, stored.VerticalPosition)
	assert.Equal(t, 50, stored.FontSize)
	assert.False(t, stored.DebugMode)

	loaded, err := svc.Get("top")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.VerticalPosition)
}

func TestSettingsServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	_, err := svc.Update("shop", SettingsUpdate{PaperFormat: strPtr("letter")})
	assert.ErrorIs(t, err, ErrInvalidPaperFormat)

	s, err := svc.Get("shop")
	require.NoError(t, err)
	assert.Empty(t, s.ID)
}
