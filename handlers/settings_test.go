package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"ad_generator_go/models"
	"ad_generator_go/services/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/settings", nil)
	require.NoError(t, GetSettingsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got editor.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, editor.DefaultSettings(), got)
}

func TestUpdateSettingsHandler(t *testing.T) {
	database := setupTestDB(t)

	t.Run("ClampsAndSaves", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPut, "/api/settings?workspace=shop",
			strings.NewReader(`{"paperFormat":"a4-landscape","fontSize":500,"verticalPosition":-3}`))

		require.NoError(t, UpdateSettingsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var got editor.Settings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 100, got.FontSize)
		assert.Equal(t, 0, got.VerticalPosition)

		var stored models.Settings
		require.NoError(t, database.Where("workspace = ?", "shop").First(&stored).Error)
		assert.Equal(t, "a4-landscape", stored.PaperFormat)
		assert.Equal(t, 0, stored.VerticalPosition)
	})

	t.Run("WorkspaceCookie", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPut, "/api/settings", strings.NewReader(`{"debugMode":true}`))
		c.Request().AddCookie(&http.Cookie{Name: workspaceCookie, Value: "kiosk"})

		require.NoError(t, UpdateSettingsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var stored models.Settings
		require.NoError(t, database.Where("workspace = ?", "kiosk").First(&stored).Error)
		assert.True(t, stored.DebugMode)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPut, "/api/settings", strings.NewReader(`{"paperFormat":"A5"}`))

		require.NoError(t, UpdateSettingsHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Неизвестный формат бумаги: A5", resp["error"])
	})
}
