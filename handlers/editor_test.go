package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"ad_generator_go/middleware"
	"ad_generator_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorPageHandler(t *testing.T) {
	database := setupTestDB(t)
	database.Create(&models.Settings{
		Workspace:        "shop",
		PaperFormat:      "a4-landscape",
		FontSize:         40,
		VerticalPosition: 30,
		EditorContent:    "Sale",
	})

	t.Run("SavedSettings", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/?workspace=shop", nil)
		ctx := context.WithValue(c.Request().Context(), middleware.NonceKey, "abc123")
		c.SetRequest(c.Request().WithContext(ctx))

		require.NoError(t, EditorPageHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `id="editor"`)
		assert.Contains(t, body, `nonce="abc123"`)
		assert.Contains(t, body, "Sale")
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("DefaultWorkspace", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)

		require.NoError(t, EditorPageHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="editor"`)
	})
}

func TestInsertArrowHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       string
	}{
		{"ByName", `{"content":"Go","arrow":"right"}`, http.StatusOK, "Go→"},
		{"BySymbol", `{"content":"","arrow":"↑"}`, http.StatusOK, "↑"},
		{"Unknown", `{"content":"Go","arrow":"sideways"}`, http.StatusBadRequest, "Неизвестная стрелка"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho(http.MethodPost, "/api/editor/arrow", strings.NewReader(tt.body))

			require.NoError(t, InsertArrowHandler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.want, resp["content"])
			} else {
				assert.Equal(t, tt.want, resp["error"])
			}
		})
	}
}

func TestPasteHandler(t *testing.T) {
	t.Run("PlainText", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/editor/paste",
			strings.NewReader(`{"content":"Price: ","text":"100 ₽","html":"<b>ignored</b>"}`))

		require.NoError(t, PasteHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Price: 100 ₽", resp["content"])
	})

	t.Run("InvalidBody", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/editor/paste", strings.NewReader(`{`))

		require.NoError(t, PasteHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
