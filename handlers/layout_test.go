package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"ad_generator_go/services/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutHandler(t *testing.T) {
	setupTestDB(t)

	t.Run("KnownTextHeight", func(t *testing.T) {
		body := `{"settings":{"paperFormat":"a4-portrait","fontSize":50,"verticalPosition":50,"editorContent":"Hello"},"container":{"width":840,"height":1040},"textHeight":168}`
		_, c, rec := setupEcho(http.MethodPost, "/api/layout", strings.NewReader(body))

		require.NoError(t, LayoutHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var pass editor.Pass
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pass))
		assert.InDelta(t, 1000*0.95, pass.Paper.Height, 1e-6)
		assert.Equal(t, 168.0, pass.TextHeight)
		assert.True(t, pass.TextFits)
	})

	t.Run("StoredSettings", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/layout", strings.NewReader(`{"container":{"width":840,"height":1040}}`))

		require.NoError(t, LayoutHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/api/layout", strings.NewReader(`{"settings":{"paperFormat":"Letter"}}`))

		require.NoError(t, LayoutHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
