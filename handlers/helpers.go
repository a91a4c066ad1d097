package handlers

import (
	"net/http"
	"strings"

	"ad_generator_go/models"
	"ad_generator_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const workspaceCookie = "workspace"

// currentWorkspace resolves the workspace from the query string, then the
// workspace cookie, then the default workspace
func currentWorkspace(c echo.Context) string {
	if ws := strings.TrimSpace(c.QueryParam("workspace")); ws != "" {
		return ws
	}
	if cookie, err := c.Cookie(workspaceCookie); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return strings.TrimSpace(cookie.Value)
	}
	return models.DefaultWorkspace
}

// jsonError writes a localized {"error": ...} body
func jsonError(c echo.Context, status int, key string, args ...map[string]interface{}) error {
	return c.JSON(status, map[string]string{"error": i18n.T(c.Request().Context(), key, args...)})
}

func badRequest(c echo.Context) error {
	return jsonError(c, http.StatusBadRequest, "errors.invalid_body")
}
