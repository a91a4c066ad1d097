package handlers

import (
	"errors"
	"log"
	"net/http"

	"ad_generator_go/db"
	"ad_generator_go/services"

	"github.com/labstack/echo/v4"
)

// GetSettingsHandler returns the workspace settings
func GetSettingsHandler(c echo.Context) error {
	settings, err := services.NewSettingsService(db.DB).Get(currentWorkspace(c))
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "settings.save_failed")
	}
	return c.JSON(http.StatusOK, settings.Editor())
}

// UpdateSettingsHandler applies a partial settings update and returns the
// stored result
func UpdateSettingsHandler(c echo.Context) error {
	var update services.SettingsUpdate
	if err := c.Bind(&update); err != nil {
		return jsonError(c, http.StatusBadRequest, "settings.invalid_body")
	}

	settings, err := services.NewSettingsService(db.DB).Update(currentWorkspace(c), update)
	if errors.Is(err, services.ErrInvalidPaperFormat) {
		return jsonError(c, http.StatusBadRequest, "settings.invalid_format", map[string]interface{}{
			"format": *update.PaperFormat,
		})
	}
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "settings.save_failed")
	}

	return c.JSON(http.StatusOK, settings.Editor())
}
