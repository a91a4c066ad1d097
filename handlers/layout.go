package handlers

import (
	"log"
	"net/http"

	"ad_generator_go/db"
	"ad_generator_go/services"
	"ad_generator_go/services/editor"
	"ad_generator_go/services/layout"

	"github.com/labstack/echo/v4"
)

type layoutRequest struct {
	Settings   *editor.Settings           `json:"settings"`
	Container  layout.ContainerDimensions `json:"container"`
	TextHeight *float64                   `json:"textHeight"`
}

// LayoutHandler runs one layout pass for the client's container and returns
// the paper size, editor styles and placement
func LayoutHandler(c echo.Context) error {
	var req layoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	var settings editor.Settings
	if req.Settings != nil {
		settings = *req.Settings
	} else {
		stored, err := services.NewSettingsService(db.DB).Get(currentWorkspace(c))
		if err != nil {
			log.Printf("[WARNING] %v", err)
			return jsonError(c, http.StatusInternalServerError, "settings.save_failed")
		}
		settings = stored.Editor()
	}

	format, err := layout.ParsePaperFormat(string(settings.PaperFormat))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "settings.invalid_format", map[string]interface{}{
			"format": settings.PaperFormat,
		})
	}
	settings.PaperFormat = format
	settings.FontSize = layout.ClampNominalFontSize(settings.FontSize)
	settings.VerticalPosition = layout.ClampPercent(settings.VerticalPosition)

	container := req.Container
	if container.Width <= 0 || container.Height <= 0 {
		container = services.DefaultViewport
	}

	svc := services.Editor
	if svc == nil {
		svc = &services.EditorService{}
	}
	pass, err := svc.Layout(c.Request().Context(), settings, container, req.TextHeight)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return jsonError(c, http.StatusInternalServerError, "print.no_surface")
	}

	return c.JSON(http.StatusOK, pass)
}
