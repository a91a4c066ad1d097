package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"ad_generator_go/db"
	"ad_generator_go/services"
	"ad_generator_go/services/layout"
	"ad_generator_go/services/printing"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// printPolicy sanitizes content that the client asks to treat as markup
var printPolicy = bluemonday.UGCPolicy()

type printRequest struct {
	PaperFormat        string                      `json:"paperFormat"`
	EditorContent      *string                     `json:"editorContent"`
	TreatContentAsHTML bool                        `json:"treatContentAsHTML"`
	FontFamily         string                      `json:"fontFamily"`
	FontWeight         int                         `json:"fontWeight"`
	Screen             *services.ScreenMetrics     `json:"screen"`
	Container          *layout.ContainerDimensions `json:"container"`
}

// buildPrintRequest merges the request body onto the stored workspace
// settings. An explicit empty content is kept so it can be rejected.
func buildPrintRequest(c echo.Context, body printRequest) (services.PrintRequest, error) {
	workspace := currentWorkspace(c)
	stored, err := services.NewSettingsService(db.DB).Get(workspace)
	if err != nil {
		return services.PrintRequest{}, err
	}
	settings := stored.Editor()

	if body.PaperFormat != "" {
		format, err := layout.ParsePaperFormat(body.PaperFormat)
		if err != nil {
			return services.PrintRequest{}, fmt.Errorf("%w: %q", services.ErrInvalidPaperFormat, body.PaperFormat)
		}
		settings.PaperFormat = format
	}
	if body.EditorContent != nil {
		settings.EditorContent = *body.EditorContent
	}

	content := settings.EditorContent
	if body.TreatContentAsHTML {
		content = printPolicy.Sanitize(content)
	}
	settings.EditorContent = content

	return services.PrintRequest{
		Workspace: workspace,
		Settings:  settings,
		Options: printing.Options{
			PaperFormat:        settings.PaperFormat,
			EditorContent:      content,
			TreatContentAsHTML: body.TreatContentAsHTML,
			FontFamily:         body.FontFamily,
			FontWeight:         body.FontWeight,
		},
		Screen:    body.Screen,
		Container: body.Container,
	}, nil
}

// printError maps a print failure to a localized response
func printError(c echo.Context, err error, format string) error {
	if errors.Is(err, services.ErrInvalidPaperFormat) {
		return jsonError(c, http.StatusBadRequest, "settings.invalid_format", map[string]interface{}{"format": format})
	}

	switch printing.NoticeKey(err) {
	case "print.enter_text", "print.no_surface":
		return jsonError(c, http.StatusBadRequest, printing.NoticeKey(err))
	case "print.prepare_failed":
		return jsonError(c, http.StatusServiceUnavailable, "print.prepare_failed")
	}

	log.Printf("[WARNING] Print failed: %v", err)
	return jsonError(c, http.StatusInternalServerError, "print.prepare_failed")
}

// PrintHandler prints the editor content and returns the PDF
func PrintHandler(c echo.Context) error {
	if services.Editor == nil {
		return jsonError(c, http.StatusServiceUnavailable, "print.unavailable")
	}

	var body printRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c)
	}

	req, err := buildPrintRequest(c, body)
	if err != nil {
		return printError(c, err, body.PaperFormat)
	}

	job, pdf, err := services.Editor.Print(c.Request().Context(), req)
	if err != nil {
		return printError(c, err, body.PaperFormat)
	}

	c.Response().Header().Set("X-Print-Job-ID", job.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="print-%s.pdf"`, job.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// PreviewHandler returns the print document as HTML. GET previews the saved
// settings; POST accepts the same body as PrintHandler.
func PreviewHandler(c echo.Context) error {
	if services.Editor == nil {
		return jsonError(c, http.StatusServiceUnavailable, "print.unavailable")
	}

	var body printRequest
	if c.Request().Method == http.MethodPost {
		if err := c.Bind(&body); err != nil {
			return badRequest(c)
		}
	}

	req, err := buildPrintRequest(c, body)
	if err != nil {
		return printError(c, err, body.PaperFormat)
	}

	html, err := services.Editor.Preview(c.Request().Context(), req)
	if err != nil {
		return printError(c, err, body.PaperFormat)
	}
	return c.HTML(http.StatusOK, html)
}
