package handlers

import (
	"log"
	"net/http"

	"ad_generator_go/db"
	"ad_generator_go/middleware"
	"ad_generator_go/services"
	"ad_generator_go/services/editor"
	"ad_generator_go/services/textclean"
	"ad_generator_go/templates/pages"

	"github.com/labstack/echo/v4"
)

type arrowRequest struct {
	Content string `json:"content"`
	Arrow   string `json:"arrow"`
}

type pasteRequest struct {
	Content string `json:"content"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type contentResponse struct {
	Content string `json:"content"`
}

// EditorPageHandler renders the editor with the workspace's saved settings
func EditorPageHandler(c echo.Context) error {
	ctx := c.Request().Context()
	workspace := currentWorkspace(c)

	settings, err := services.NewSettingsService(db.DB).Get(workspace)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return c.String(http.StatusInternalServerError, "Error loading settings")
	}

	component := pages.EditorPage(pages.EditorViewModel{
		Settings:    settings.Editor(),
		Workspace:   workspace,
		Nonce:       middleware.GetNonce(ctx),
		Interactive: true,
	})
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(ctx, c.Response().Writer)
}

// InsertArrowHandler appends a toolbar arrow to the editor content
func InsertArrowHandler(c echo.Context) error {
	var req arrowRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	arrow, err := textclean.ParseArrow(req.Arrow)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "editor.invalid_arrow")
	}

	return c.JSON(http.StatusOK, contentResponse{Content: textclean.InsertArrow(req.Content, arrow)})
}

// PasteHandler inserts the plain-text clipboard flavor into the editor content
func PasteHandler(c echo.Context) error {
	var req pasteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	clip := editor.Clipboard{"text/plain": req.Text}
	if req.HTML != "" {
		clip["text/html"] = req.HTML
	}

	svc := services.Editor
	if svc == nil {
		svc = &services.EditorService{}
	}
	content, err := svc.Paste(c.Request().Context(), req.Content, clip)
	if err != nil {
		log.Printf("[WARNING] Failed to paste into editor: %v", err)
		return jsonError(c, http.StatusInternalServerError, "print.prepare_failed")
	}

	return c.JSON(http.StatusOK, contentResponse{Content: content})
}
