package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ad_generator_go/config"
	"ad_generator_go/db"
	"ad_generator_go/handlers"
	"ad_generator_go/middleware"
	"ad_generator_go/models"
	"ad_generator_go/services"
	"ad_generator_go/services/editor"
	"ad_generator_go/services/i18n"
	"ad_generator_go/services/jobs"
	"ad_generator_go/templates/pages"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Load translations
	i18n.SetDefaultLanguage(cfg.DefaultLanguage)
	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Settings{}, &models.PrintJob{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Storage and headless Chrome
	services.InitializeStorage(cfg)
	if !cfg.DisableBrowser {
		services.InitializeBrowser(cfg.ChromePath)
		defer services.Chrome.Close()
	}

	// Headless sessions load the editor page without the client script
	services.InitializeEditor(cfg, db.DB, func(ctx context.Context, s editor.Settings) (string, error) {
		return pages.RenderString(ctx, pages.EditorPage(pages.EditorViewModel{Settings: s}))
	})

	// Print history retention
	scheduler, err := jobs.StartScheduler(
		services.NewPrintHistoryService(db.DB, services.Storage),
		cfg.PruneSchedule,
		cfg.PrintHistoryRetention,
	)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSPNonce())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Editor
	e.GET("/", handlers.EditorPageHandler)

	api := e.Group("/api")
	api.Use(middleware.APIRateLimiter.Middleware())
	{
		api.GET("/settings", handlers.GetSettingsHandler)
		api.PUT("/settings", handlers.UpdateSettingsHandler)
		api.POST("/layout", handlers.LayoutHandler)
		api.POST("/editor/arrow", handlers.InsertArrowHandler)
		api.POST("/editor/paste", handlers.PasteHandler)

		api.GET("/print-jobs", handlers.ListPrintJobsHandler)
		api.GET("/print-jobs/export", handlers.ExportPrintJobsHandler)
		api.GET("/print-jobs/:id", handlers.GetPrintJobHandler)
		api.GET("/print-jobs/:id/file", handlers.DownloadPrintJobFileHandler)
	}

	printing := api.Group("/print")
	printing.Use(middleware.PrintRateLimiter.Middleware())
	{
		printing.POST("", handlers.PrintHandler)
		printing.GET("/preview", handlers.PreviewHandler)
		printing.POST("/preview", handlers.PreviewHandler)
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[WARNING] Server shutdown failed: %v", err)
	}
}
