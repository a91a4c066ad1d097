package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ad_generator_go/config"
	"ad_generator_go/models"
	"ad_generator_go/services/editor"
	"ad_generator_go/services/frame"
	"ad_generator_go/services/layout"
	"ad_generator_go/services/printing"
	"ad_generator_go/services/probe"
	"ad_generator_go/services/session"
	"ad_generator_go/services/surface"
	"ad_generator_go/services/textclean"

	"gorm.io/gorm"
)

// ErrNoOutput is returned when a print finished without producing a document
var ErrNoOutput = errors.New("print produced no document")

// DefaultViewport is the container size assumed when the client reports none
var DefaultViewport = layout.ContainerDimensions{Width: 1280, Height: 1024}

// ScreenMetrics are the on-screen paper and editor measurements reported by
// a browser client at the moment print was requested
type ScreenMetrics struct {
	PaperHeightPx   float64 `json:"paperHeightPx"`
	FontSizePx      float64 `json:"fontSizePx"`
	LineHeightPx    float64 `json:"lineHeightPx"`
	PaddingTopPx    float64 `json:"paddingTopPx"`
	PaddingBottomPx float64 `json:"paddingBottomPx"`
}

// PrintRequest describes one print or preview
type PrintRequest struct {
	Workspace string
	Settings  editor.Settings
	Options   printing.Options
	Screen    *ScreenMetrics
	Container *layout.ContainerDimensions
}

// PageRenderer renders the editor page loaded into headless sessions
type PageRenderer func(ctx context.Context, settings editor.Settings) (string, error)

// EditorService runs layout passes and print jobs on behalf of HTTP clients
type EditorService struct {
	Browser        *Browser
	History        *PrintHistoryService
	Storage        StorageProvider
	Host           probe.Host
	Page           PageRenderer
	CleanupTimeout time.Duration
	FrameInterval  time.Duration
}

// Editor is the process-wide editor service
var Editor *EditorService

// InitializeEditor wires the editor service to the shared browser, history and
// storage. Without Chrome, text is measured with the bundled fonts.
func InitializeEditor(cfg *config.Config, database *gorm.DB, page PageRenderer) *EditorService {
	svc := &EditorService{
		Browser:        Chrome,
		History:        NewPrintHistoryService(database, Storage),
		Storage:        Storage,
		Page:           page,
		CleanupTimeout: cfg.PrintCleanupTimeout,
		FrameInterval:  cfg.FrameInterval,
	}

	host, err := probe.NewFontHost()
	if err != nil {
		log.Printf("[WARNING] Failed to load bundled fonts, falling back to estimates: %v", err)
		svc.Host = probe.EstimateHost{}
	} else {
		svc.Host = host
	}

	Editor = svc
	return svc
}

// Paste inserts the plain-text clipboard flavor at the end of content and
// returns the cleaned result
func (s *EditorService) Paste(ctx context.Context, content string, clip editor.Clipboard) (string, error) {
	settings := editor.DefaultSettings()
	settings.EditorContent = content

	sess, ed := session.NewMemory(ctx, DefaultViewport, settings, session.Options{
		Scheduler: frame.NewManualScheduler(),
		Host:      probe.EstimateHost{},
	})
	defer sess.Close()

	if err := ed.SetText(ctx, textclean.Sanitize(content)); err != nil {
		return "", err
	}
	return sess.Controller().HandlePaste(ctx, clip)
}

// Layout runs one layout pass for a client-reported container. A known text
// height skips measurement.
func (s *EditorService) Layout(ctx context.Context, settings editor.Settings, container layout.ContainerDimensions, textHeight *float64) (*editor.Pass, error) {
	host := s.Host
	if textHeight != nil {
		host = probe.FixedHost{Height: *textHeight}
	}

	sess, _ := session.NewMemory(ctx, container, settings, session.Options{
		Scheduler: frame.NewManualScheduler(),
		Host:      host,
	})
	defer sess.Close()

	pass, err := sess.Layout(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out editor: %w", err)
	}
	return pass, nil
}

// Preview returns the print document with the content in place, built from
// the same metrics a print would use
func (s *EditorService) Preview(ctx context.Context, req PrintRequest) (string, error) {
	opts := s.options(req)
	if textclean.IsBlank(textclean.Sanitize(opts.EditorContent)) {
		return "", printing.ErrEmptyContent
	}

	sess, err := s.open(ctx, req, nil)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	if _, err := sess.Controller().Flush(ctx); err != nil {
		return "", err
	}
	m, err := printing.ComputeMetrics(ctx, opts.PaperFormat, sess.Renderer().Paper, sess.Renderer().Editor)
	if err != nil {
		return "", fmt.Errorf("%w: %w", printing.ErrSurfaceUnavailable, err)
	}
	return printing.RenderDocument(opts.PaperFormat, m, opts), nil
}

// Print runs the print pipeline, archives the document and records the job.
// Precondition failures leave no job behind.
func (s *EditorService) Print(ctx context.Context, req PrintRequest) (*models.PrintJob, []byte, error) {
	opts := s.options(req)
	if textclean.IsBlank(textclean.Sanitize(opts.EditorContent)) {
		return nil, nil, printing.ErrEmptyContent
	}
	var collector PDFCollector

	sess, err := s.open(ctx, req, NewPrintSandbox(s.Browser, collector.Collect))
	if err != nil {
		return nil, nil, err
	}
	defer sess.Close()

	err = sess.Print(ctx, opts)
	if printing.NoticeKey(err) == "print.enter_text" || printing.NoticeKey(err) == "print.no_surface" {
		return nil, nil, err
	}

	job := &models.PrintJob{
		Workspace:     req.Workspace,
		PaperFormat:   string(opts.PaperFormat),
		Content:       textclean.Sanitize(opts.EditorContent),
		ContentLength: len([]rune(textclean.Sanitize(opts.EditorContent))),
		Renderer:      s.rendererName(),
		Status:        models.PrintJobStatusPrinted,
	}
	if m, merr := printing.ComputeMetrics(ctx, opts.PaperFormat, sess.Renderer().Paper, sess.Renderer().Editor); merr == nil {
		job.FontMM, job.LineMM, job.PadTopMM, job.PadBottomMM = m.FontMM, m.LineMM, m.PadTopMM, m.PadBottomMM
	}

	if err == nil && collector.PDF == nil {
		err = ErrNoOutput
	}
	if err != nil {
		job.Status = models.PrintJobStatusFailed
		job.Error = err.Error()
		s.record(job)
		return job, nil, err
	}

	if s.Storage != nil && s.Storage.IsConfigured() {
		key := GeneratePrintKey(req.Workspace, opts.PaperFormat)
		res, uerr := s.Storage.UploadReader(ctx, bytes.NewReader(collector.PDF), key, "application/pdf", int64(len(collector.PDF)))
		if uerr != nil {
			log.Printf("[WARNING] Failed to archive printed document: %v", uerr)
		} else {
			job.StorageKey = res.Key
			job.FileSize = res.FileSize
			job.URL = res.URL
		}
	}
	s.record(job)

	return job, collector.PDF, nil
}

func (s *EditorService) record(job *models.PrintJob) {
	if s.History == nil {
		return
	}
	if err := s.History.Record(job); err != nil {
		log.Printf("[WARNING] %v", err)
	}
}

func (s *EditorService) rendererName() string {
	if s.Browser != nil {
		return "chrome"
	}
	return "pdf"
}

func (s *EditorService) options(req PrintRequest) printing.Options {
	opts := req.Options
	if opts.PaperFormat == "" {
		opts.PaperFormat = req.Settings.PaperFormat
	}
	if opts.PaperFormat == "" {
		opts.PaperFormat = layout.FormatPortrait
	}
	if opts.EditorContent == "" {
		opts.EditorContent = req.Settings.EditorContent
	}
	return opts
}

// open picks the surfaces a request is served from: the client's own screen
// metrics when reported, a headless editor page when Chrome runs, and an
// in-memory editor measured with font metrics otherwise.
func (s *EditorService) open(ctx context.Context, req PrintRequest, sandbox printing.Sandbox) (*session.Session, error) {
	settings := req.Settings
	if req.Options.PaperFormat != "" {
		settings.PaperFormat = req.Options.PaperFormat
	}
	if req.Options.EditorContent != "" {
		settings.EditorContent = req.Options.EditorContent
	}

	opts := session.Options{
		Host:           s.Host,
		Sandbox:        sandbox,
		CleanupTimeout: s.CleanupTimeout,
	}

	if req.Screen != nil {
		return screenSession(ctx, settings, *req.Screen, opts)
	}

	container := DefaultViewport
	if req.Container != nil && req.Container.Width > 0 && req.Container.Height > 0 {
		container = *req.Container
	}

	if s.Browser != nil && s.Page != nil {
		html, err := s.Page(ctx, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to render editor page: %w", err)
		}
		interval := s.FrameInterval
		if interval <= 0 {
			interval = frame.DefaultInterval
		}
		opts.Host = nil
		opts.Scheduler = frame.NewTimerScheduler(interval)
		sess, err := session.OpenChrome(s.Browser.Context(), html, container, settings, opts)
		if err != nil {
			return nil, err
		}
		if err := sess.Apply(ctx, settings); err != nil {
			sess.Close()
			return nil, err
		}
		return sess, nil
	}

	opts.Scheduler = frame.NewManualScheduler()
	sess, _ := session.NewMemory(ctx, container, settings, opts)
	if err := sess.Apply(ctx, settings); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// screenSession reproduces the client's paper and editor from the reported
// metrics. No pass is scheduled, so the metrics are printed as reported.
func screenSession(ctx context.Context, settings editor.Settings, m ScreenMetrics, opts session.Options) (*session.Session, error) {
	format := settings.PaperFormat
	paper := surface.NewMemoryPaperWithSize(m.PaperHeightPx*format.Dimensions().AspectRatio, m.PaperHeightPx, 0)
	ed := surface.NewMemoryEditor(paper)
	ed.SetComputed(surface.ComputedStyle{
		FontFamily:      printing.DefaultFontFamily,
		FontWeight:      "700",
		Direction:       "ltr",
		FontSizePx:      m.FontSizePx,
		LineHeightPx:    m.LineHeightPx,
		PaddingTopPx:    m.PaddingTopPx,
		PaddingBottomPx: m.PaddingBottomPx,
	})
	if err := ed.SetText(ctx, textclean.Sanitize(settings.EditorContent)); err != nil {
		return nil, fmt.Errorf("failed to load screen content: %w", err)
	}

	opts.Scheduler = frame.NewManualScheduler()
	return session.New(ctx, surface.Surfaces{Paper: paper, Editor: ed}, settings, opts), nil
}
