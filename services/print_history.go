package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"ad_generator_go/models"
	"ad_generator_go/services/i18n"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// DefaultPrintJobLimit caps history listings
const DefaultPrintJobLimit = 50

type PrintHistoryService struct {
	DB      *gorm.DB
	Storage StorageProvider
}

func NewPrintHistoryService(db *gorm.DB, storage StorageProvider) *PrintHistoryService {
	return &PrintHistoryService{DB: db, Storage: storage}
}

// Record stores a print job
func (s *PrintHistoryService) Record(job *models.PrintJob) error {
	if err := s.DB.Create(job).Error; err != nil {
		return fmt.Errorf("failed to record print job: %w", err)
	}
	return nil
}

// List returns the most recent jobs of a workspace, newest first
func (s *PrintHistoryService) List(workspace string, limit int) ([]models.PrintJob, error) {
	return s.ListRange(workspace, DateRange{}, limit)
}

// ListRange returns the most recent jobs of a workspace created within r,
// newest first
func (s *PrintHistoryService) ListRange(workspace string, r DateRange, limit int) ([]models.PrintJob, error) {
	if limit <= 0 || limit > DefaultPrintJobLimit {
		limit = DefaultPrintJobLimit
	}

	query := s.DB.Where("workspace = ?", workspace)
	if !r.From.IsZero() {
		query = query.Where("created_at >= ?", r.From)
	}
	if !r.To.IsZero() {
		query = query.Where("created_at < ?", r.To)
	}

	var jobs []models.PrintJob
	err := query.Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list print jobs: %w", err)
	}

	if s.Storage != nil {
		for i := range jobs {
			if jobs[i].HasFile() {
				jobs[i].URL = s.Storage.GetPublicURL(jobs[i].StorageKey)
			}
		}
	}
	return jobs, nil
}

// Get returns one job of a workspace
func (s *PrintHistoryService) Get(workspace, id string) (*models.PrintJob, error) {
	var job models.PrintJob
	if err := s.DB.Where("workspace = ? AND id = ?", workspace, id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Prune deletes jobs older than retention together with their archived
// documents. It returns the number of jobs removed.
func (s *PrintHistoryService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	var expired []models.PrintJob
	if err := s.DB.Where("created_at < ?", cutoff).Find(&expired).Error; err != nil {
		return 0, fmt.Errorf("failed to find expired print jobs: %w", err)
	}

	for _, job := range expired {
		if job.HasFile() && s.Storage != nil {
			if err := s.Storage.Delete(ctx, job.StorageKey); err != nil {
				log.Printf("[WARNING] Failed to delete archived print %s: %v", job.StorageKey, err)
			}
		}
	}

	result := s.DB.Where("created_at < ?", cutoff).Delete(&models.PrintJob{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune print jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ExportXLSX writes the jobs to a spreadsheet with localized headers
func (s *PrintHistoryService) ExportXLSX(ctx context.Context, jobs []models.PrintJob) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "history.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{
		i18n.T(ctx, "history.created_at"),
		i18n.T(ctx, "history.paper_format"),
		i18n.T(ctx, "history.content_length"),
		i18n.T(ctx, "history.font_mm"),
		i18n.T(ctx, "history.status"),
		i18n.T(ctx, "history.file"),
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "E", 16)
	f.SetColWidth(sheet, "F", "F", 60)

	for i, job := range jobs {
		row := i + 2
		values := []interface{}{
			job.CreatedAt.Format("2006-01-02 15:04:05"),
			job.PaperFormat,
			job.ContentLength,
			fmt.Sprintf("%.2f", job.FontMM),
			job.Status,
			job.StorageKey,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
