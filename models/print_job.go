package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Print job statuses
const (
	PrintJobStatusPrinted = "PRINTED"
	PrintJobStatusFailed  = "FAILED"
)

// PrintJob records one print of the editor content
type PrintJob struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Workspace     string `gorm:"not null;index" json:"workspace"`
	PaperFormat   string `gorm:"not null" json:"paper_format"`
	ContentLength int    `json:"content_length"`
	Content       string `gorm:"type:text" json:"-"`

	// Typography as printed, in millimeters
	FontMM      float64 `json:"font_mm"`
	LineMM      float64 `json:"line_mm"`
	PadTopMM    float64 `json:"pad_top_mm"`
	PadBottomMM float64 `json:"pad_bottom_mm"`

	Renderer   string `json:"renderer"` // chrome or pdf
	Status     string `gorm:"not null" json:"status"`
	Error      string `json:"error,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
	FileSize   int64  `json:"file_size"`
	URL        string `gorm:"-" json:"url,omitempty"`
}

func (j *PrintJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}

func (PrintJob) TableName() string {
	return "print_jobs"
}

// HasFile reports whether the printed document was archived
func (j *PrintJob) HasFile() bool {
	return j.StorageKey != ""
}
