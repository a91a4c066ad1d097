package models

import (
	"time"

	"ad_generator_go/services/editor"
	"ad_generator_go/services/layout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultWorkspace is used when a request names no workspace
const DefaultWorkspace = "default"

// Settings are the persisted editor settings of one workspace
type Settings struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Workspace string `gorm:"not null;uniqueIndex" json:"workspace"`
	// Defaults come from NewSettings; zero is a valid position
	PaperFormat      string `gorm:"not null" json:"paperFormat"`
	FontSize         int    `gorm:"not null" json:"fontSize"`
	VerticalPosition int    `gorm:"not null" json:"verticalPosition"`
	EditorContent    string `gorm:"type:text" json:"editorContent"`
	DebugMode        bool   `gorm:"not null" json:"debugMode"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (Settings) TableName() string {
	return "settings"
}

// NewSettings returns the defaults of a fresh editor for a workspace
func NewSettings(workspace string) Settings {
	d := editor.DefaultSettings()
	return Settings{
		Workspace:        workspace,
		PaperFormat:      string(d.PaperFormat),
		FontSize:         d.FontSize,
		VerticalPosition: d.VerticalPosition,
		EditorContent:    d.EditorContent,
		DebugMode:        d.DebugMode,
	}
}

// Editor converts the record to the snapshot consumed by layout passes
func (s Settings) Editor() editor.Settings {
	format, err := layout.ParsePaperFormat(s.PaperFormat)
	if err != nil {
		format = layout.FormatPortrait
	}
	return editor.Settings{
		PaperFormat:      format,
		FontSize:         s.FontSize,
		VerticalPosition: s.VerticalPosition,
		EditorContent:    s.EditorContent,
		DebugMode:        s.DebugMode,
	}
}
