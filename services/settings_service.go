package services

import (
	"errors"
	"fmt"

	"ad_generator_go/models"
	"ad_generator_go/services/layout"
	"ad_generator_go/services/textclean"

	"gorm.io/gorm"
)

// ErrInvalidPaperFormat is returned for paper formats other than A4
// portrait and landscape
var ErrInvalidPaperFormat = errors.New("invalid paper format")

// SettingsUpdate is a partial settings change; nil fields are kept
type SettingsUpdate struct {
	PaperFormat      *string `json:"paperFormat"`
	FontSize         *int    `json:"fontSize"`
	VerticalPosition *int    `json:"verticalPosition"`
	EditorContent    *string `json:"editorContent"`
	DebugMode        *bool   `json:"debugMode"`
}

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the stored settings of a workspace, or the defaults when none
// were saved yet
func (s *SettingsService) Get(workspace string) (models.Settings, error) {
	var settings models.Settings
	err := s.DB.Where("workspace = ?", workspace).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewSettings(workspace), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Apply validates an update onto settings. Numbers are clamped into range,
// content is sanitized and unknown paper formats are rejected.
func (u SettingsUpdate) Apply(settings *models.Settings) error {
	if u.PaperFormat != nil {
		format, err := layout.ParsePaperFormat(*u.PaperFormat)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPaperFormat, *u.PaperFormat)
		}
		settings.PaperFormat = string(format)
	}
	if u.FontSize != nil {
		settings.FontSize = layout.ClampNominalFontSize(*u.FontSize)
	}
	if u.VerticalPosition != nil {
		settings.VerticalPosition = layout.ClampPercent(*u.VerticalPosition)
	}
	if u.EditorContent != nil {
		settings.EditorContent = textclean.Sanitize(*u.EditorContent)
	}
	if u.DebugMode != nil {
		settings.DebugMode = *u.DebugMode
	}
	return nil
}

// Update applies a partial change and persists the result
func (s *SettingsService) Update(workspace string, update SettingsUpdate) (models.Settings, error) {
	settings, err := s.Get(workspace)
	if err != nil {
		return models.Settings{}, err
	}
	if err := update.Apply(&settings); err != nil {
		return models.Settings{}, err
	}
	if err := s.DB.Save(&settings).Error; err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
