package editor

import "ad_generator_go/services/layout"

// Settings is the snapshot of application settings a layout pass consumes.
// The surrounding application owns and persists them.
type Settings struct {
	PaperFormat      layout.PaperFormat `json:"paperFormat"`
	FontSize         int                `json:"fontSize"`
	VerticalPosition int                `json:"verticalPosition"`
	EditorContent    string             `json:"editorContent"`
	DebugMode        bool               `json:"debugMode"`
}

// DefaultSettings mirrors the initial state of a fresh editor
func DefaultSettings() Settings {
	return Settings{
		PaperFormat:      layout.FormatPortrait,
		FontSize:         50,
		VerticalPosition: 50,
		EditorContent:    "",
		DebugMode:        false,
	}
}

// SettingsSource returns the current settings at the time of a pass
type SettingsSource func() Settings

// StaticSettings returns a source that always yields s
func StaticSettings(s Settings) SettingsSource {
	return func() Settings { return s }
}
