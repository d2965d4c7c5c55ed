package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds the persisted viewer settings
type Settings struct {
	// Theme selects the color preset, "dark" or "light"
	// Default: "dark"
	Theme string `json:"theme"`

	// SearchMinScore is the fuzzy-match score threshold for transcript search
	// Default: ScoreThresholdNormal
	SearchMinScore int `json:"searchMinScore,omitempty"`
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		Theme:          "dark",
		SearchMinScore: ScoreThresholdNormal,
	}
}

// LoadSettings loads the settings from the config directory
func LoadSettings(configDir string) (*Settings, error) {
	settingsPath := filepath.Join(configDir, "settings.json")

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.Theme != "dark" && settings.Theme != "light" {
		settings.Theme = "dark"
	}
	if settings.SearchMinScore == 0 {
		settings.SearchMinScore = ScoreThresholdNormal
	}

	return settings, nil
}

// SaveSettings saves the settings to the config directory
func SaveSettings(configDir string, settings *Settings) error {
	settingsPath := filepath.Join(configDir, "settings.json")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(settingsPath, data, 0644)
}
