// ABOUTME: Persistent connection settings for the sheet webhook
// ABOUTME: Stores endpoint URLs as JSON under the XDG data directory
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName is the application name used for data paths.
	AppName = "cardsnap"

	// SettingsFileName is where connection settings are stored.
	SettingsFileName = "settings.json"
)

// Settings holds the user-configured persistence endpoints. Presence is
// the only validation applied to either URL.
type Settings struct {
	// WebhookURL is the Apps Script web app endpoint records are sent to.
	WebhookURL string `json:"webhook_url,omitempty"`

	// SheetViewURL is an optional link to the spreadsheet for viewing.
	SheetViewURL string `json:"sheet_view_url,omitempty"`
}

// Connected reports whether a webhook endpoint has been configured.
func (s *Settings) Connected() bool {
	return s.WebhookURL != ""
}

// SettingsPath returns the default settings file location.
func SettingsPath() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, SettingsFileName), nil
}

// DefaultDatabasePath returns the default capture history database location.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, "captures.db")
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		// Can't determine settings path, start unconfigured
		return &Settings{}, nil //nolint:nilerr // Intentionally returning defaults on path error
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit path, returning empty settings
// when the file does not exist or does not parse.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		// Invalid settings file, start unconfigured
		return &Settings{}, nil //nolint:nilerr // Intentionally returning defaults on parse error
	}

	return &s, nil
}

// Save persists settings to the default location.
func (s *Settings) Save() error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo persists settings to an explicit path.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetWebhookURL sets the webhook endpoint and saves.
func (s *Settings) SetWebhookURL(url string) error {
	s.WebhookURL = url
	return s.Save()
}

// SetSheetViewURL sets the spreadsheet view link and saves.
func (s *Settings) SetSheetViewURL(url string) error {
	s.SheetViewURL = url
	return s.Save()
}
