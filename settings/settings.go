package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/darbotlabs/yumlog-manager/recordings"
	"github.com/goccy/go-json"
)

const (
	// DefaultConfigDir is the settings directory relative to the user home
	DefaultConfigDir = ".config/yumlog-manager"
	// FileName is the name of the settings file
	FileName = "settings.json"
	// DefaultAddress the manager listens on
	DefaultAddress = "localhost:8800"
	// DefaultName displayed as the page title
	DefaultName = "Yumlog Manager"
)

// ErrEmptyAddress the listen address is required
var ErrEmptyAddress = errors.New("settings: empty address")

// Page values prefilled on the control page
type Page struct {
	Record        command.RecordParams `json:"record"`
	RecordingsDir string               `json:"recordingsDir"`
}

// Settings of the manager process
type Settings struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Silence bool   `json:"silence"`
	Page    Page   `json:"page"`
}

// Default returns the settings used when no file exists
func Default() Settings {
	return Settings{
		Address: DefaultAddress,
		Name:    DefaultName,
		Page:    DefaultPage(),
	}
}

// DefaultPage returns the stock form values
func DefaultPage() Page {
	return Page{
		Record:        command.DefaultRecordParams(),
		RecordingsDir: recordings.DefaultDir,
	}
}

// Path returns the settings file location
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultConfigDir, FileName)
	}
	return filepath.Join(home, DefaultConfigDir, FileName)
}

// fill replaces empty values with their defaults
func (s *Settings) fill() {
	def := Default()
	if s.Address == "" {
		s.Address = def.Address
	}
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.Page.Record.FPS == "" {
		s.Page.Record.FPS = def.Page.Record.FPS
	}
	if s.Page.Record.DurationSec == "" {
		s.Page.Record.DurationSec = def.Page.Record.DurationSec
	}
	if s.Page.Record.OutFile == "" {
		s.Page.Record.OutFile = def.Page.Record.OutFile
	}
	if s.Page.RecordingsDir == "" {
		s.Page.RecordingsDir = def.Page.RecordingsDir
	}
}

// Load reads the settings at path, a missing file yields the defaults
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: decode %s: %w", path, err)
	}
	s.fill()
	return s, nil
}

// Save writes the settings to path, creating its directory
func Save(path string, s Settings) error {
	if s.Address == "" {
		return ErrEmptyAddress
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
