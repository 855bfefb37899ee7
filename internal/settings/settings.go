// Package settings persists user preferences as JSON under ~/.autocommit.
// Loading always merges the file over the defaults, so adding a new setting
// never breaks an existing file.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/autocommit/autocommit-go/internal/analyzer"
)

// Model selection tokens.
const (
	ModelAuto      = "auto"
	ModelRuleBased = "rule-based"
	ModelOpenAI    = "openai"
	ModelGemini    = "gemini"
)

// Settings holds every user-tunable preference.
type Settings struct {
	Style               string `json:"style"`
	Model               string `json:"model"`
	UseCache            bool   `json:"use_cache"`
	AutoStage           bool   `json:"auto_stage"`
	AutoPush            bool   `json:"auto_push"`
	MaxDiffForRules     int    `json:"max_diff_for_rules"`
	ShowDiffPreview     bool   `json:"show_diff_preview"`
	ConfirmBeforeCommit bool   `json:"confirm_before_commit"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		Style:               analyzer.StyleConventional,
		Model:               ModelAuto,
		UseCache:            true,
		AutoStage:           true,
		AutoPush:            false,
		MaxDiffForRules:     5000,
		ShowDiffPreview:     false,
		ConfirmBeforeCommit: true,
	}
}

// DefaultPath returns ~/.autocommit/settings.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".autocommit", "settings.json"), nil
}

// Store reads and writes a settings file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the settings file merged over defaults. A missing or corrupt
// file yields the defaults without error.
func (s *Store) Load() Settings {
	settings := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return Default()
	}
	return settings
}

// Save writes the settings file, creating the directory if needed.
func (s *Store) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Reset restores the defaults on disk.
func (s *Store) Reset() error {
	return s.Save(Default())
}

// Set parses and applies a single key=value update, then persists it.
// Unknown keys and invalid values are rejected.
func (s *Store) Set(key, value string) error {
	settings := s.Load()

	switch key {
	case "style":
		if !analyzer.ValidStyle(value) {
			return fmt.Errorf("invalid style %q (valid: conventional, short, verbose)", value)
		}
		settings.Style = value
	case "model":
		switch value {
		case ModelAuto, ModelRuleBased, ModelOpenAI, ModelGemini:
			settings.Model = value
		default:
			return fmt.Errorf("invalid model %q (valid: auto, rule-based, openai, gemini)", value)
		}
	case "use_cache":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("use_cache must be a boolean: %w", err)
		}
		settings.UseCache = b
	case "auto_stage":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_stage must be a boolean: %w", err)
		}
		settings.AutoStage = b
	case "auto_push":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_push must be a boolean: %w", err)
		}
		settings.AutoPush = b
	case "max_diff_for_rules":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("max_diff_for_rules must be a non-negative integer")
		}
		settings.MaxDiffForRules = n
	case "show_diff_preview":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show_diff_preview must be a boolean: %w", err)
		}
		settings.ShowDiffPreview = b
	case "confirm_before_commit":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("confirm_before_commit must be a boolean: %w", err)
		}
		settings.ConfirmBeforeCommit = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return s.Save(settings)
}

// Get returns the display value for a single key.
func (s *Store) Get(key string) (string, error) {
	settings := s.Load()

	switch key {
	case "style":
		return settings.Style, nil
	case "model":
		return settings.Model, nil
	case "use_cache":
		return strconv.FormatBool(settings.UseCache), nil
	case "auto_stage":
		return strconv.FormatBool(settings.AutoStage), nil
	case "auto_push":
		return strconv.FormatBool(settings.AutoPush), nil
	case "max_diff_for_rules":
		return strconv.Itoa(settings.MaxDiffForRules), nil
	case "show_diff_preview":
		return strconv.FormatBool(settings.ShowDiffPreview), nil
	case "confirm_before_commit":
		return strconv.FormatBool(settings.ConfirmBeforeCommit), nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// Keys lists the setting names in display order.
func Keys() []string {
	return []string{
		"style",
		"model",
		"use_cache",
		"auto_stage",
		"auto_push",
		"max_diff_for_rules",
		"show_diff_preview",
		"confirm_before_commit",
	}
}
