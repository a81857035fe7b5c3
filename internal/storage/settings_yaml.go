package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"pomodoro/internal/core/model"

	"gopkg.in/yaml.v3"
)

// SettingsKey is the well-known key the settings blob is stored under.
const SettingsKey = "pomodoroSettings"

// ErrNotFound indicates no value is stored under the key.
var ErrNotFound = errors.New("settings not found")

// Backend stores opaque blobs by key.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Store loads and saves Settings snapshots through a Backend.
type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// NewStore creates a Store using SettingsKey. A nil logger uses
// slog.Default.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, key: SettingsKey, logger: logger}
}

// Load returns the persisted settings merged over the defaults. Absent
// or unreadable snapshots yield the defaults; fields that are missing,
// malformed or out of range keep their default value.
func (store *Store) Load() model.Settings {
	settings := model.DefaultSettings()

	rawData, err := store.backend.Read(store.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			store.logger.Warn("read settings failed, using defaults", "error", err)
		}
		return settings
	}

	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(rawData, &fields); err != nil {
		store.logger.Warn("parse settings failed, using defaults", "error", err)
		return model.DefaultSettings()
	}

	for key, node := range fields {
		if err := applyField(&settings, key, &node); err != nil {
			store.logger.Warn("ignoring persisted setting", "key", key, "error", err)
		}
	}
	return settings
}

// Save writes the full snapshot. Failures are logged and returned; the
// in-memory settings stay authoritative either way.
func (store *Store) Save(settings model.Settings) error {
	serialized, err := yaml.Marshal(settings)
	if err != nil {
		err = fmt.Errorf("marshal settings yaml: %w", err)
		store.logger.Warn("save settings failed", "error", err)
		return err
	}
	if err := store.backend.Write(store.key, serialized); err != nil {
		err = fmt.Errorf("write settings: %w", err)
		store.logger.Warn("save settings failed", "error", err)
		return err
	}
	return nil
}

var errOutOfRange = errors.New("value out of range")

func applyField(settings *model.Settings, key string, node *yaml.Node) error {
	switch key {
	case model.KeyFocusDuration:
		return decodeMinutes(node, &settings.FocusDuration)
	case model.KeyShortBreakDuration:
		return decodeMinutes(node, &settings.ShortBreakDuration)
	case model.KeyLongBreakDuration:
		return decodeMinutes(node, &settings.LongBreakDuration)
	case model.KeySessionsUntilLongBreak:
		return decodeMinutes(node, &settings.SessionsUntilLongBreak)
	case model.KeyLongBreakEnabled:
		return node.Decode(&settings.LongBreakEnabled)
	case model.KeyAutoStartBreaks:
		return node.Decode(&settings.AutoStartBreaks)
	case model.KeyAutoStartFocus:
		return node.Decode(&settings.AutoStartFocus)
	case model.KeyDarkMode:
		return node.Decode(&settings.DarkMode)
	case model.KeyVolume:
		var volume float64
		if err := node.Decode(&volume); err != nil {
			return err
		}
		if volume < 0 || volume > 1 {
			return fmt.Errorf("%w: %v", errOutOfRange, volume)
		}
		settings.Volume = volume
		return nil
	case model.KeyColorTheme:
		var theme model.ColorTheme
		if err := node.Decode(&theme); err != nil {
			return err
		}
		if !theme.Valid() {
			return fmt.Errorf("%w: %q", errOutOfRange, theme)
		}
		settings.ColorTheme = theme
		return nil
	case model.KeyTimerDisplay:
		var display model.TimerDisplay
		if err := node.Decode(&display); err != nil {
			return err
		}
		if !display.Valid() {
			return fmt.Errorf("%w: %q", errOutOfRange, display)
		}
		settings.TimerDisplay = display
		return nil
	default:
		return model.ErrUnknownSetting
	}
}

// decodeMinutes decodes a positive integer; durations and the session
// threshold share the minimum of 1.
func decodeMinutes(node *yaml.Node, field *int) error {
	var value int
	if err := node.Decode(&value); err != nil {
		return err
	}
	if value < 1 {
		return fmt.Errorf("%w: %d", errOutOfRange, value)
	}
	*field = value
	return nil
}
