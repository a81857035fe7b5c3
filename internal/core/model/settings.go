package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSetting indicates the key does not name a Settings field.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrSettingType indicates the value does not have the field's type.
	ErrSettingType = errors.New("setting value has wrong type")
)

// ColorTheme selects the accent palette.
type ColorTheme string

const (
	ThemeRed    ColorTheme = "red"
	ThemeBlue   ColorTheme = "blue"
	ThemeGreen  ColorTheme = "green"
	ThemePurple ColorTheme = "purple"
)

// ColorThemes lists the available themes in display order.
var ColorThemes = []ColorTheme{ThemeRed, ThemeBlue, ThemeGreen, ThemePurple}

// Valid reports whether theme is one of the known palettes.
func (theme ColorTheme) Valid() bool {
	switch theme {
	case ThemeRed, ThemeBlue, ThemeGreen, ThemePurple:
		return true
	}
	return false
}

// TimerDisplay selects how the countdown progress is drawn.
type TimerDisplay string

const (
	DisplayLinear   TimerDisplay = "linear"
	DisplayCircular TimerDisplay = "circular"
)

// TimerDisplays lists the available display styles.
var TimerDisplays = []TimerDisplay{DisplayLinear, DisplayCircular}

// Valid reports whether display is a known style.
func (display TimerDisplay) Valid() bool {
	return display == DisplayLinear || display == DisplayCircular
}

// Setting keys, shared by Update, the editor and the persisted blob.
const (
	KeyFocusDuration          = "focusDuration"
	KeyShortBreakDuration     = "shortBreakDuration"
	KeyLongBreakDuration      = "longBreakDuration"
	KeySessionsUntilLongBreak = "sessionsUntilLongBreak"
	KeyLongBreakEnabled       = "longBreakEnabled"
	KeyAutoStartBreaks        = "autoStartBreaks"
	KeyAutoStartFocus         = "autoStartFocus"
	KeyVolume                 = "volume"
	KeyColorTheme             = "colorTheme"
	KeyTimerDisplay           = "timerDisplay"
	KeyDarkMode               = "darkMode"
)

// Settings is an immutable snapshot of user preferences. Durations are
// whole minutes.
type Settings struct {
	FocusDuration          int          `yaml:"focusDuration"`
	ShortBreakDuration     int          `yaml:"shortBreakDuration"`
	LongBreakDuration      int          `yaml:"longBreakDuration"`
	SessionsUntilLongBreak int          `yaml:"sessionsUntilLongBreak"`
	LongBreakEnabled       bool         `yaml:"longBreakEnabled"`
	AutoStartBreaks        bool         `yaml:"autoStartBreaks"`
	AutoStartFocus         bool         `yaml:"autoStartFocus"`
	Volume                 float64      `yaml:"volume"`
	ColorTheme             ColorTheme   `yaml:"colorTheme"`
	TimerDisplay           TimerDisplay `yaml:"timerDisplay"`
	DarkMode               bool         `yaml:"darkMode"`
}

// DefaultSettings returns the settings used when nothing was persisted.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:          25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
		LongBreakEnabled:       true,
		AutoStartBreaks:        false,
		AutoStartFocus:         false,
		Volume:                 0.5,
		ColorTheme:             ThemeRed,
		TimerDisplay:           DisplayLinear,
		DarkMode:               false,
	}
}

// Update returns a copy of settings with the field named by key set to
// value. Values are stored as given; range checks belong to the editor.
func (settings Settings) Update(key string, value any) (Settings, error) {
	var err error
	switch key {
	case KeyFocusDuration:
		err = setInt(&settings.FocusDuration, key, value)
	case KeyShortBreakDuration:
		err = setInt(&settings.ShortBreakDuration, key, value)
	case KeyLongBreakDuration:
		err = setInt(&settings.LongBreakDuration, key, value)
	case KeySessionsUntilLongBreak:
		err = setInt(&settings.SessionsUntilLongBreak, key, value)
	case KeyLongBreakEnabled:
		err = setBool(&settings.LongBreakEnabled, key, value)
	case KeyAutoStartBreaks:
		err = setBool(&settings.AutoStartBreaks, key, value)
	case KeyAutoStartFocus:
		err = setBool(&settings.AutoStartFocus, key, value)
	case KeyDarkMode:
		err = setBool(&settings.DarkMode, key, value)
	case KeyVolume:
		switch typed := value.(type) {
		case float64:
			settings.Volume = typed
		case float32:
			settings.Volume = float64(typed)
		default:
			err = typeError(key, value)
		}
	case KeyColorTheme:
		switch typed := value.(type) {
		case ColorTheme:
			settings.ColorTheme = typed
		case string:
			settings.ColorTheme = ColorTheme(typed)
		default:
			err = typeError(key, value)
		}
	case KeyTimerDisplay:
		switch typed := value.(type) {
		case TimerDisplay:
			settings.TimerDisplay = typed
		case string:
			settings.TimerDisplay = TimerDisplay(typed)
		default:
			err = typeError(key, value)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return settings, err
}

func setInt(field *int, key string, value any) error {
	typed, ok := value.(int)
	if !ok {
		return typeError(key, value)
	}
	*field = typed
	return nil
}

func setBool(field *bool, key string, value any) error {
	typed, ok := value.(bool)
	if !ok {
		return typeError(key, value)
	}
	*field = typed
	return nil
}

func typeError(key string, value any) error {
	return fmt.Errorf("%w: %s got %T", ErrSettingType, key, value)
}
