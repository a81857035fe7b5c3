// Package display turns timer snapshots and settings into the strings and
// ratios the UI renders.
package display

import (
	"fmt"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// AppName is appended to the window title.
const AppName = "Pomodoro"

// Clock formats seconds as zero-padded MM:SS. Minutes are not wrapped at
// the hour, so 90 minutes reads "90:00".
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ModeLabel returns the human-readable name of a mode.
func ModeLabel(mode timekeeper.Mode) string {
	switch mode {
	case timekeeper.ModeShortBreak:
		return "Short Break"
	case timekeeper.ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

// Title is the window title, e.g. "24:59 - Focus | Pomodoro".
func Title(snapshot timekeeper.Snapshot) string {
	return fmt.Sprintf("%s - %s | %s", Clock(snapshot.Remaining), ModeLabel(snapshot.Mode), AppName)
}

// Progress is the remaining fraction of the current interval in [0, 1].
func Progress(snapshot timekeeper.Snapshot) float64 {
	if snapshot.Total <= 0 {
		return 0
	}
	ratio := float64(snapshot.Remaining) / float64(snapshot.Total)
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	}
	return ratio
}

// SessionCounter shows the position in the long-break cycle when long
// breaks are on, and the running total otherwise.
func SessionCounter(snapshot timekeeper.Snapshot) string {
	if snapshot.LongBreakEnabled {
		return fmt.Sprintf("Session %d / %d | Completed: %d",
			snapshot.CycleSessions+1, snapshot.SessionsUntilLongBreak, snapshot.TotalSessions)
	}
	return fmt.Sprintf("Session %d | Completed: %d", snapshot.TotalSessions+1, snapshot.TotalSessions)
}

// ThemeName lists the style classes for settings. The red theme is the
// base style and adds no class.
func ThemeName(settings model.Settings) []string {
	var classes []string
	if settings.ColorTheme != "" && settings.ColorTheme != model.ThemeRed {
		classes = append(classes, "theme-"+string(settings.ColorTheme))
	}
	if settings.DarkMode {
		classes = append(classes, "dark-mode")
	}
	return classes
}

// SkipVisible reports whether the skip-break control applies.
func SkipVisible(snapshot timekeeper.Snapshot) bool {
	return snapshot.Mode.IsBreak()
}

// StartLabel is the caption of the start/pause control.
func StartLabel(snapshot timekeeper.Snapshot) string {
	if snapshot.Running {
		return "Pause"
	}
	return "Start"
}
