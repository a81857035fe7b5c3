// Package app wires settings edits through persistence, the running timer
// and the audio player.
package app

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"pomodoro/internal/core/model"
)

// SettingsStore persists settings snapshots.
type SettingsStore interface {
	Save(settings model.Settings) error
}

// Timer receives replaced settings.
type Timer interface {
	ApplySettings(settings model.Settings) error
}

// VolumeControl receives the alarm volume.
type VolumeControl interface {
	SetVolume(volume float64)
}

// Controller owns the current settings. Every edit is persisted, then
// handed to the timer and the audio player, then announced to observers.
type Controller struct {
	store  SettingsStore
	timer  Timer
	volume VolumeControl
	logger *slog.Logger

	// pipeline is held from commit until observers ran, so edits reach the
	// store and the timer in the order they were committed.
	pipeline sync.Mutex

	mu        sync.Mutex
	settings  model.Settings
	observers []func(model.Settings)
}

// New creates a Controller starting from initial. volume may be nil. A nil
// logger uses slog.Default.
func New(initial model.Settings, store SettingsStore, timer Timer, volume VolumeControl, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		timer:    timer,
		volume:   volume,
		logger:   logger,
		settings: initial,
	}
}

// Settings returns the current snapshot.
func (controller *Controller) Settings() model.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.settings
}

// OnChange registers an observer called with every new snapshot.
func (controller *Controller) OnChange(observer func(model.Settings)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.observers = append(controller.observers, observer)
}

// ChangeSetting replaces one field. Invalid keys and mistyped values are
// rejected before anything is saved.
func (controller *Controller) ChangeSetting(key string, value any) (model.Settings, error) {
	controller.pipeline.Lock()
	defer controller.pipeline.Unlock()
	return controller.change(key, value)
}

// ReplaceSettings swaps in a whole snapshot.
func (controller *Controller) ReplaceSettings(settings model.Settings) {
	controller.pipeline.Lock()
	defer controller.pipeline.Unlock()

	controller.commit(settings)
	controller.propagate(settings)
}

// Step adds delta to a numeric setting, clamped to its minimum.
func (controller *Controller) Step(key string, delta int) (model.Settings, error) {
	controller.pipeline.Lock()
	defer controller.pipeline.Unlock()

	current, ok := intSetting(controller.Settings(), key)
	if !ok {
		return controller.Settings(), fmt.Errorf("step %s: %w", key, model.ErrSettingType)
	}
	next := current + delta
	if minimum := MinimumFor(key); next < minimum {
		next = minimum
	}
	return controller.change(key, next)
}

// change runs one edit. The caller holds pipeline.
func (controller *Controller) change(key string, value any) (model.Settings, error) {
	current := controller.Settings()
	next, err := current.Update(key, value)
	if err != nil {
		return current, fmt.Errorf("change %s: %w", key, err)
	}
	controller.commit(next)

	controller.logger.Debug("setting changed", "key", key, "value", value)
	controller.propagate(next)
	return next, nil
}

func (controller *Controller) commit(settings model.Settings) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.settings = settings
}

func (controller *Controller) propagate(settings model.Settings) {
	// Save failures are logged by the store; memory stays authoritative.
	_ = controller.store.Save(settings)

	if err := controller.timer.ApplySettings(settings); err != nil {
		controller.logger.Warn("apply settings to timer failed", "error", err)
	}
	if controller.volume != nil {
		controller.volume.SetVolume(settings.Volume)
	}

	controller.mu.Lock()
	observers := slices.Clone(controller.observers)
	controller.mu.Unlock()
	for _, observer := range observers {
		observer(settings)
	}
}

// MinimumFor returns the lowest value the editor accepts for key.
func MinimumFor(key string) int {
	switch key {
	case model.KeyFocusDuration, model.KeyShortBreakDuration, model.KeyLongBreakDuration, model.KeySessionsUntilLongBreak:
		return 1
	}
	return 0
}

// ClampNumeric parses raw editor input. Non-numeric input and values
// below the key's minimum yield the minimum.
func ClampNumeric(key string, raw string) int {
	minimum := MinimumFor(key)
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < minimum {
		return minimum
	}
	return value
}

func intSetting(settings model.Settings, key string) (int, bool) {
	switch key {
	case model.KeyFocusDuration:
		return settings.FocusDuration, true
	case model.KeyShortBreakDuration:
		return settings.ShortBreakDuration, true
	case model.KeyLongBreakDuration:
		return settings.LongBreakDuration, true
	case model.KeySessionsUntilLongBreak:
		return settings.SessionsUntilLongBreak, true
	}
	return 0, false
}
