package timekeeper

import (
	"errors"
	"fmt"
	"log/slog"

	"pomodoro/internal/core/model"
)

var (
	// ErrUnknownMode indicates a mode outside focus, short and long break.
	ErrUnknownMode = errors.New("unknown timer mode")
	// ErrLongBreakDisabled indicates a switch to a long break while long
	// breaks are turned off.
	ErrLongBreakDisabled = errors.New("long breaks are disabled")
)

// AlarmPlayer plays the alarm sound. Play must not block for the
// duration of the sound.
type AlarmPlayer interface {
	Play(kind AlarmKind) error
}

// Engine is the focus/break state machine. It is not safe for
// concurrent use; a single goroutine owns it (see Runner).
type Engine struct {
	settings      model.Settings
	mode          Mode
	remaining     int
	running       bool
	cycleSessions int
	totalSessions int
	player        AlarmPlayer
	logger        *slog.Logger
	listeners     []func(Event)
}

// New creates an Engine in focus mode with a full, paused countdown.
// A nil player disables alarms; a nil logger uses slog.Default.
func New(settings model.Settings, player AlarmPlayer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	engine := &Engine{
		settings: settings,
		mode:     ModeFocus,
		player:   player,
		logger:   logger,
	}
	engine.remaining = engine.durationFor(ModeFocus)
	return engine
}

// Listen registers an observer. Observers run synchronously on the
// owning goroutine and must not call back into the engine.
func (engine *Engine) Listen(listener func(Event)) {
	engine.listeners = append(engine.listeners, listener)
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	return Snapshot{
		Mode:                   engine.mode,
		Remaining:              engine.remaining,
		Total:                  engine.durationFor(engine.mode),
		Running:                engine.running,
		CycleSessions:          engine.cycleSessions,
		TotalSessions:          engine.totalSessions,
		SessionsUntilLongBreak: engine.settings.SessionsUntilLongBreak,
		LongBreakEnabled:       engine.settings.LongBreakEnabled,
	}
}

// Settings returns the active settings.
func (engine *Engine) Settings() model.Settings {
	return engine.settings
}

// Running reports whether the countdown is live.
func (engine *Engine) Running() bool {
	return engine.running
}

// Start resumes the countdown. A finished countdown cannot be started
// until the mode changes.
func (engine *Engine) Start() {
	if engine.running || engine.remaining == 0 {
		return
	}
	engine.setRunning(true)
	engine.emitStateChange()
}

// Pause freezes the countdown.
func (engine *Engine) Pause() {
	if !engine.running {
		return
	}
	engine.setRunning(false)
	engine.emitStateChange()
}

// Toggle pauses a running countdown and starts a paused one.
func (engine *Engine) Toggle() {
	if engine.running {
		engine.Pause()
		return
	}
	engine.Start()
}

// Tick advances the countdown by one second. Ticks while paused are
// ignored.
func (engine *Engine) Tick() {
	if !engine.running {
		return
	}
	if engine.remaining > 1 {
		engine.remaining--
		engine.emit(EventTick)
		return
	}

	engine.remaining = 0
	engine.setRunning(false)
	engine.requestAlarm(AlarmLong)
	engine.completeInterval()
}

// ResetCurrentMode stops the countdown and refills it for the current
// mode. With clearCycleCount in focus mode the cycle restarts too.
func (engine *Engine) ResetCurrentMode(clearCycleCount bool) {
	engine.setRunning(false)
	engine.remaining = engine.durationFor(engine.mode)
	if clearCycleCount && engine.mode == ModeFocus {
		engine.cycleSessions = 0
	}
	engine.emitStateChange()
}

// ResetAllSessions clears both counters and returns to a paused focus
// countdown, discarding whatever interval was in progress. Auto-start
// does not apply here.
func (engine *Engine) ResetAllSessions() {
	engine.cycleSessions = 0
	engine.totalSessions = 0
	engine.mode = ModeFocus
	engine.setRunning(false)
	engine.remaining = engine.durationFor(ModeFocus)
	engine.emitStateChange()
}

// SkipBreak ends the current break and returns to focus without
// counting anything. Outside breaks it does nothing.
func (engine *Engine) SkipBreak() {
	if !engine.mode.IsBreak() {
		return
	}
	engine.requestAlarm(AlarmShort)
	engine.switchMode(ModeFocus)
}

// TestAlarm requests the short alarm without touching state.
func (engine *Engine) TestAlarm() {
	engine.requestAlarm(AlarmShort)
}

// SwitchMode enters next with a full countdown, auto-starting it when
// the matching setting is on.
func (engine *Engine) SwitchMode(next Mode) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, next)
	}
	if next == ModeLongBreak && !engine.settings.LongBreakEnabled {
		return ErrLongBreakDisabled
	}
	engine.switchMode(next)
	return nil
}

// ApplySettings replaces the active settings. A paused countdown is
// refilled from the new durations; a running one keeps going and is
// only shortened when it no longer fits the new duration.
func (engine *Engine) ApplySettings(settings model.Settings) {
	engine.settings = settings

	if settings.LongBreakEnabled && engine.cycleSessions >= settings.SessionsUntilLongBreak {
		engine.cycleSessions = max(settings.SessionsUntilLongBreak-1, 0)
	}

	total := engine.durationFor(engine.mode)
	if !engine.running {
		engine.remaining = total
	} else if engine.remaining > total {
		engine.remaining = total
	}
	engine.emitStateChange()
}

func (engine *Engine) completeInterval() {
	next := ModeFocus
	if engine.mode == ModeFocus {
		engine.cycleSessions++
		engine.totalSessions++
		if engine.settings.LongBreakEnabled && engine.cycleSessions >= engine.settings.SessionsUntilLongBreak {
			next = ModeLongBreak
			engine.cycleSessions = 0
		} else {
			next = ModeShortBreak
		}
	}
	engine.logger.Debug("interval complete",
		"mode", engine.mode,
		"next", next,
		"cycle_sessions", engine.cycleSessions,
		"total_sessions", engine.totalSessions,
	)
	engine.switchMode(next)
}

func (engine *Engine) switchMode(next Mode) {
	engine.mode = next
	engine.setRunning(false)
	engine.remaining = engine.durationFor(next)
	if engine.autoStart(next) {
		engine.setRunning(true)
	}
	engine.emitStateChange()
}

func (engine *Engine) autoStart(mode Mode) bool {
	if mode.IsBreak() {
		return engine.settings.AutoStartBreaks
	}
	return engine.settings.AutoStartFocus
}

func (engine *Engine) durationFor(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return engine.settings.ShortBreakDuration * 60
	case ModeLongBreak:
		return engine.settings.LongBreakDuration * 60
	default:
		return engine.settings.FocusDuration * 60
	}
}

func (engine *Engine) setRunning(running bool) {
	if engine.running == running {
		return
	}
	engine.running = running
	engine.emit(EventRunning)
}

func (engine *Engine) requestAlarm(kind AlarmKind) {
	engine.emitEvent(Event{Type: EventAlarm, Snapshot: engine.Snapshot(), Alarm: kind})
	if engine.player == nil {
		return
	}
	if err := engine.player.Play(kind); err != nil {
		engine.logger.Warn("alarm playback failed", "kind", kind, "error", err)
	}
}

func (engine *Engine) emitStateChange() {
	engine.emit(EventStateChange)
}

func (engine *Engine) emit(eventType EventType) {
	engine.emitEvent(Event{Type: eventType, Snapshot: engine.Snapshot()})
}

func (engine *Engine) emitEvent(event Event) {
	for _, listener := range engine.listeners {
		listener(event)
	}
}
