package timekeeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/clock"
	"pomodoro/internal/core/model"
)

// ErrStopped is returned by Runner commands once Run has returned.
var ErrStopped = errors.New("timer runner stopped")

// Config contains runtime options for Runner.
type Config struct {
	TickInterval time.Duration
	Logger       *slog.Logger
}

type command struct {
	apply func(*Engine)
	reply chan struct{}
}

// Runner owns an Engine and drives it from a single goroutine. Commands
// from any goroutine are queued and executed in order between ticks. The
// ticker is armed while the engine runs and disarmed otherwise, so at
// most one ticker is ever live.
type Runner struct {
	engine   *Engine
	clock    clock.Clock
	options  Config
	logger   *slog.Logger
	commands chan command
	done     chan struct{}
	stopOnce sync.Once

	// ticker is only touched by the Run goroutine.
	ticker *clock.Ticker

	mu     sync.Mutex
	events []chan Event
	closed bool
}

// NewRunner wraps engine. The engine must not be used directly afterwards.
func NewRunner(engine *Engine, clk clock.Clock, options Config) *Runner {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runner := &Runner{
		engine:   engine,
		clock:    clk,
		options:  options,
		logger:   logger,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
	engine.Listen(runner.handleEvent)
	return runner
}

// Subscribe registers a new observer channel. Events are dropped for
// subscribers whose buffer is full. Channels are closed when Run returns.
func (runner *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		close(ch)
		return ch
	}
	runner.events = append(runner.events, ch)
	return ch
}

// Run executes commands and ticks until ctx is cancelled. It must be
// called exactly once.
func (runner *Runner) Run(ctx context.Context) error {
	defer runner.shutdown()

	if runner.engine.Running() {
		runner.arm()
	}

	for {
		var ticks <-chan time.Time
		if runner.ticker != nil {
			ticks = runner.ticker.C
		}

		select {
		case <-ctx.Done():
			return nil
		case cmd := <-runner.commands:
			cmd.apply(runner.engine)
			close(cmd.reply)
		case <-ticks:
			runner.engine.Tick()
		}
	}
}

// Start resumes the countdown.
func (runner *Runner) Start() error {
	return runner.do(func(engine *Engine) { engine.Start() })
}

// Pause freezes the countdown.
func (runner *Runner) Pause() error {
	return runner.do(func(engine *Engine) { engine.Pause() })
}

// Toggle flips between running and paused.
func (runner *Runner) Toggle() error {
	return runner.do(func(engine *Engine) { engine.Toggle() })
}

// ResetCurrentMode refills the current countdown.
func (runner *Runner) ResetCurrentMode(clearCycleCount bool) error {
	return runner.do(func(engine *Engine) { engine.ResetCurrentMode(clearCycleCount) })
}

// ResetAllSessions clears the counters and returns to focus.
func (runner *Runner) ResetAllSessions() error {
	return runner.do(func(engine *Engine) { engine.ResetAllSessions() })
}

// SkipBreak ends the current break.
func (runner *Runner) SkipBreak() error {
	return runner.do(func(engine *Engine) { engine.SkipBreak() })
}

// TestAlarm plays the short alarm.
func (runner *Runner) TestAlarm() error {
	return runner.do(func(engine *Engine) { engine.TestAlarm() })
}

// SwitchMode enters the given mode.
func (runner *Runner) SwitchMode(mode Mode) error {
	var switchErr error
	if err := runner.do(func(engine *Engine) { switchErr = engine.SwitchMode(mode) }); err != nil {
		return err
	}
	return switchErr
}

// ApplySettings hands new settings to the engine.
func (runner *Runner) ApplySettings(settings model.Settings) error {
	return runner.do(func(engine *Engine) { engine.ApplySettings(settings) })
}

// Snapshot returns the engine state as seen by the Run goroutine.
func (runner *Runner) Snapshot() (Snapshot, error) {
	var snapshot Snapshot
	err := runner.do(func(engine *Engine) { snapshot = engine.Snapshot() })
	return snapshot, err
}

func (runner *Runner) do(apply func(*Engine)) error {
	cmd := command{apply: apply, reply: make(chan struct{})}
	select {
	case runner.commands <- cmd:
	case <-runner.done:
		return ErrStopped
	}
	select {
	case <-cmd.reply:
		return nil
	case <-runner.done:
		return ErrStopped
	}
}

// handleEvent runs on the Run goroutine, inside engine calls.
func (runner *Runner) handleEvent(event Event) {
	if event.Type == EventRunning {
		if event.Snapshot.Running {
			runner.arm()
		} else {
			runner.disarm()
		}
	}

	runner.mu.Lock()
	events := append([]chan Event(nil), runner.events...)
	runner.mu.Unlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (runner *Runner) arm() {
	runner.disarm()
	runner.ticker = runner.clock.NewTicker(runner.options.TickInterval)
	runner.logger.Debug("ticker armed", "interval", runner.options.TickInterval)
}

func (runner *Runner) disarm() {
	if runner.ticker == nil {
		return
	}
	runner.ticker.Stop()
	runner.ticker = nil
	runner.logger.Debug("ticker disarmed")
}

func (runner *Runner) shutdown() {
	runner.stopOnce.Do(func() {
		runner.disarm()
		close(runner.done)

		runner.mu.Lock()
		events := runner.events
		runner.events = nil
		runner.closed = true
		runner.mu.Unlock()

		for _, ch := range events {
			close(ch)
		}
	})
}
