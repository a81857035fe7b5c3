// Package animation sequences the highlight flashes shown while an alarm
// sounds.
package animation

import (
	"context"
	"sync"
	"time"
)

// Step is one segment of a flash sequence.
type Step struct {
	Highlight bool
	Duration  time.Duration
}

// Engine plays flash sequences through an update callback. Starting a new
// sequence cancels the running one.
type Engine struct {
	mu     sync.Mutex
	update func(highlight bool)
	cancel context.CancelFunc
	done   <-chan struct{}
}

// New creates a new animation engine.
func New(update func(highlight bool)) *Engine {
	return &Engine{update: update}
}

// Start plays steps and always ends with the highlight off. The returned
// channel is closed once the sequence finished or was cancelled. A
// cancelled sequence finishes its updates before the new one begins.
func (engine *Engine) Start(ctx context.Context, steps []Step) <-chan struct{} {
	done := make(chan struct{})

	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	previous := engine.done
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		if previous != nil {
			<-previous
		}
		defer engine.update(false)
		for _, step := range steps {
			engine.update(step.Highlight)
			if !sleepWithContext(runCtx, step.Duration) {
				return
			}
		}
	}()
	return done
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
