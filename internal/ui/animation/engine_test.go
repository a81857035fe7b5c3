package animation

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/timekeeper"
)

type recorder struct {
	mu     sync.Mutex
	states []bool
}

func (rec *recorder) update(highlight bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.states = append(rec.states, highlight)
}

func (rec *recorder) snapshot() []bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]bool(nil), rec.states...)
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sequence did not finish")
	}
}

func TestEnginePlaysSteps(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.update)

	done := engine.Start(context.Background(), []Step{
		{Highlight: true, Duration: time.Millisecond},
		{Highlight: false, Duration: time.Millisecond},
		{Highlight: true, Duration: time.Millisecond},
	})
	wait(t, done)

	got := rec.snapshot()
	want := []bool{true, false, true, false}
	if len(got) != len(want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("states = %v, want %v", got, want)
		}
	}
}

func TestEngineStopEndsUnhighlighted(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.update)

	done := engine.Start(context.Background(), []Step{{Highlight: true, Duration: time.Hour}})
	engine.Stop()
	wait(t, done)

	states := rec.snapshot()
	if len(states) == 0 || states[len(states)-1] {
		t.Fatalf("states = %v, want to end with false", states)
	}
}

func TestEngineRestartCancelsPrevious(t *testing.T) {
	rec := &recorder{}
	engine := New(rec.update)

	first := engine.Start(context.Background(), []Step{{Highlight: true, Duration: time.Hour}})
	second := engine.Start(context.Background(), []Step{{Highlight: true, Duration: time.Millisecond}})
	wait(t, first)
	wait(t, second)

	want := []bool{true, false, true, false}
	if got := rec.snapshot(); !slices.Equal(got, want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
}

func TestPattern(t *testing.T) {
	total := func(steps []Step) time.Duration {
		var sum time.Duration
		for _, step := range steps {
			sum += step.Duration
		}
		return sum
	}

	if got := total(Pattern(timekeeper.AlarmShort)); got != 600*time.Millisecond {
		t.Errorf("short pattern lasts %v", got)
	}
	long := Pattern(timekeeper.AlarmLong)
	if got := total(long); got != 2400*time.Millisecond {
		t.Errorf("long pattern lasts %v", got)
	}
	if len(long) != 6 || !long[0].Highlight || long[1].Highlight {
		t.Errorf("long pattern = %+v", long)
	}
}
