// Package clock abstracts the wall clock so the countdown driver can be
// stepped deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock provides the time operations the timer driver needs.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers ticks on C until Stop is called. C has capacity 1;
// ticks are dropped when the consumer falls behind.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. It does not close C and is safe to call
// more than once.
func (ticker *Ticker) Stop() { ticker.stopFunc() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stopFunc: ticker.Stop}
}

// FakeClock is a Clock whose time moves only on Advance. It is safe for
// concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	tickers []*fakeTicker
	changed *sync.Cond
}

type fakeTicker struct {
	deadline time.Time
	interval time.Duration
	channel  chan time.Time
	stopped  bool
}

// Fake returns a FakeClock starting at initial.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.changed = sync.NewCond(&clock.mu)
	return clock
}

// Now returns the current fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

// NewTicker registers a ticker firing every d of fake time. Panics if
// d <= 0, like time.NewTicker.
func (clock *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	clock.mu.Lock()
	defer clock.mu.Unlock()

	waiter := &fakeTicker{
		deadline: clock.current.Add(d),
		interval: d,
		channel:  make(chan time.Time, 1),
	}
	clock.tickers = append(clock.tickers, waiter)
	clock.changed.Broadcast()

	return &Ticker{
		C: waiter.channel,
		stopFunc: func() {
			clock.mu.Lock()
			defer clock.mu.Unlock()
			if !waiter.stopped {
				waiter.stopped = true
				clock.changed.Broadcast()
			}
		},
	}
}

// Advance moves time forward by d, firing every ticker once per elapsed
// interval in deadline order. Sends never block.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.current = clock.current.Add(d)
	target := clock.current

	for {
		var due []*fakeTicker
		for _, waiter := range clock.tickers {
			if !waiter.stopped && !waiter.deadline.After(target) {
				due = append(due, waiter)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, waiter := range due {
			select {
			case waiter.channel <- waiter.deadline:
			default:
			}
			waiter.deadline = waiter.deadline.Add(waiter.interval)
		}
	}

	live := clock.tickers[:0]
	for _, waiter := range clock.tickers {
		if !waiter.stopped {
			live = append(live, waiter)
		}
	}
	clock.tickers = live
	clock.mu.Unlock()
}

// ActiveTickers returns the number of tickers not yet stopped.
func (clock *FakeClock) ActiveTickers() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.activeLocked()
}

// WaitForTickers blocks until exactly n tickers are active. It removes
// the race between a goroutine arming a ticker and the test advancing
// the clock.
func (clock *FakeClock) WaitForTickers(n int) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for clock.activeLocked() != n {
		clock.changed.Wait()
	}
}

func (clock *FakeClock) activeLocked() int {
	count := 0
	for _, waiter := range clock.tickers {
		if !waiter.stopped {
			count++
		}
	}
	return count
}
