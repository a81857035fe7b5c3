package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func drain(channel <-chan time.Time) int {
	count := 0
	for {
		select {
		case <-channel:
			count++
		default:
			return count
		}
	}
}

func TestFakeNowAdvances(t *testing.T) {
	clock := Fake(epoch)
	clock.Advance(5 * time.Second)
	if got, want := clock.Now(), epoch.Add(5*time.Second); !got.Equal(want) {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)

	clock.Advance(500 * time.Millisecond)
	if n := drain(ticker.C); n != 0 {
		t.Fatalf("ticker fired %d times before its interval", n)
	}

	clock.Advance(500 * time.Millisecond)
	if n := drain(ticker.C); n != 1 {
		t.Fatalf("ticker fired %d times, want 1", n)
	}

	// Capacity 1: a long advance delivers a single buffered tick.
	clock.Advance(3 * time.Second)
	if n := drain(ticker.C); n != 1 {
		t.Fatalf("ticker delivered %d ticks after overflow, want 1", n)
	}
}

func TestFakeTickerStop(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	if n := clock.ActiveTickers(); n != 1 {
		t.Fatalf("ActiveTickers() = %d, want 1", n)
	}

	ticker.Stop()
	ticker.Stop()
	if n := clock.ActiveTickers(); n != 0 {
		t.Fatalf("ActiveTickers() after Stop = %d, want 0", n)
	}

	clock.Advance(2 * time.Second)
	if n := drain(ticker.C); n != 0 {
		t.Fatalf("stopped ticker fired %d times", n)
	}
}

func TestFakeWaitForTickers(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})
	go func() {
		clock.WaitForTickers(1)
		close(done)
	}()

	clock.NewTicker(time.Second)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForTickers did not return")
	}
}

func TestFakeNewTickerPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Fake(epoch).NewTicker(0)
}
