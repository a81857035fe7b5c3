package tray

import (
	"testing"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/timekeeper"
)

type fakeHost struct {
	menus []*fyne.Menu
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		snapshot timekeeper.Snapshot
		want     string
	}{
		{"paused focus", timekeeper.Snapshot{Mode: timekeeper.ModeFocus, Remaining: 1500}, "Focus 25:00 (paused)"},
		{"running break", timekeeper.Snapshot{Mode: timekeeper.ModeShortBreak, Remaining: 61, Running: true}, "Short Break 01:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.snapshot); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManagerUpdate(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})
	if len(host.menus) != 1 {
		t.Fatalf("menus set = %d, want 1", len(host.menus))
	}
	if !manager.skipItem.Disabled {
		t.Error("skip should be disabled during focus")
	}

	manager.Update(timekeeper.Snapshot{Mode: timekeeper.ModeLongBreak, Remaining: 900, Running: true})
	if manager.skipItem.Disabled {
		t.Error("skip should be enabled during a break")
	}
	if got := manager.toggleItem.Label; got != "Pause" {
		t.Errorf("toggle label = %q", got)
	}
	if got := host.menus[len(host.menus)-1].Items[0].Label; got != "Long Break 15:00" {
		t.Errorf("status item = %q", got)
	}
}

func TestManagerCallbacks(t *testing.T) {
	var calls []string
	record := func(name string) func() { return func() { calls = append(calls, name) } }
	manager := New(&fakeHost{}, Callbacks{
		OnToggle:      record("toggle"),
		OnSkipBreak:   record("skip"),
		OnReset:       record("reset"),
		OnShowTimer:   record("show"),
		OnPreferences: record("prefs"),
		OnQuit:        record("quit"),
	})

	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}
	want := []string{"toggle", "skip", "reset", "show", "prefs", "quit"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}
