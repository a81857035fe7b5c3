package timekeeper

// Mode represents the current interval kind.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Valid reports whether mode is one of the three interval kinds.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// AlarmKind selects the alarm variant requested from the audio player.
type AlarmKind string

const (
	// AlarmShort is the brief notification used for skips and tests.
	AlarmShort AlarmKind = "short"
	// AlarmLong is played when a countdown completes.
	AlarmLong AlarmKind = "long"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventRunning     EventType = "running"
	EventAlarm       EventType = "alarm"
)

// Snapshot is a consistent read-only view of the timer state.
type Snapshot struct {
	Mode                   Mode
	Remaining              int
	Total                  int
	Running                bool
	CycleSessions          int
	TotalSessions          int
	SessionsUntilLongBreak int
	LongBreakEnabled       bool
}

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Alarm    AlarmKind
}
