package animation

import (
	"time"

	"pomodoro/internal/core/timekeeper"
)

// Pattern returns the flash sequence matching an alarm kind. The timing
// follows the audible pattern.
func Pattern(kind timekeeper.AlarmKind) []Step {
	if kind == timekeeper.AlarmLong {
		steps := make([]Step, 0, 6)
		for i := 0; i < 3; i++ {
			steps = append(steps,
				Step{Highlight: true, Duration: 500 * time.Millisecond},
				Step{Highlight: false, Duration: 300 * time.Millisecond},
			)
		}
		return steps
	}
	return []Step{{Highlight: true, Duration: 600 * time.Millisecond}}
}
