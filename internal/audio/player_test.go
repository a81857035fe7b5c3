package audio

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/gopxl/beep"

	"pomodoro/internal/core/timekeeper"
)

type fakeOutput struct {
	initErr   error
	initCalls int
	clears    int
	played    []beep.Streamer
}

func (output *fakeOutput) Init(beep.SampleRate, int) error {
	output.initCalls++
	return output.initErr
}

func (output *fakeOutput) Clear() { output.clears++ }

func (output *fakeOutput) Play(streamer beep.Streamer) {
	output.played = append(output.played, streamer)
}

// drain returns every sample of streamer's left channel.
func drain(streamer beep.Streamer) []float64 {
	var samples []float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(chunk)
		for i := 0; i < n; i++ {
			samples = append(samples, chunk[i][0])
		}
		if !ok {
			return samples
		}
	}
}

func newTestPlayer(output Output, volume float64) *Player {
	return NewPlayer(output, volume, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPlayLengths(t *testing.T) {
	tests := []struct {
		kind timekeeper.AlarmKind
		want int
	}{
		{timekeeper.AlarmShort, 26460},
		{timekeeper.AlarmLong, 3 * (22050 + 13230)},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			output := &fakeOutput{}
			player := newTestPlayer(output, 0.5)
			if err := player.Play(tt.kind); err != nil {
				t.Fatalf("Play error: %v", err)
			}
			if len(output.played) != 1 {
				t.Fatalf("played %d streamers, want 1", len(output.played))
			}
			if got := len(drain(output.played[0])); got != tt.want {
				t.Fatalf("samples = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlayVolumeScalesAmplitude(t *testing.T) {
	output := &fakeOutput{}
	player := newTestPlayer(output, 0.25)
	if err := player.Play(timekeeper.AlarmShort); err != nil {
		t.Fatalf("Play error: %v", err)
	}

	peak := 0.0
	for _, sample := range drain(output.played[0]) {
		peak = math.Max(peak, math.Abs(sample))
	}
	if peak > 0.25+1e-3 || peak < 0.2 {
		t.Fatalf("peak amplitude = %v, want about 0.25", peak)
	}
}

func TestLongPatternHasGaps(t *testing.T) {
	output := &fakeOutput{}
	player := newTestPlayer(output, 1)
	if err := player.Play(timekeeper.AlarmLong); err != nil {
		t.Fatalf("Play error: %v", err)
	}

	samples := drain(output.played[0])
	for i := 22050; i < 22050+13230; i++ {
		if samples[i] != 0 {
			t.Fatalf("sample %d = %v inside the first gap", i, samples[i])
		}
	}
}

func TestPlayMutedDoesNothing(t *testing.T) {
	output := &fakeOutput{}
	player := newTestPlayer(output, 0)
	if err := player.Play(timekeeper.AlarmLong); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if output.initCalls != 0 || len(output.played) != 0 {
		t.Fatalf("muted player touched the output: %+v", output)
	}
}

func TestPlayClearsAndInitsOnce(t *testing.T) {
	output := &fakeOutput{}
	player := newTestPlayer(output, 0.5)
	for i := 0; i < 3; i++ {
		if err := player.Play(timekeeper.AlarmShort); err != nil {
			t.Fatalf("Play error: %v", err)
		}
	}
	if output.initCalls != 1 {
		t.Errorf("init calls = %d, want 1", output.initCalls)
	}
	if output.clears != 3 {
		t.Errorf("clears = %d, want 3", output.clears)
	}

	// Each play starts from the first sample.
	first, third := drain(output.played[0]), drain(output.played[2])
	if len(first) != len(third) {
		t.Fatalf("replay length %d, want %d", len(third), len(first))
	}
}

func TestPlayInitFailureRetries(t *testing.T) {
	output := &fakeOutput{initErr: errors.New("no device")}
	player := newTestPlayer(output, 0.5)

	if err := player.Play(timekeeper.AlarmShort); err == nil {
		t.Fatal("expected init error")
	}
	output.initErr = nil
	if err := player.Play(timekeeper.AlarmShort); err != nil {
		t.Fatalf("Play after recovery: %v", err)
	}
	if output.initCalls != 2 || len(output.played) != 1 {
		t.Fatalf("init calls = %d, played = %d", output.initCalls, len(output.played))
	}
}

func TestPlayUnknownKind(t *testing.T) {
	player := newTestPlayer(&fakeOutput{}, 0.5)
	if err := player.Play("chime"); !errors.Is(err, ErrUnknownAlarm) {
		t.Fatalf("Play error = %v, want ErrUnknownAlarm", err)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	player := newTestPlayer(&fakeOutput{}, 2)
	if got := player.Volume(); got != 1 {
		t.Fatalf("Volume() = %v, want 1", got)
	}
	player.SetVolume(-0.5)
	if got := player.Volume(); got != 0 {
		t.Fatalf("Volume() = %v, want 0", got)
	}
	player.SetVolume(0.7)
	if got := player.Volume(); got != 0.7 {
		t.Fatalf("Volume() = %v, want 0.7", got)
	}
}
