// Package audio synthesizes and plays the timer alarms.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"pomodoro/internal/core/timekeeper"
)

// ErrUnknownAlarm is returned for alarm kinds the player has no pattern for.
var ErrUnknownAlarm = errors.New("unknown alarm kind")

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 880

	shortLength = 600 * time.Millisecond
	pulseLength = 500 * time.Millisecond
	pulseGap    = 300 * time.Millisecond
	pulseCount  = 3
)

// Output is the sink alarms are played through.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Clear()
	Play(streamer beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Clear() { speaker.Clear() }

func (speakerOutput) Play(streamer beep.Streamer) { speaker.Play(streamer) }

// Speaker returns the system audio output.
func Speaker() Output {
	return speakerOutput{}
}

// Player plays alarm patterns at the configured volume.
type Player struct {
	output Output
	logger *slog.Logger

	mu      sync.Mutex
	volume  float64
	ready   bool
	buffers map[timekeeper.AlarmKind]*beep.Buffer
}

// NewPlayer creates a Player. The output is initialized lazily on the
// first audible play. A nil logger uses slog.Default.
func NewPlayer(output Output, volume float64, logger *slog.Logger) *Player {
	if output == nil {
		output = Speaker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		output:  output,
		logger:  logger,
		volume:  clampVolume(volume),
		buffers: make(map[timekeeper.AlarmKind]*beep.Buffer),
	}
}

// SetVolume sets the playback gain, clamped to 0..1.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = clampVolume(volume)
}

// Volume returns the current playback gain.
func (player *Player) Volume() float64 {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.volume
}

// Play stops whatever alarm is sounding and starts kind from the
// beginning. At volume 0 nothing is played.
func (player *Player) Play(kind timekeeper.AlarmKind) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	buffer, err := player.buffer(kind)
	if err != nil {
		return err
	}
	if player.volume <= 0 {
		return nil
	}

	if !player.ready {
		if err := player.output.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("init audio output: %w", err)
		}
		player.ready = true
		player.logger.Debug("audio output initialized", "sample_rate", int(sampleRate))
	}

	player.output.Clear()
	player.output.Play(&effects.Gain{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Gain:     player.volume - 1,
	})
	return nil
}

func (player *Player) buffer(kind timekeeper.AlarmKind) (*beep.Buffer, error) {
	if buffer, ok := player.buffers[kind]; ok {
		return buffer, nil
	}

	streamer, err := pattern(kind)
	if err != nil {
		return nil, err
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(streamer)
	player.buffers[kind] = buffer
	return buffer, nil
}

func pattern(kind timekeeper.AlarmKind) (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, toneHz)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}

	switch kind {
	case timekeeper.AlarmShort:
		return beep.Take(sampleRate.N(shortLength), tone), nil
	case timekeeper.AlarmLong:
		parts := make([]beep.Streamer, 0, pulseCount*2)
		for i := 0; i < pulseCount; i++ {
			parts = append(parts, beep.Take(sampleRate.N(pulseLength), tone), beep.Silence(sampleRate.N(pulseGap)))
		}
		return beep.Seq(parts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlarm, kind)
	}
}

func clampVolume(volume float64) float64 {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	}
	return volume
}
