// Package feedback renders the tactile alert requested by the levels.
// Terminals cannot vibrate, so the on/off pattern is played as a short
// buzz through the speaker when one is available.
package feedback

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	buzzFreq   = 140.0
	buzzVolume = -1.5 // log2 scale; roughly a third of full scale
)

// Haptics is a best-effort tactile feedback device. Vibrate never blocks
// and never fails.
type Haptics interface {
	// Vibrate plays an on/off pattern: on, off, on, ...
	Vibrate(pattern ...time.Duration)
}

// Nop ignores every request. SSH sessions and tests use it.
type Nop struct{}

// Vibrate does nothing.
func (Nop) Vibrate(...time.Duration) {}

// Buzzer plays patterns through the default audio device.
type Buzzer struct {
	mu    sync.Mutex
	mixer *beep.Mixer
}

var (
	initOnce sync.Once
	initErr  error
)

// Open returns a Buzzer when enabled and the speaker initializes, and Nop
// otherwise. It never returns an error; a missing device degrades silently.
func Open(enabled bool) Haptics {
	if !enabled {
		return Nop{}
	}
	b, err := NewBuzzer()
	if err != nil {
		return Nop{}
	}
	return b
}

// NewBuzzer initializes the speaker. The speaker is process-wide, so it is
// only initialized once.
func NewBuzzer() (*Buzzer, error) {
	initOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	})
	if initErr != nil {
		return nil, initErr
	}

	b := &Buzzer{mixer: &beep.Mixer{}}
	speaker.Play(b.mixer)
	return b, nil
}

// Vibrate queues the pattern on the mixer.
func (b *Buzzer) Vibrate(pattern ...time.Duration) {
	s := Pattern(sampleRate, pattern...)
	if s == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	speaker.Lock()
	b.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: buzzVolume})
	speaker.Unlock()
}

// Close stops anything still playing.
func (b *Buzzer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
}

// Pattern builds the streamer for an on/off pattern at rate. Even
// positions buzz, odd positions are silent. It returns nil for an empty
// or all-zero pattern.
func Pattern(rate beep.SampleRate, pattern ...time.Duration) beep.Streamer {
	var parts []beep.Streamer
	for i, d := range pattern {
		n := rate.N(d)
		if n <= 0 {
			continue
		}
		if i%2 == 0 {
			parts = append(parts, beep.Take(n, newBuzz(rate, buzzFreq)))
		} else {
			parts = append(parts, beep.Silence(n))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}

// buzz is an endless square wave.
type buzz struct {
	step  float64
	phase float64
}

func newBuzz(rate beep.SampleRate, freq float64) *buzz {
	return &buzz{step: freq / float64(rate)}
}

func (z *buzz) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := -1.0
		if z.phase < 0.5 {
			v = 1.0
		}
		samples[i][0] = v
		samples[i][1] = v
		z.phase += z.step
		z.phase -= math.Floor(z.phase)
	}
	return len(samples), true
}

func (z *buzz) Err() error { return nil }
