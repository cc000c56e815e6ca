package feedback

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns the samples.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestPatternLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	tests := []struct {
		name     string
		pattern  []time.Duration
		expected int
	}{
		{"single buzz", []time.Duration{200 * time.Millisecond}, 200},
		{"buzz pause buzz", []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}, 250},
		{"zero pause skipped", []time.Duration{10 * time.Millisecond, 0, 10 * time.Millisecond}, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Pattern(rate, tc.pattern...)
			if s == nil {
				t.Fatal("Pattern() returned nil")
			}
			if n := len(drain(s)); n != tc.expected {
				t.Errorf("sample count = %d, expected %d", n, tc.expected)
			}
		})
	}
}

func TestPatternSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	samples := drain(Pattern(rate, 10*time.Millisecond, 20*time.Millisecond, 10*time.Millisecond))

	for i := 10; i < 30; i++ {
		if samples[i][0] != 0 || samples[i][1] != 0 {
			t.Fatalf("sample %d = %v during pause, expected silence", i, samples[i])
		}
	}
	loud := 0
	for _, i := range []int{0, 5, 30, 35} {
		if samples[i][0] != 0 {
			loud++
		}
	}
	if loud != 4 {
		t.Errorf("expected every buzz sample to be non-zero, got %d of 4", loud)
	}
}

func TestEmptyPattern(t *testing.T) {
	if s := Pattern(sampleRate); s != nil {
		t.Error("empty pattern should produce no streamer")
	}
	if s := Pattern(sampleRate, 0, 0); s != nil {
		t.Error("all-zero pattern should produce no streamer")
	}
}

func TestDisabledIsNop(t *testing.T) {
	h := Open(false)
	if _, ok := h.(Nop); !ok {
		t.Fatalf("Open(false) = %T, expected Nop", h)
	}
	// Must not panic
	h.Vibrate(100*time.Millisecond, 50*time.Millisecond)
}
