package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns the number of samples and the peak
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestSequenceLength(t *testing.T) {
	rate := beep.SampleRate(44100)

	s, err := sequence(rate, eatNotes...)
	if err != nil {
		t.Fatalf("sequence failed: %v", err)
	}

	want := rate.N(60*time.Millisecond) + rate.N(90*time.Millisecond)
	got, peak := drain(s)
	if got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("Expected peak in (0,1], got %f", peak)
	}
}

func TestSequenceRejectsNyquist(t *testing.T) {
	// A tone at or above half the sample rate cannot be generated
	if _, err := sequence(beep.SampleRate(1000), note{freq: 600, duration: time.Millisecond}); err == nil {
		t.Error("Expected an error for a tone above the Nyquist frequency")
	}
}

func TestWithVolume(t *testing.T) {
	rate := beep.SampleRate(44100)

	tests := []struct {
		name   string
		volume float64
		silent bool
	}{
		{"full", 1, false},
		{"half", 0.5, false},
		{"muted", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := sequence(rate, gameOverNotes...)
			if err != nil {
				t.Fatalf("sequence failed: %v", err)
			}
			_, peak := drain(withVolume(s, tt.volume))
			if tt.silent && peak != 0 {
				t.Errorf("Expected silence, got peak %f", peak)
			}
			if !tt.silent && peak == 0 {
				t.Error("Expected audible output")
			}
		})
	}
}

func TestPlayerCues(t *testing.T) {
	var played []beep.Streamer
	p := &Player{volume: 1, play: func(s beep.Streamer) { played = append(played, s) }}

	p.FoodEaten()
	p.GameOver()

	if len(played) != 2 {
		t.Fatalf("Expected 2 cues, got %d", len(played))
	}

	eat, _ := drain(played[0])
	over, _ := drain(played[1])
	if over <= eat {
		t.Errorf("Expected the game over cue (%d samples) to be longer than the eat cue (%d)", over, eat)
	}
}

func TestMuted(t *testing.T) {
	var m Muted
	m.FoodEaten()
	m.GameOver()
}
