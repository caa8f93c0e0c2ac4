// Package audio plays short tones when the snake eats and when a
// play-through ends.
package audio

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

var (
	// Two rising notes (B5, E6)
	eatNotes = []note{{987.77, 60 * time.Millisecond}, {1318.51, 90 * time.Millisecond}}

	// Three falling notes (A4, F4, D4)
	gameOverNotes = []note{{440, 150 * time.Millisecond}, {349.23, 150 * time.Millisecond}, {293.66, 300 * time.Millisecond}}
)

// Player plays cues through the speaker
type Player struct {
	volume float64
	play   func(beep.Streamer)
}

// NewPlayer initializes the speaker. volume is linear, 1 is full scale.
func NewPlayer(volume float64) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &Player{volume: volume, play: func(s beep.Streamer) { speaker.Play(s) }}, nil
}

// Close releases the speaker
func (p *Player) Close() {
	speaker.Close()
}

// FoodEaten plays the eat chime
func (p *Player) FoodEaten() {
	p.playNotes(eatNotes)
}

// GameOver plays the falling game-over tones
func (p *Player) GameOver() {
	p.playNotes(gameOverNotes)
}

func (p *Player) playNotes(notes []note) {
	s, err := sequence(sampleRate, notes...)
	if err != nil {
		log.Printf("Failed to build cue: %v", err)
		return
	}
	p.play(withVolume(s, p.volume))
}

// sequence plays sine notes back to back
func sequence(rate beep.SampleRate, notes ...note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %.2fHz tone: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.duration), sine))
	}
	return beep.Seq(parts...), nil
}

// withVolume scales s; zero or less is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Muted satisfies the same cue interface without touching the speaker
type Muted struct{}

func (Muted) FoodEaten() {}
func (Muted) GameOver()  {}
