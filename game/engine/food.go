package engine

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource is the randomness the food placer needs
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a seeded generator. A zero seed picks one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}

// FoodPlacer picks food cells not covered by the snake
type FoodPlacer struct {
	grid Grid
	rng  RandomSource
}

// NewFoodPlacer creates a food placer drawing from rng
func NewFoodPlacer(grid Grid, rng RandomSource) *FoodPlacer {
	return &FoodPlacer{grid: grid, rng: rng}
}

// Generate draws uniformly random cells until it finds one not in occupied.
// It returns false only when occupied covers the whole grid. Sampling slows
// down as the body fills the board; that case is not optimized.
func (p *FoodPlacer) Generate(occupied []Cell) (Cell, bool) {
	taken := make(map[Cell]struct{}, len(occupied))
	for _, c := range occupied {
		if p.grid.Contains(c) {
			taken[c] = struct{}{}
		}
	}
	if len(taken) >= p.grid.Area() {
		return Cell{}, false
	}

	for {
		c := Cell{X: p.rng.Intn(p.grid.Width), Y: p.rng.Intn(p.grid.Height)}
		if _, ok := taken[c]; !ok {
			return c, true
		}
	}
}
