package engine

import (
	"fmt"
	"time"
)

// Controller drives play-throughs one step at a time. It never blocks: the
// game-over prompt is the AwaitingRestartDecision state, answered with Decide.
type Controller struct {
	config  *GameConfig
	next    *GameConfig
	rng     RandomSource
	session *Session
	state   ControllerState
	queued  Direction
	round   int
}

// NewController creates a controller and starts the first play-through
func NewController(config *GameConfig, rng RandomSource) (*Controller, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandomSource(config.Seed)
	}

	c := &Controller{
		config: config,
		rng:    rng,
	}
	c.startRound()
	return c, nil
}

func (c *Controller) startRound() {
	if c.next != nil {
		c.config = c.next
		c.next = nil
	}
	grid := c.config.Grid()
	c.session = NewSession(grid, NewFoodPlacer(grid, c.rng))
	c.state = Playing
	c.queued = NoDirection
	c.round++
}

// Steer queues a heading for the next step. Only the latest request is kept.
func (c *Controller) Steer(d Direction) {
	if c.state != Playing || !d.Valid() {
		return
	}
	c.queued = d
}

// Step applies one tick while playing. Outside the Playing state it changes
// nothing and reports GameOver.
func (c *Controller) Step() TickResult {
	if c.state != Playing {
		return GameOver
	}

	pending := c.queued
	c.queued = NoDirection

	result := c.session.Tick(pending)
	if result == GameOver {
		c.state = AwaitingRestartDecision
	}
	return result
}

// Decide answers the game-over prompt
func (c *Controller) Decide(d Decision) error {
	if c.state != AwaitingRestartDecision {
		return ErrNoDecisionPending
	}

	switch d {
	case PlayAgain:
		c.startRound()
	case QuitGame:
		c.state = Quit
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDecision, d)
	}
	return nil
}

// Quit ends the game from any state
func (c *Controller) Quit() {
	c.state = Quit
}

// Reconfigure sets the configuration used from the next play-through on
func (c *Controller) Reconfigure(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	c.next = config
	return nil
}

// State returns the controller state
func (c *Controller) State() ControllerState {
	return c.state
}

// Session returns the current play-through
func (c *Controller) Session() *Session {
	return c.session
}

// Config returns the configuration of the current play-through
func (c *Controller) Config() *GameConfig {
	return c.config
}

// Round returns the 1-based play-through counter
func (c *Controller) Round() int {
	return c.round
}

// TickInterval returns the time between steps for the current play-through
func (c *Controller) TickInterval() time.Duration {
	return c.config.TickInterval()
}

// Snapshot captures the current play-through and controller state
func (c *Controller) Snapshot() Snapshot {
	snap := c.session.Snapshot()
	snap.CellSize = c.config.CellSize
	snap.State = c.state
	snap.StateName = c.state.String()
	snap.Round = c.round
	return snap
}
