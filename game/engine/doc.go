// Package engine provides the rules of the snake game.
//
// The engine package implements the game mechanics including:
//   - Grid geometry derived from window size and cell size
//   - Snake movement, growth and collision detection
//   - Food placement on free cells
//   - Play-through scoring and termination
//   - The restart/quit control protocol
//   - Configuration loading and validation
//
// Core Types:
//
// Snake keeps its body in a ring-buffer deque so the head push and tail pop
// of every move are constant time. Session advances one play-through by a
// tick and reports Continuing, Eaten or GameOver. Controller wraps sessions
// in a non-blocking step function: after GameOver it waits in the
// AwaitingRestartDecision state until Decide is called with PlayAgain or
// QuitGame.
//
// Usage:
//
//	config := engine.DefaultGameConfig()
//	controller, err := engine.NewController(config, engine.NewRandomSource(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	controller.Steer(engine.Up)
//	switch controller.Step() {
//	case engine.Eaten:
//		// grow, play a sound
//	case engine.GameOver:
//		controller.Decide(engine.PlayAgain)
//	}
//
// Game Rules:
//
// Each tick the snake moves one cell in its heading. The tail is dropped
// before collisions are checked, so moving into the cell the tail just left
// is legal unless the snake is growing. Leaving the board or running into
// another segment ends the play-through. Eating food scores one point and
// grows the snake by one segment on the following move. A heading change
// that would reverse the snake is ignored.
//
// Randomness comes from an injected RandomSource, so a fixed seed replays
// the same food sequence.
package engine
