// Package loop runs a game at a fixed cadence for real-time shells.
//
// A Runner owns the ticker and a single select loop. Shells push Commands
// (steer, decide, quit, redraw) on a channel from their own input goroutine
// and receive every state change through a Renderer. Ticks stop while the
// game-over prompt is open and resume at the new play-through's tick rate
// after the player chooses to play again.
package loop
