// Package terminal plays the game in a text terminal using tcell.
//
// The shell runs three pieces: PumpEvents reads keys on its own goroutine,
// a loop.Runner ticks the game, and Renderer draws every state change.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/snake/game/loop"
	"github.com/wricardo/mcp-training/snake/game/service"
)

// Run plays on screen until the player quits or ctx is cancelled. A nil
// screen opens the real terminal.
func Run(ctx context.Context, screen tcell.Screen, svc service.GameService, opts ...loop.Option) error {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan loop.Command, 16)
	go PumpEvents(ctx, screen, commands)

	runner := loop.NewRunner(svc, NewRenderer(screen), commands, opts...)
	return runner.Run(ctx)
}
