package terminal

import (
	"context"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/snake/game/loop"
)

// TranslateEvent maps a terminal event to a game command
func TranslateEvent(ev tcell.Event) (loop.Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return TranslateKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		return loop.Redraw(), true
	}
	return loop.Command{}, false
}

// TranslateKey maps a key press: arrows, WASD and hjkl steer, C plays again,
// Q answers quit at the prompt, Esc and Ctrl-C quit at any time
func TranslateKey(key tcell.Key, ch rune) (loop.Command, bool) {
	switch key {
	case tcell.KeyUp:
		return loop.Steer("up"), true
	case tcell.KeyDown:
		return loop.Steer("down"), true
	case tcell.KeyLeft:
		return loop.Steer("left"), true
	case tcell.KeyRight:
		return loop.Steer("right"), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return loop.Quit(), true
	case tcell.KeyRune:
	default:
		return loop.Command{}, false
	}

	switch unicode.ToLower(ch) {
	case 'w', 'k':
		return loop.Steer("up"), true
	case 's', 'j':
		return loop.Steer("down"), true
	case 'a', 'h':
		return loop.Steer("left"), true
	case 'd', 'l':
		return loop.Steer("right"), true
	case 'c':
		return loop.Decide("play_again"), true
	case 'q':
		return loop.Decide("quit"), true
	}
	return loop.Command{}, false
}

// PumpEvents polls the screen and forwards translated commands until ctx is
// done or the screen is finalized. It closes commands on return.
func PumpEvents(ctx context.Context, screen tcell.Screen, commands chan<- loop.Command) {
	defer close(commands)

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		cmd, ok := TranslateEvent(ev)
		if !ok {
			continue
		}
		select {
		case commands <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
