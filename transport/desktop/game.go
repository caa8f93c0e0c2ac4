// Package desktop plays the game in a window using ebiten.
//
// ebiten calls Update at a fixed 60 ticks per second. The game steps only
// when a full tick interval of the current play-through has accumulated, so
// keys are read every frame while the snake still moves at its configured
// rate.
package desktop

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/loop"
	"github.com/wricardo/mcp-training/snake/game/render"
	"github.com/wricardo/mcp-training/snake/game/service"
)

const (
	// ebiten's debug font is 6x16 pixels per glyph
	glyphWidth  = 6
	glyphHeight = 16
)

// keyBindings maps keys to commands, checked in order every frame
var keyBindings = []struct {
	keys []ebiten.Key
	cmd  loop.Command
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, loop.Steer("up")},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, loop.Steer("down")},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, loop.Steer("left")},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, loop.Steer("right")},
	{[]ebiten.Key{ebiten.KeyC}, loop.Decide("play_again")},
	{[]ebiten.Key{ebiten.KeyQ}, loop.Decide("quit")},
	{[]ebiten.Key{ebiten.KeyEscape}, loop.Quit()},
}

// Game implements ebiten.Game on top of a GameService
type Game struct {
	ctx     context.Context
	service service.GameService
	palette render.Palette
	cues    loop.Cues
	pilot   loop.Pilot

	state   *service.StateInfo
	elapsed time.Duration
}

// Option configures a Game
type Option func(*Game)

// WithCues plays cues on eat and game over
func WithCues(cues loop.Cues) Option {
	return func(g *Game) { g.cues = cues }
}

// WithPilot lets a pilot steer before every step
func WithPilot(pilot loop.Pilot) Option {
	return func(g *Game) { g.pilot = pilot }
}

// NewGame creates a window game for svc that stops once ctx is cancelled
func NewGame(ctx context.Context, svc service.GameService, opts ...Option) (*Game, error) {
	state, err := svc.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	g := &Game{
		ctx:     ctx,
		service: svc,
		palette: render.DefaultPalette(),
		state:   state,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run opens the window and plays until the player quits, closes it or ctx
// is cancelled
func Run(ctx context.Context, svc service.GameService, opts ...Option) error {
	g, err := NewGame(ctx, svc, opts...)
	if err != nil {
		return err
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Snake")

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("desktop game failed: %w", err)
	}
	// Closing the window quits from any state
	return svc.Quit(context.WithoutCancel(ctx))
}

// Update reads input every frame and steps the game once per tick interval
func (g *Game) Update() error {
	ctx := g.ctx

	select {
	case <-ctx.Done():
		return ebiten.Termination
	case <-g.service.Done():
		return ebiten.Termination
	default:
	}

	for _, binding := range keyBindings {
		if !anyJustPressed(binding.keys) {
			continue
		}
		state, err := loop.Dispatch(ctx, g.service, binding.cmd)
		if err != nil {
			return err
		}
		if state != nil {
			if state.Finished() {
				return ebiten.Termination
			}
			g.setState(state)
			g.elapsed = 0
		}
	}

	if !g.state.Playing() {
		return nil
	}

	g.elapsed += time.Second / time.Duration(ebiten.TPS())
	if g.elapsed < g.state.TickInterval {
		return nil
	}
	g.elapsed -= g.state.TickInterval

	return g.step(ctx)
}

func (g *Game) step(ctx context.Context) error {
	if g.pilot != nil {
		dir := g.pilot.Next(g.state.Game)
		if err := g.service.Steer(ctx, dir.String()); err != nil {
			log.Printf("Pilot steer failed: %v", err)
		}
	}

	result, err := g.service.Step(ctx)
	if err != nil {
		return err
	}
	g.state = result.State

	if g.cues != nil {
		switch result.Result {
		case engine.Eaten.String():
			g.cues.FoodEaten()
		case engine.GameOver.String():
			g.cues.GameOver()
		}
	}
	return nil
}

// setState swaps in a new state, resizing the window when a restart
// changed the board
func (g *Game) setState(state *service.StateInfo) {
	oldW, oldH := g.Layout(0, 0)
	g.state = state
	if w, h := g.Layout(0, 0); w != oldW || h != oldH {
		ebiten.SetWindowSize(w, h)
	}
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Draw renders the board, the score and the game-over overlay
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	game := g.state.Game
	cell := float64(game.CellSize)
	width, height := g.Layout(0, 0)

	for x := 0; x <= game.GridWidth; x++ {
		ebitenutil.DrawRect(screen, float64(x)*cell, 0, 1, float64(height), g.palette.GridLine)
	}
	for y := 0; y <= game.GridHeight; y++ {
		ebitenutil.DrawRect(screen, 0, float64(y)*cell, float64(width), 1, g.palette.GridLine)
	}

	if game.HasFood {
		g.drawCell(screen, game.Food, g.palette.Food)
	}
	for i := len(game.Body) - 1; i >= 0; i-- {
		fill := g.palette.Body
		if i == 0 {
			fill = g.palette.Head
		}
		g.drawCell(screen, game.Body[i], fill)
	}

	ebitenutil.DebugPrintAt(screen, g.state.ScoreLine(), 6, 4)

	if g.state.AwaitingDecision() {
		g.drawOverlay(screen, width, height)
	}
}

func (g *Game) drawCell(screen *ebiten.Image, c engine.Cell, fill color.Color) {
	cell := float64(g.state.Game.CellSize)
	ebitenutil.DrawRect(screen, float64(c.X)*cell, float64(c.Y)*cell, cell, cell, fill)
}

func (g *Game) drawOverlay(screen *ebiten.Image, width, height int) {
	ebitenutil.DrawRect(screen, 0, 0, float64(width), float64(height), g.palette.Overlay)

	messages := g.state.GameConfig.Messages
	lines := []string{messages.GameOver, g.state.FinalScoreLine(), messages.RestartPrompt}
	top := height/2 - len(lines)*glyphHeight
	for i, line := range lines {
		x := (width - len(line)*glyphWidth) / 2
		ebitenutil.DebugPrintAt(screen, line, x, top+i*glyphHeight*2)
	}
}

// Layout keeps the logical screen at the board size in pixels
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	game := g.state.Game
	return game.GridWidth * game.CellSize, game.GridHeight * game.CellSize
}
