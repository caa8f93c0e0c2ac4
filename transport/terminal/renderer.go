package terminal

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/snake/game/render"
	"github.com/wricardo/mcp-training/snake/game/service"
)

// Each board cell is two terminal columns wide so cells look square
const cellColumns = 2

const (
	headRune = '█'
	bodyRune = '▓'
	foodRune = '●'
)

// Board layout: score on row 0, border from row 1, cells from column 1
const (
	boardTop  = 1
	boardLeft = 0
)

// Renderer draws game states onto a tcell screen
type Renderer struct {
	screen tcell.Screen

	base    tcell.Style
	border  tcell.Style
	head    tcell.Style
	body    tcell.Style
	food    tcell.Style
	text    tcell.Style
	overlay tcell.Style
}

// NewRenderer creates a renderer using the default palette
func NewRenderer(screen tcell.Screen) *Renderer {
	p := render.DefaultPalette()
	base := tcell.StyleDefault.Background(rgb(p.Background))
	return &Renderer{
		screen:  screen,
		base:    base,
		border:  base.Foreground(rgb(p.GridLine)),
		head:    base.Foreground(rgb(p.Head)),
		body:    base.Foreground(rgb(p.Body)),
		food:    base.Foreground(rgb(p.Food)),
		text:    base.Foreground(rgb(p.Text)),
		overlay: base.Foreground(rgb(p.Text)).Bold(true),
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellPosition maps a board cell to its first screen column and row
func cellPosition(x, y int) (int, int) {
	return boardLeft + 1 + x*cellColumns, boardTop + 1 + y
}

// RequiredSize returns the terminal columns and rows needed to draw a board
// with its border and score line
func RequiredSize(gridWidth, gridHeight int) (int, int) {
	return boardLeft + gridWidth*cellColumns + 2, boardTop + gridHeight + 2
}

// Render draws the board, the score line and, while the prompt is open, the
// game-over overlay
func (r *Renderer) Render(state *service.StateInfo) error {
	r.screen.SetStyle(r.base)
	r.screen.Clear()

	game := state.Game
	needW, needH := RequiredSize(game.GridWidth, game.GridHeight)
	screenW, screenH := r.screen.Size()
	if screenW < needW || screenH < needH {
		r.drawText(0, 0, fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", needW, needH, screenW, screenH), r.text)
		r.screen.Show()
		return nil
	}

	r.drawText(0, 0, state.ScoreLine(), r.text)
	r.drawBorder(game.GridWidth, game.GridHeight)

	if game.HasFood {
		r.drawCell(game.Food.X, game.Food.Y, foodRune, r.food)
	}
	for i := len(game.Body) - 1; i >= 0; i-- {
		c := game.Body[i]
		if i == 0 {
			r.drawCell(c.X, c.Y, headRune, r.head)
		} else {
			r.drawCell(c.X, c.Y, bodyRune, r.body)
		}
	}

	if state.AwaitingDecision() {
		r.drawOverlay(state, needW)
	}

	r.screen.Show()
	return nil
}

func (r *Renderer) drawBorder(width, height int) {
	right := boardLeft + 1 + width*cellColumns
	bottom := boardTop + 1 + height

	for x := boardLeft + 1; x < right; x++ {
		r.screen.SetContent(x, boardTop, '─', nil, r.border)
		r.screen.SetContent(x, bottom, '─', nil, r.border)
	}
	for y := boardTop + 1; y < bottom; y++ {
		r.screen.SetContent(boardLeft, y, '│', nil, r.border)
		r.screen.SetContent(right, y, '│', nil, r.border)
	}
	r.screen.SetContent(boardLeft, boardTop, '┌', nil, r.border)
	r.screen.SetContent(right, boardTop, '┐', nil, r.border)
	r.screen.SetContent(boardLeft, bottom, '└', nil, r.border)
	r.screen.SetContent(right, bottom, '┘', nil, r.border)
}

func (r *Renderer) drawCell(x, y int, ch rune, style tcell.Style) {
	sx, sy := cellPosition(x, y)
	for i := 0; i < cellColumns; i++ {
		r.screen.SetContent(sx+i, sy, ch, nil, style)
	}
}

func (r *Renderer) drawOverlay(state *service.StateInfo, boardWidth int) {
	messages := state.GameConfig.Messages
	lines := []string{
		messages.GameOver,
		state.FinalScoreLine(),
		messages.RestartPrompt,
	}

	mid := boardTop + 1 + state.Game.GridHeight/2
	top := mid - len(lines)/2
	for i, line := range lines {
		x := (boardWidth - len([]rune(line))) / 2
		if x < 0 {
			x = 0
		}
		r.drawText(x, top+i, line, r.overlay)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
