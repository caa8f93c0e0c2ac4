package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/wricardo/mcp-training/snake/game/engine"
)

var ErrEmptyBoard = errors.New("board has no cells")

// Raster draws snapshots with gg
type Raster struct {
	Palette  Palette
	Messages engine.GameMessages
	ShowGrid bool
}

// NewRaster creates a raster renderer using the default palette
func NewRaster(messages engine.GameMessages) *Raster {
	return &Raster{
		Palette:  DefaultPalette(),
		Messages: messages,
		ShowGrid: true,
	}
}

// Draw renders the board at the snapshot's cell size, score in the top-left
// corner and the game-over overlay once the play-through has ended
func (r *Raster) Draw(snap engine.Snapshot) (image.Image, error) {
	if snap.GridWidth <= 0 || snap.GridHeight <= 0 {
		return nil, ErrEmptyBoard
	}
	cell := snap.CellSize
	if cell <= 0 {
		cell = engine.DefaultCellSize
	}
	width := snap.GridWidth * cell
	height := snap.GridHeight * cell

	dc := gg.NewContext(width, height)
	dc.SetColor(r.Palette.Background)
	dc.Clear()

	if r.ShowGrid {
		r.drawGrid(dc, width, height, cell)
	}

	if snap.HasFood {
		fillCell(dc, snap.Food, cell, r.Palette.Food)
	}
	for i, c := range snap.Body {
		fill := r.Palette.Body
		if i == 0 {
			fill = r.Palette.Head
		}
		fillCell(dc, c, cell, fill)
	}

	dc.SetColor(r.Palette.Text)
	dc.DrawString(r.Messages.ScoreText(snap.Score), 6, 16)

	if snap.GameOver {
		r.drawOverlay(dc, width, height, snap.Score)
	}

	return dc.Image(), nil
}

func (r *Raster) drawGrid(dc *gg.Context, width, height, cell int) {
	dc.SetColor(r.Palette.GridLine)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += cell {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += cell {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

func (r *Raster) drawOverlay(dc *gg.Context, width, height, score int) {
	dc.SetColor(r.Palette.Overlay)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	cx := float64(width) / 2
	cy := float64(height) / 2
	dc.SetColor(r.Palette.Text)
	dc.DrawStringAnchored(r.Messages.GameOver, cx, cy-24, 0.5, 0.5)
	dc.DrawStringAnchored(r.Messages.FinalScoreText(score), cx, cy, 0.5, 0.5)
	dc.DrawStringAnchored(r.Messages.RestartPrompt, cx, cy+24, 0.5, 0.5)
}

func fillCell(dc *gg.Context, c engine.Cell, cell int, fill color.Color) {
	dc.SetColor(fill)
	dc.DrawRectangle(float64(c.X*cell), float64(c.Y*cell), float64(cell), float64(cell))
	dc.Fill()
}

// Scale resizes img to the given width keeping the aspect ratio. Nearest
// neighbour keeps the cell edges sharp.
func Scale(img image.Image, width int) image.Image {
	if width <= 0 || width == img.Bounds().Dx() {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.NearestNeighbor)
}

// EncodePNG draws snap, scales it to width (0 keeps the native size) and
// writes it to w as PNG
func (r *Raster) EncodePNG(w io.Writer, snap engine.Snapshot, width int) error {
	img, err := r.Draw(snap)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, Scale(img, width), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
