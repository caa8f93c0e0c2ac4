// Package render holds the colors shared by every shell and a raster
// renderer that turns a snapshot into an image.
package render

import "image/color"

// Palette is the set of colors a board is drawn with
type Palette struct {
	Background color.RGBA
	GridLine   color.RGBA
	Head       color.RGBA
	Body       color.RGBA
	Food       color.RGBA
	Text       color.RGBA
	Overlay    color.RGBA
}

// DefaultPalette returns the classic colors: black board, green snake with a
// darker head, red food and white text
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0, G: 0, B: 0, A: 255},
		GridLine:   color.RGBA{R: 40, G: 40, B: 40, A: 255},
		Head:       color.RGBA{R: 0, G: 200, B: 0, A: 255},
		Body:       color.RGBA{R: 0, G: 255, B: 0, A: 255},
		Food:       color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Text:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Overlay:    color.RGBA{R: 0, G: 0, B: 0, A: 180},
	}
}
