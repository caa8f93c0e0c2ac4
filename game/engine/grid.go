package engine

// Grid is the fixed board geometry
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewGrid derives the board size from the window size and cell size
func NewGrid(windowWidth, windowHeight, cellSize int) Grid {
	if cellSize <= 0 {
		return Grid{}
	}
	return Grid{Width: windowWidth / cellSize, Height: windowHeight / cellSize}
}

// Contains reports whether c lies on the board
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Center returns the cell at (Width/2, Height/2)
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// Area returns the number of cells on the board
func (g Grid) Area() int {
	return g.Width * g.Height
}
