package engine

import "fmt"

// Snake owns the segmented body, the heading and the pending-growth flag.
// It is only mutated through its own methods.
type Snake struct {
	grid          Grid
	body          *body
	direction     Direction
	pendingGrowth bool
}

// NewSnake creates a snake in the starting position for grid
func NewSnake(grid Grid) *Snake {
	s := &Snake{
		grid: grid,
		body: newBody(grid.Area()),
	}
	s.Reset()
	return s
}

// NewSnakeFromBody creates a snake with an explicit body (head first) and heading
func NewSnakeFromBody(grid Grid, cells []Cell, dir Direction) (*Snake, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyBody
	}
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirection, dir)
	}
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Adjacent(cells[i]) {
			return nil, fmt.Errorf("%w: %v and %v", ErrBodyNotContiguous, cells[i-1], cells[i])
		}
	}

	s := &Snake{
		grid:      grid,
		body:      newBody(max(grid.Area(), len(cells))),
		direction: dir,
	}
	for i := len(cells) - 1; i >= 0; i-- {
		s.body.PushFront(cells[i])
	}
	return s, nil
}

// Reset puts the snake back to three segments centered on the grid, heading right
func (s *Snake) Reset() {
	s.body.Clear()
	center := s.grid.Center()
	for i := StartingBodyLen - 1; i >= 0; i-- {
		s.body.PushFront(Cell{X: center.X - i, Y: center.Y})
	}
	s.direction = Right
	s.pendingGrowth = false
}

// ChangeDirection requests a new heading for the next move. A request for the
// exact opposite of the current direction is ignored; otherwise the last
// request before a move wins.
func (s *Snake) ChangeDirection(d Direction) {
	if !d.Valid() {
		return
	}
	if s.direction.IsOpposite(d) {
		return
	}
	s.direction = d
}

// Move advances the head one cell. The tail is dropped unless growth is pending.
func (s *Snake) Move() {
	s.body.PushFront(s.body.Front().Add(s.direction))
	if s.pendingGrowth {
		s.pendingGrowth = false
		return
	}
	s.body.PopBack()
}

// CheckCollision reports whether the head left the grid or hit another segment
func (s *Snake) CheckCollision() bool {
	head := s.body.Front()
	if !s.grid.Contains(head) {
		return true
	}
	return s.body.Count(head) > 1
}

// EatFood marks the snake to grow on its next move if the head is on pos
func (s *Snake) EatFood(pos Cell) bool {
	if s.body.Front() != pos {
		return false
	}
	s.pendingGrowth = true
	return true
}

// Head returns the head segment
func (s *Snake) Head() Cell {
	return s.body.Front()
}

// Body returns a copy of the segments, head first
func (s *Snake) Body() []Cell {
	return s.body.Cells()
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return s.body.Len()
}

// Direction returns the heading that the next move will use
func (s *Snake) Direction() Direction {
	return s.direction
}

// PendingGrowth reports whether the next move keeps the tail
func (s *Snake) PendingGrowth() bool {
	return s.pendingGrowth
}

// Occupies reports whether any segment is on c
func (s *Snake) Occupies(c Cell) bool {
	return s.body.Count(c) > 0
}
