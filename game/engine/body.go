package engine

// body is a ring-buffer deque of segments, head at the front. It keeps a
// per-cell occupancy count so membership checks do not scan the body.
type body struct {
	cells    []Cell
	start    int
	n        int
	occupied map[Cell]int
}

func newBody(capacity int) *body {
	if capacity < StartingBodyLen {
		capacity = StartingBodyLen
	}
	return &body{
		cells:    make([]Cell, capacity),
		occupied: make(map[Cell]int, capacity),
	}
}

// Len returns the number of segments
func (b *body) Len() int {
	return b.n
}

// At returns segment i, where 0 is the head
func (b *body) At(i int) Cell {
	return b.cells[(b.start+i)%len(b.cells)]
}

// Front returns the head segment
func (b *body) Front() Cell {
	return b.At(0)
}

// Back returns the tail segment
func (b *body) Back() Cell {
	return b.At(b.n - 1)
}

// PushFront inserts c as the new head
func (b *body) PushFront(c Cell) {
	if b.n == len(b.cells) {
		b.grow()
	}
	b.start = (b.start - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.start] = c
	b.n++
	b.occupied[c]++
}

// PopBack removes and returns the tail segment
func (b *body) PopBack() Cell {
	c := b.Back()
	b.n--
	if b.occupied[c] <= 1 {
		delete(b.occupied, c)
	} else {
		b.occupied[c]--
	}
	return c
}

// Count returns how many segments occupy c
func (b *body) Count(c Cell) int {
	return b.occupied[c]
}

// Cells copies the segments out, head first
func (b *body) Cells() []Cell {
	out := make([]Cell, b.n)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// Clear drops every segment but keeps the backing storage
func (b *body) Clear() {
	b.start = 0
	b.n = 0
	clear(b.occupied)
}

func (b *body) grow() {
	cells := make([]Cell, len(b.cells)*2)
	for i := 0; i < b.n; i++ {
		cells[i] = b.At(i)
	}
	b.cells = cells
	b.start = 0
}
