package engine

// Session is a single play-through: one snake, one food cell and a score.
// Once terminated it stays terminated; a new play-through needs a new Session.
type Session struct {
	grid    Grid
	snake   *Snake
	placer  *FoodPlacer
	food    Cell
	hasFood bool
	score   int
	state   SessionState
	ticks   int
}

// NewSession starts a running play-through with a fresh snake and food
func NewSession(grid Grid, placer *FoodPlacer) *Session {
	s := &Session{
		grid:   grid,
		snake:  NewSnake(grid),
		placer: placer,
		state:  Running,
	}
	s.placeFood()
	return s
}

// NewSessionFrom starts a running play-through from an existing snake and food
// cell. A nil placer gets a clock-seeded one for the snake's grid.
func NewSessionFrom(snake *Snake, food Cell, placer *FoodPlacer) *Session {
	if placer == nil {
		placer = NewFoodPlacer(snake.grid, NewRandomSource(0))
	}
	return &Session{
		grid:    snake.grid,
		snake:   snake,
		placer:  placer,
		food:    food,
		hasFood: true,
		state:   Running,
	}
}

// Tick advances the play-through by one step. pending may be NoDirection.
func (s *Session) Tick(pending Direction) TickResult {
	if s.state == Terminated {
		return GameOver
	}

	if pending != NoDirection {
		s.snake.ChangeDirection(pending)
	}
	s.snake.Move()
	s.ticks++

	if s.snake.CheckCollision() {
		s.state = Terminated
		return GameOver
	}

	if s.hasFood && s.snake.EatFood(s.food) {
		s.score++
		s.placeFood()
		return Eaten
	}

	return Continuing
}

// placeFood puts food on a free cell. The board can only be full when the
// snake covers it, in which case the play-through continues without food.
func (s *Session) placeFood() {
	s.food, s.hasFood = s.placer.Generate(s.snake.Body())
}

// Snake returns the play-through's snake
func (s *Session) Snake() *Snake {
	return s.snake
}

// Food returns the food cell and whether one is on the board
func (s *Session) Food() (Cell, bool) {
	return s.food, s.hasFood
}

// Score returns the number of food cells eaten
func (s *Session) Score() int {
	return s.score
}

// State returns whether the play-through is still running
func (s *Session) State() SessionState {
	return s.state
}

// Ticks returns how many ticks have been applied
func (s *Session) Ticks() int {
	return s.ticks
}

// Grid returns the board geometry
func (s *Session) Grid() Grid {
	return s.grid
}

// Snapshot captures the play-through for rendering
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		GridWidth:  s.grid.Width,
		GridHeight: s.grid.Height,
		Body:       s.snake.Body(),
		Head:       s.snake.Head(),
		Direction:  s.snake.Direction().String(),
		Food:       s.food,
		HasFood:    s.hasFood,
		Score:      s.score,
		Ticks:      s.ticks,
		GameOver:   s.state == Terminated,
	}
}
