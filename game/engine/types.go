package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Reference configuration
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400
	DefaultCellSize     = 20
	DefaultTickRate     = 10

	// Validation constants
	MinGridWidth    = 5
	MinGridHeight   = 3
	MaxGridSize     = 200
	MinCellSize     = 4
	MaxCellSize     = 100
	MinTickRate     = 1
	MaxTickRate     = 60
	StartingBodyLen = 3
)

var (
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrEmptyBody         = errors.New("snake body must have at least one segment")
	ErrBodyNotContiguous = errors.New("snake body segments must be adjacent")
	ErrNoDecisionPending = errors.New("no restart decision pending")
	ErrInvalidDecision   = errors.New("invalid decision")
)

// Cell is a grid coordinate. Values outside the grid are legal and mean the
// snake has left the board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step away in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Adjacent reports whether o is exactly one step away along a single axis
func (c Cell) Adjacent(o Cell) bool {
	return abs(c.X-o.X)+abs(c.Y-o.Y) == 1
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit vector on the grid
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	NoDirection = Direction{}
	Up          = Direction{DX: 0, DY: -1}
	Down        = Direction{DX: 0, DY: 1}
	Left        = Direction{DX: -1, DY: 0}
	Right       = Direction{DX: 1, DY: 0}

	// Directions lists the four headings in a stable order
	Directions = []Direction{Up, Down, Left, Right}
)

// Opposite returns the exact negation of d
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsOpposite reports whether o is the exact negation of d
func (d Direction) IsOpposite(o Direction) bool {
	return d.Valid() && o == d.Opposite()
}

// Valid reports whether d is one of the four unit headings
func (d Direction) Valid() bool {
	return abs(d.DX)+abs(d.DY) == 1
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case NoDirection:
		return "none"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// ParseDirection converts a direction name into a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return NoDirection, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// TickResult is the outcome of advancing a session by one tick
type TickResult int

const (
	Continuing TickResult = iota
	Eaten
	GameOver
)

func (r TickResult) String() string {
	switch r {
	case Continuing:
		return "continuing"
	case Eaten:
		return "eaten"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// SessionState is the lifecycle state of a single play-through
type SessionState int

const (
	Running SessionState = iota
	Terminated
)

func (s SessionState) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// ControllerState is the state of the outer game loop
type ControllerState int

const (
	Playing ControllerState = iota
	AwaitingRestartDecision
	Quit
)

func (s ControllerState) String() string {
	switch s {
	case Playing:
		return "playing"
	case AwaitingRestartDecision:
		return "awaiting_restart_decision"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Decision is the player's answer to the game-over prompt
type Decision int

const (
	PlayAgain Decision = iota + 1
	QuitGame
)

func (d Decision) String() string {
	switch d {
	case PlayAgain:
		return "play_again"
	case QuitGame:
		return "quit"
	}
	return "none"
}

// ParseDecision converts a decision name or its key binding into a Decision
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "play_again", "play-again", "restart", "c":
		return PlayAgain, nil
	case "quit", "q":
		return QuitGame, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
}

// GameMessages holds the player-facing text templates
type GameMessages struct {
	Score         string `json:"score"`
	GameOver      string `json:"game_over"`
	FinalScore    string `json:"final_score"`
	RestartPrompt string `json:"restart_prompt"`
}

// ScoreText renders the in-game score line
func (m GameMessages) ScoreText(score int) string {
	return formatScore(m.Score, score)
}

// FinalScoreText renders the final score line of the game-over overlay
func (m GameMessages) FinalScoreText(score int) string {
	return formatScore(m.FinalScore, score)
}

// formatScore fills a score template, tolerating templates without a verb
func formatScore(template string, score int) string {
	if !strings.Contains(template, "%d") {
		return fmt.Sprintf("%s %d", template, score)
	}
	return fmt.Sprintf(template, score)
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	WindowWidth  int          `json:"window_width"`
	WindowHeight int          `json:"window_height"`
	CellSize     int          `json:"cell_size"`
	TickRate     int          `json:"tick_rate"`
	Seed         int64        `json:"seed,omitempty"`
	Messages     GameMessages `json:"messages"`
}

// Snapshot is a read-only view of a play-through for renderers and tools
type Snapshot struct {
	GridWidth  int             `json:"grid_width"`
	GridHeight int             `json:"grid_height"`
	CellSize   int             `json:"cell_size"`
	Body       []Cell          `json:"body"`
	Head       Cell            `json:"head"`
	Direction  string          `json:"direction"`
	Food       Cell            `json:"food"`
	HasFood    bool            `json:"has_food"`
	Score      int             `json:"score"`
	Ticks      int             `json:"ticks"`
	GameOver   bool            `json:"game_over"`
	State      ControllerState `json:"-"`
	StateName  string          `json:"state"`
	Round      int             `json:"round"`
}

// Grid returns the snapshot's board geometry
func (s Snapshot) Grid() Grid {
	return Grid{Width: s.GridWidth, Height: s.GridHeight}
}
