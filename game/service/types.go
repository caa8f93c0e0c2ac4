package service

import (
	"time"

	"github.com/wricardo/mcp-training/snake/game/engine"
)

// StateInfo provides a view of the current play-through and the prompt state
type StateInfo struct {
	Round         int                `json:"round"`
	ConfigName    string             `json:"config_name"`
	State         string             `json:"state"`
	TickInterval  time.Duration      `json:"tick_interval"`
	Game          engine.Snapshot    `json:"game"`
	GameConfig    *engine.GameConfig `json:"game_config"`
	PendingConfig string             `json:"pending_config,omitempty"`
}

// Playing reports whether steps advance the game
func (s *StateInfo) Playing() bool {
	return s.Game.State == engine.Playing
}

// AwaitingDecision reports whether the game-over prompt is open
func (s *StateInfo) AwaitingDecision() bool {
	return s.Game.State == engine.AwaitingRestartDecision
}

// Finished reports whether the player chose to quit
func (s *StateInfo) Finished() bool {
	return s.Game.State == engine.Quit
}

// ScoreLine renders the in-game score text
func (s *StateInfo) ScoreLine() string {
	return s.GameConfig.Messages.ScoreText(s.Game.Score)
}

// FinalScoreLine renders the final score text for the game-over overlay
func (s *StateInfo) FinalScoreLine() string {
	return s.GameConfig.Messages.FinalScoreText(s.Game.Score)
}

// StepResult contains the result of a step operation
type StepResult struct {
	Result string      `json:"result"` // "continuing", "eaten", "game_over"
	Ticked bool        `json:"ticked"`
	State  *StateInfo  `json:"state"`
	Events []GameEvent `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string      `json:"type"` // "move", "food_eaten", "game_over"
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Position  engine.Cell `json:"position,omitempty"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for selection
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridWidth   int    `json:"grid_width"`
	GridHeight  int    `json:"grid_height"`
	TickRate    int    `json:"tick_rate"`
}
