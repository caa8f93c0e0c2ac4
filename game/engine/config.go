package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultGameConfig returns the reference configuration: a 600x400 window,
// 20 pixel cells and 10 ticks per second
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:         "classic",
		Description:  "Reference 30x20 board at 10 ticks per second",
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		CellSize:     DefaultCellSize,
		TickRate:     DefaultTickRate,
		Messages:     DefaultMessages(),
	}
}

// DefaultMessages returns the stock player-facing text
func DefaultMessages() GameMessages {
	return GameMessages{
		Score:         "Score: %d",
		GameOver:      "GAME OVER",
		FinalScore:    "Final Score: %d",
		RestartPrompt: "Press C to Play Again or Q to Quit",
	}
}

// Grid returns the board geometry the configuration produces
func (c *GameConfig) Grid() Grid {
	return NewGrid(c.WindowWidth, c.WindowHeight, c.CellSize)
}

// TickInterval returns the time between ticks
func (c *GameConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / DefaultTickRate
	}
	return time.Second / time.Duration(c.TickRate)
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	// Validate geometry
	if config.CellSize < MinCellSize || config.CellSize > MaxCellSize {
		return fmt.Errorf("config validation: cell_size must be between %d and %d, got %d", MinCellSize, MaxCellSize, config.CellSize)
	}
	if config.WindowWidth <= 0 || config.WindowHeight <= 0 {
		return fmt.Errorf("config validation: window size must be positive, got %dx%d", config.WindowWidth, config.WindowHeight)
	}

	grid := config.Grid()
	if grid.Width < MinGridWidth || grid.Width > MaxGridSize {
		return fmt.Errorf("config validation: grid width must be between %d and %d cells, got %d (window_width %d / cell_size %d)",
			MinGridWidth, MaxGridSize, grid.Width, config.WindowWidth, config.CellSize)
	}
	if grid.Height < MinGridHeight || grid.Height > MaxGridSize {
		return fmt.Errorf("config validation: grid height must be between %d and %d cells, got %d (window_height %d / cell_size %d)",
			MinGridHeight, MaxGridSize, grid.Height, config.WindowHeight, config.CellSize)
	}

	// Validate pacing
	if config.TickRate < MinTickRate || config.TickRate > MaxTickRate {
		return fmt.Errorf("config validation: tick_rate must be between %d and %d, got %d", MinTickRate, MaxTickRate, config.TickRate)
	}

	// Validate messages
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}
	if config.Messages.RestartPrompt == "" {
		return fmt.Errorf("config validation: messages.restart_prompt is required")
	}
	if !strings.Contains(config.Messages.Score, "%d") {
		return fmt.Errorf("config validation: messages.score must contain %%d for score")
	}
	if !strings.Contains(config.Messages.FinalScore, "%d") {
		return fmt.Errorf("config validation: messages.final_score must contain %%d for score")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file. Missing
// messages fall back to the stock text.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseGameConfig decodes a configuration without validating it
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := &GameConfig{Messages: DefaultMessages()}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
