package service

import (
	"context"

	"github.com/wricardo/mcp-training/snake/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game State
	State(ctx context.Context) (*StateInfo, error)

	// Game Operations
	Steer(ctx context.Context, direction string) error
	Step(ctx context.Context) (*StepResult, error)
	Decide(ctx context.Context, decision string) (*StateInfo, error)
	Quit(ctx context.Context) error
	Done() <-chan struct{}

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	SelectConfig(ctx context.Context, configName string) (*ConfigInfo, error)
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}
