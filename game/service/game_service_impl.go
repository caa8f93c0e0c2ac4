package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/snake/game/engine"
)

var (
	ErrNotPlaying = errors.New("game is not in progress")
	ErrGameQuit   = errors.New("game has quit")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	controller  *engine.Controller
	configs     ConfigManager
	configName  string
	pendingName string
	done        chan struct{}
	doneOnce    sync.Once
	now         func() time.Time
	mu          sync.RWMutex
}

// NewGameService creates a new game service running one controller. An empty
// configName uses the manager's default; a nil rng seeds from the config.
func NewGameService(configs ConfigManager, configName string, rng engine.RandomSource) (GameService, error) {
	config, err := loadConfig(configs, configName)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = engine.NewRandomSource(config.Seed)
	}

	controller, err := engine.NewController(config, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return &gameServiceImpl{
		controller: controller,
		configs:    configs,
		configName: configName,
		done:       make(chan struct{}),
		now:        time.Now,
	}, nil
}

// loadConfig resolves a config name, listing the alternatives when it is unknown
func loadConfig(configs ConfigManager, configName string) (*engine.GameConfig, error) {
	if configName == "" {
		return configs.GetDefault(), nil
	}

	config, err := configs.LoadConfig(configName)
	if err == nil {
		return config, nil
	}

	if strings.Contains(err.Error(), "configuration not found") {
		availableConfigs, listErr := configs.ListConfigs()
		if listErr == nil && len(availableConfigs) > 0 {
			var configIDs []string
			for _, cfg := range availableConfigs {
				configIDs = append(configIDs, cfg.ConfigID)
			}
			return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
		}
	}
	return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
}

// State returns the current game state
func (s *gameServiceImpl) State(ctx context.Context) (*StateInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked(), nil
}

func (s *gameServiceImpl) stateLocked() *StateInfo {
	config := s.controller.Config()
	name := s.configName
	if name == "" {
		name = config.Name
	}
	return &StateInfo{
		Round:         s.controller.Round(),
		ConfigName:    name,
		State:         s.controller.State().String(),
		TickInterval:  s.controller.TickInterval(),
		Game:          s.controller.Snapshot(),
		GameConfig:    config,
		PendingConfig: s.pendingName,
	}
}

// Steer queues a direction for the next step
func (s *gameServiceImpl) Steer(ctx context.Context, direction string) error {
	d, err := engine.ParseDirection(direction)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller.State() != engine.Playing {
		return fmt.Errorf("%w: state is %s", ErrNotPlaying, s.controller.State())
	}
	s.controller.Steer(d)
	return nil
}

// Step advances the game by one tick
func (s *gameServiceImpl) Step(ctx context.Context) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller.State() == engine.Quit {
		return nil, ErrGameQuit
	}
	if s.controller.State() != engine.Playing {
		return &StepResult{
			Result: engine.GameOver.String(),
			Ticked: false,
			State:  s.stateLocked(),
		}, nil
	}

	result := s.controller.Step()
	state := s.stateLocked()
	now := s.now()
	messages := state.GameConfig.Messages

	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s", state.Game.Direction),
		Timestamp: now,
		Position:  state.Game.Head,
	}}

	switch result {
	case engine.Eaten:
		events = append(events, GameEvent{
			Type:      "food_eaten",
			Message:   messages.ScoreText(state.Game.Score),
			Timestamp: now,
			Position:  state.Game.Head,
		})
	case engine.GameOver:
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   messages.GameOver + " " + messages.FinalScoreText(state.Game.Score),
			Timestamp: now,
			Position:  state.Game.Head,
		})
	}

	return &StepResult{
		Result: result.String(),
		Ticked: true,
		State:  state,
		Events: events,
	}, nil
}

// Decide answers the game-over prompt with play_again or quit
func (s *gameServiceImpl) Decide(ctx context.Context, decision string) (*StateInfo, error) {
	d, err := engine.ParseDecision(decision)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d == engine.PlayAgain && s.controller.State() == engine.AwaitingRestartDecision {
		s.applyNextConfigLocked()
	}

	if err := s.controller.Decide(d); err != nil {
		return nil, fmt.Errorf("cannot %s: %w", d, err)
	}

	if s.controller.State() == engine.Quit {
		s.closeDone()
	}
	return s.stateLocked(), nil
}

// applyNextConfigLocked queues the configuration for the next play-through:
// an explicit selection if there is one, otherwise a fresh copy of the
// current preset so edits on disk take effect on restart.
func (s *gameServiceImpl) applyNextConfigLocked() {
	name := s.configName
	if s.pendingName != "" {
		name = s.pendingName
	}

	config, err := loadConfig(s.configs, name)
	if err != nil || config == nil {
		return
	}
	if err := s.controller.Reconfigure(config); err != nil {
		return
	}
	s.configName = name
	s.pendingName = ""
}

// Quit ends the game immediately
func (s *gameServiceImpl) Quit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller.Quit()
	s.closeDone()
	return nil
}

// Done is closed once the game has quit
func (s *gameServiceImpl) Done() <-chan struct{} {
	return s.done
}

func (s *gameServiceImpl) closeDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

// ListConfigs returns all available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// SelectConfig picks the configuration used from the next play-through on
func (s *gameServiceImpl) SelectConfig(ctx context.Context, configName string) (*ConfigInfo, error) {
	config, err := loadConfig(s.configs, configName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.controller.Reconfigure(config); err != nil {
		return nil, err
	}
	s.pendingName = configName

	grid := config.Grid()
	return &ConfigInfo{
		Filename:    configName + ".json",
		ConfigID:    configName,
		Name:        config.Name,
		Description: config.Description,
		GridWidth:   grid.Width,
		GridHeight:  grid.Height,
		TickRate:    config.TickRate,
	}, nil
}
