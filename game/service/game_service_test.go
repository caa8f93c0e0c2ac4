package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/service"
)

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs    map[string]*engine.GameConfig
	loadCalls  int
	defaultCfg *engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	classic := engine.DefaultGameConfig()

	small := engine.DefaultGameConfig()
	small.Name = "Small"
	small.WindowWidth = 200
	small.WindowHeight = 100
	small.TickRate = 5

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"classic": classic,
			"small":   small,
		},
		defaultCfg: classic,
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	m.loadCalls++
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var result []*service.ConfigInfo
	for _, id := range []string{"classic", "small"} {
		config := m.configs[id]
		result = append(result, &service.ConfigInfo{
			Filename: id + ".json",
			ConfigID: id,
			Name:     config.Name,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.defaultCfg
}

// countingSource returns 0, 1, 2, ... modulo n, so the first food lands on (0,1)
type countingSource struct{ next int }

func (c *countingSource) Intn(n int) int {
	v := c.next % n
	c.next++
	return v
}

func newTestService(t *testing.T) (service.GameService, *MockConfigManager) {
	t.Helper()
	configs := NewMockConfigManager()
	svc, err := service.NewGameService(configs, "classic", &countingSource{})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc, configs
}

// stepUntilGameOver steps until the prompt opens
func stepUntilGameOver(t *testing.T, svc service.GameService) *service.StepResult {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		result, err := svc.Step(ctx)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if result.Result == "game_over" {
			return result
		}
	}
	t.Fatal("Expected the game to end")
	return nil
}

func TestNewGameService(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.State(context.Background())
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if state.Round != 1 {
		t.Errorf("Expected round 1, got %d", state.Round)
	}
	if state.ConfigName != "classic" {
		t.Errorf("Expected config classic, got %s", state.ConfigName)
	}
	if !state.Playing() {
		t.Errorf("Expected playing state, got %s", state.State)
	}
	if state.Game.Food != (engine.Cell{X: 0, Y: 1}) {
		t.Errorf("Expected food at (0,1), got %v", state.Game.Food)
	}
	if state.ScoreLine() != "Score: 0" {
		t.Errorf("Expected 'Score: 0', got %q", state.ScoreLine())
	}
}

func TestNewGameService_UnknownConfig(t *testing.T) {
	_, err := service.NewGameService(NewMockConfigManager(), "huge", nil)
	if err == nil {
		t.Fatal("Expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "Available configs") {
		t.Errorf("Expected available configs in error, got %v", err)
	}
}

func TestNewGameService_DefaultConfig(t *testing.T) {
	svc, err := service.NewGameService(NewMockConfigManager(), "", nil)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	state, _ := svc.State(context.Background())
	if state.GameConfig.Name != "classic" {
		t.Errorf("Expected default config, got %s", state.GameConfig.Name)
	}
}

func TestGameService_SteerAndStep(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Steer(ctx, "up"); err != nil {
		t.Fatalf("Steer failed: %v", err)
	}

	result, err := svc.Step(ctx)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !result.Ticked {
		t.Error("Expected the step to tick")
	}
	if result.Result != "continuing" {
		t.Errorf("Expected continuing, got %s", result.Result)
	}
	if result.State.Game.Head != (engine.Cell{X: 15, Y: 9}) {
		t.Errorf("Expected head (15,9), got %v", result.State.Game.Head)
	}
	if len(result.Events) != 1 || result.Events[0].Type != "move" {
		t.Errorf("Expected a single move event, got %+v", result.Events)
	}
}

func TestGameService_SteerInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Steer(context.Background(), "sideways")
	if !errors.Is(err, engine.ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestGameService_EatEvent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Food is at (0,1): go up to row 1 then left to column 0
	var result *service.StepResult
	var err error
	svc.Steer(ctx, "up")
	for i := 0; i < 9; i++ {
		if result, err = svc.Step(ctx); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	svc.Steer(ctx, "left")
	for i := 0; i < 15; i++ {
		if result, err = svc.Step(ctx); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if result.Result != "eaten" {
		t.Fatalf("Expected eaten at (0,1), got %s with head %v", result.Result, result.State.Game.Head)
	}
	if result.State.Game.Score != 1 {
		t.Errorf("Expected score 1, got %d", result.State.Game.Score)
	}

	found := false
	for _, e := range result.Events {
		if e.Type == "food_eaten" {
			found = true
			if e.Message != "Score: 1" {
				t.Errorf("Expected 'Score: 1', got %q", e.Message)
			}
		}
	}
	if !found {
		t.Error("Expected a food_eaten event")
	}
}

func TestGameService_GameOverAndPlayAgain(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result := stepUntilGameOver(t, svc)
	if !result.State.AwaitingDecision() {
		t.Fatalf("Expected awaiting decision, got %s", result.State.State)
	}

	var gameOver *service.GameEvent
	for i := range result.Events {
		if result.Events[i].Type == "game_over" {
			gameOver = &result.Events[i]
		}
	}
	if gameOver == nil {
		t.Fatal("Expected a game_over event")
	}
	if !strings.Contains(gameOver.Message, "GAME OVER") || !strings.Contains(gameOver.Message, "Final Score: 0") {
		t.Errorf("Unexpected game over message: %q", gameOver.Message)
	}

	// Steering is rejected while the prompt is open
	if err := svc.Steer(ctx, "up"); !errors.Is(err, service.ErrNotPlaying) {
		t.Errorf("Expected ErrNotPlaying, got %v", err)
	}

	// Steps do not tick while the prompt is open
	idle, err := svc.Step(ctx)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if idle.Ticked {
		t.Error("Expected no tick while awaiting decision")
	}

	state, err := svc.Decide(ctx, "c")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !state.Playing() || state.Round != 2 {
		t.Errorf("Expected round 2 playing, got round %d %s", state.Round, state.State)
	}
	if state.Game.Score != 0 || len(state.Game.Body) != 3 {
		t.Errorf("Expected fresh play-through, got score %d length %d", state.Game.Score, len(state.Game.Body))
	}
}

func TestGameService_QuitDecision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stepUntilGameOver(t, svc)

	select {
	case <-svc.Done():
		t.Fatal("Done must stay open before quitting")
	default:
	}

	state, err := svc.Decide(ctx, "quit")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if !state.Finished() {
		t.Errorf("Expected finished state, got %s", state.State)
	}

	select {
	case <-svc.Done():
	default:
		t.Error("Expected Done to be closed after quit")
	}

	if _, err := svc.Step(ctx); !errors.Is(err, service.ErrGameQuit) {
		t.Errorf("Expected ErrGameQuit, got %v", err)
	}
}

func TestGameService_DecideErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Decide(ctx, "play_again"); !errors.Is(err, engine.ErrNoDecisionPending) {
		t.Errorf("Expected ErrNoDecisionPending, got %v", err)
	}
	if _, err := svc.Decide(ctx, "perhaps"); !errors.Is(err, engine.ErrInvalidDecision) {
		t.Errorf("Expected ErrInvalidDecision, got %v", err)
	}
}

func TestGameService_Quit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Quit(ctx); err != nil {
		t.Fatalf("Quit failed: %v", err)
	}
	// A second quit is harmless
	if err := svc.Quit(ctx); err != nil {
		t.Fatalf("Second quit failed: %v", err)
	}

	select {
	case <-svc.Done():
	default:
		t.Error("Expected Done to be closed")
	}
}

func TestGameService_SelectConfig(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.SelectConfig(ctx, "small")
	if err != nil {
		t.Fatalf("SelectConfig failed: %v", err)
	}
	if info.GridWidth != 10 || info.GridHeight != 5 {
		t.Errorf("Expected 10x5 grid, got %dx%d", info.GridWidth, info.GridHeight)
	}

	state, _ := svc.State(ctx)
	if state.GameConfig.Name != "classic" {
		t.Errorf("Config must not change mid play-through, got %s", state.GameConfig.Name)
	}
	if state.PendingConfig != "small" {
		t.Errorf("Expected pending config small, got %q", state.PendingConfig)
	}

	stepUntilGameOver(t, svc)
	state, err = svc.Decide(ctx, "play_again")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if state.ConfigName != "small" || state.Game.GridWidth != 10 {
		t.Errorf("Expected small config after restart, got %s %dx%d", state.ConfigName, state.Game.GridWidth, state.Game.GridHeight)
	}
	if state.PendingConfig != "" {
		t.Errorf("Expected no pending config, got %q", state.PendingConfig)
	}

	if _, err := svc.SelectConfig(ctx, "missing"); err == nil {
		t.Error("Expected error for unknown config")
	}
}

func TestGameService_RestartReloadsPreset(t *testing.T) {
	svc, configs := newTestService(t)
	ctx := context.Background()

	// Simulate an edit on disk picked up by the manager
	edited := engine.DefaultGameConfig()
	edited.Name = "classic edited"
	edited.TickRate = 20
	configs.configs["classic"] = edited

	stepUntilGameOver(t, svc)
	state, err := svc.Decide(ctx, "play_again")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if state.GameConfig.Name != "classic edited" {
		t.Errorf("Expected reloaded preset, got %s", state.GameConfig.Name)
	}
	if state.TickInterval.Milliseconds() != 50 {
		t.Errorf("Expected 50ms interval, got %v", state.TickInterval)
	}
}

func TestListConfigs(t *testing.T) {
	svc, _ := newTestService(t)

	configs, err := svc.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(configs))
	}
}
