package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/snake/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:         "Test Config",
		Description:  "Test configuration",
		WindowWidth:  600,
		WindowHeight: 400,
		CellSize:     20,
		TickRate:     10,
		Messages:     engine.DefaultMessages(),
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()

		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected default 'Classic', got '%s'", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := t.TempDir()

		other := createValidConfig()
		other.Name = "Other"
		writeConfigFile(t, dir, "other", other)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("NewManager should succeed without classic.json, got error: %v", err)
		}

		// Falls back to the first available preset
		if manager.GetDefault().Name != "Other" {
			t.Errorf("Expected default 'Other', got '%s'", manager.GetDefault().Name)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got error: %v", err)
		}
		if err := engine.ValidateGameConfig(manager.GetDefault()); err != nil {
			t.Errorf("Expected built-in default to be valid: %v", err)
		}
	})

	t.Run("built-in only", func(t *testing.T) {
		manager, err := NewManager("")
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		grid := manager.GetDefault().Grid()
		if grid.Width != 30 || grid.Height != 20 {
			t.Errorf("Expected 30x20 default grid, got %dx%d", grid.Width, grid.Height)
		}

		if _, err := manager.LoadConfig(DefaultConfigName); err != nil {
			t.Errorf("Expected built-in classic config, got %v", err)
		}
		if _, err := manager.LoadConfig("compact"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}

		configs, err := manager.ListConfigs()
		if err != nil {
			t.Fatalf("Failed to list configs: %v", err)
		}
		if len(configs) != 1 || configs[0].ConfigID != DefaultConfigName {
			t.Errorf("Expected only the built-in config, got %+v", configs)
		}

		if err := manager.SaveConfig("x", createValidConfig()); !errors.Is(err, ErrNoConfigDir) {
			t.Errorf("Expected ErrNoConfigDir, got %v", err)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "classic", createValidConfig())

	fast := createValidConfig()
	fast.Name = "Fast"
	fast.TickRate = 20
	writeConfigFile(t, dir, "fast", fast)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("fast")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Fast" {
			t.Errorf("Expected config name 'Fast', got '%s'", config.Name)
		}
		if config.TickRate != 20 {
			t.Errorf("Expected tick rate 20, got %d", config.TickRate)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("fast.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Fast" {
			t.Errorf("Expected config name 'Fast', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("fast")
		config2, err := manager.LoadConfig("fast")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if err != ErrConfigNotFound {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalid := createValidConfig()
		invalid.TickRate = 0
		writeConfigFile(t, dir, "invalid", invalid)

		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed json", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := manager.LoadConfig("broken"); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	small := createValidConfig()
	small.Name = "Small"
	small.WindowWidth = 200
	small.WindowHeight = 100
	writeConfigFile(t, dir, "small", small)
	writeConfigFile(t, dir, "classic", createValidConfig())

	invalid := createValidConfig()
	invalid.Name = ""
	writeConfigFile(t, dir, "invalid", invalid)

	// Non-JSON files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}

	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "classic" || configs[1].ConfigID != "small" {
		t.Errorf("Expected sorted ids [classic small], got [%s %s]", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[1].GridWidth != 10 || configs[1].GridHeight != 5 {
		t.Errorf("Expected 10x5 grid for small, got %dx%d", configs[1].GridWidth, configs[1].GridHeight)
	}
	if configs[1].Filename != "small.json" {
		t.Errorf("Expected filename small.json, got %s", configs[1].Filename)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	fast := createValidConfig()
	fast.Name = "Fast"
	fast.TickRate = 30
	writeConfigFile(t, dir, "fast", fast)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("fast"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "Fast" {
		t.Errorf("Expected default 'Fast', got '%s'", manager.GetDefault().Name)
	}

	// The selected default survives a refresh
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	if manager.GetDefault().Name != "Fast" {
		t.Errorf("Expected default 'Fast' after refresh, got '%s'", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); err != ErrConfigNotFound {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	updated := createValidConfig()
	updated.Name = "Updated"
	writeConfigFile(t, dir, "classic", updated)

	// Cached copy is still served until the cache is refreshed
	config, _ := manager.LoadConfig("classic")
	if config.Name != "Test Config" {
		t.Errorf("Expected cached name 'Test Config', got '%s'", config.Name)
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	config, _ = manager.LoadConfig("classic")
	if config.Name != "Updated" {
		t.Errorf("Expected refreshed name 'Updated', got '%s'", config.Name)
	}
	if manager.GetDefault().Name != "Updated" {
		t.Errorf("Expected default 'Updated', got '%s'", manager.GetDefault().Name)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	custom := createValidConfig()
	custom.Name = "Custom"
	if err := manager.SaveConfig("custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
		t.Errorf("Expected custom.json on disk: %v", err)
	}

	loaded, err := engine.LoadGameConfig(filepath.Join(dir, "custom.json"))
	if err != nil {
		t.Fatalf("Saved config does not load: %v", err)
	}
	if loaded.Name != "Custom" {
		t.Errorf("Expected 'Custom', got '%s'", loaded.Name)
	}

	invalid := createValidConfig()
	invalid.CellSize = 0
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestManager_Watch(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	if err := manager.Watch(ctx, func(name string) { changed <- name }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	updated := createValidConfig()
	updated.Name = "Edited"
	writeConfigFile(t, dir, "classic", updated)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-changed:
			if name != "classic" {
				continue
			}
			if manager.GetDefault().Name == "Edited" {
				return
			}
		case <-deadline:
			t.Fatal("Timed out waiting for config change notification")
		}
	}
}

func TestManager_WatchWithoutDir(t *testing.T) {
	manager, err := NewManager("")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if err := manager.Watch(context.Background(), nil); !errors.Is(err, ErrNoConfigDir) {
		t.Errorf("Expected ErrNoConfigDir, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeConfigFile(t, dir, "other", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "classic"
			if i%2 == 0 {
				name = "other"
			}
			if _, err := manager.LoadConfig(name); err != nil {
				t.Errorf("LoadConfig failed: %v", err)
			}
			if i%5 == 0 {
				manager.RefreshCache()
			}
			manager.GetDefault()
		}(i)
	}
	wg.Wait()
}
