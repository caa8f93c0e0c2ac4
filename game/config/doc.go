// Package config provides configuration management for the snake game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation through the engine package
//   - Default configuration management
//   - Configuration discovery and listing
//   - Reloading presets when files in the directory change
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Window size and cell size, which fix the board dimensions
//   - Tick rate in steps per second
//   - An optional random seed for reproducible food placement
//   - Text templates for the score line and the game-over overlay
//
// Available Configurations:
//   - classic: 600x400 window, 20 pixel cells (30x20 board), 10 ticks per second
//   - compact: 20x15 board sized for an 80x24 terminal
//   - widescreen: 48x27 board at 12 ticks per second
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("compact")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// Pick up edits made while the game runs
//	manager.Watch(ctx, func(name string) {
//		log.Printf("preset %s changed", name)
//	})
//
// A manager created with an empty directory serves the built-in classic
// configuration only.
package config
