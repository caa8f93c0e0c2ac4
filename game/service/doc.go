// Package service provides the business logic layer for the snake game.
//
// The service package implements:
//   - A single game controller shared by input and output goroutines
//   - Direction and decision parsing for text-based transports
//   - Per-step event reporting
//   - Configuration listing and selection
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// ConfigManager loads and lists game configurations; config.Manager implements it.
//
// Architecture:
//
// The service layer sits between the shells (terminal, desktop, MCP) and the
// game engine. The engine itself is single threaded; the service serializes
// access with a mutex so a shell may read input on one goroutine and step the
// game on another.
//
// Usage:
//
//	configMgr, _ := config.NewManager("configs")
//	gameService, err := service.NewGameService(configMgr, "classic", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.Steer(ctx, "up")
//	result, err := gameService.Step(ctx)
//	if result.State.AwaitingDecision() {
//		gameService.Decide(ctx, "play_again")
//	}
//
// Configuration Changes:
//
// A configuration selected with SelectConfig, or a preset edited on disk,
// takes effect when the player chooses to play again. A running play-through
// never changes size or speed.
package service
