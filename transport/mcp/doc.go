// Package mcp serves the snake game to AI agents over the Model Context
// Protocol.
//
// The server runs in-process on top of a service.GameService and talks MCP
// over stdio. It never advances the game on a timer: every step tool call
// moves the snake by the requested number of ticks and returns the new board.
//
// MCP Tools:
//
//   - game_state: Current board as text with score, head and food positions
//   - steer: Queue a direction for the next step
//   - step: Advance one or more ticks, optionally steering first
//   - decide: Answer the game-over prompt with play_again or quit
//   - list_configs: List available game configurations
//   - select_config: Pick the configuration for the next play-through
//   - board_image: The board as a PNG image
//   - game_instructions: The full rules
//
// Board Legend:
//
// Text boards use H for the head, o for the body, * for food and . for empty
// cells, one grid row per line with (0,0) in the top-left corner.
package mcp
