package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/render"
	"github.com/wricardo/mcp-training/snake/game/service"
)

const (
	// maxStepsPerCall bounds the count argument of the step tool
	maxStepsPerCall = 100
	// maxImageWidth bounds the width argument of the board_image tool
	maxImageWidth = 4096
)

// Server exposes a GameService as MCP tools. The game only advances when an
// agent calls step, one tick per requested step.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for svc with all tools registered
func NewServer(svc service.GameService) *Server {
	s := &Server{service: svc}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Snake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake - MCP Interface

GAME OBJECTIVE:
Steer the snake (H) to the food (*). Each food grows the snake by one segment
and adds one point. Hitting a wall or your own body ends the play-through.

AVAILABLE TOOLS:
- game_state: Get the board, score and prompt state
- steer: Queue a direction (up/down/left/right) for the next step
- step: Advance the game one or more ticks, optionally steering first
- decide: Answer the game-over prompt with play_again or quit
- list_configs: List available configurations
- select_config: Pick the configuration used from the next play-through
- board_image: Get the board as a PNG image
- game_instructions: Get the full rules

NOTE: The game does not move on its own here. Nothing happens between step calls.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	directionProperty := map[string]interface{}{
		"type":        "string",
		"enum":        []string{"up", "down", "left", "right"},
		"description": "Direction for the next step",
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and prompt state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "steer",
		Description: "Queue a direction for the next step. Reversing onto the snake's own neck is ignored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": directionProperty,
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are turning (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleSteer)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the game by count ticks (default 1). Stops early when the play-through ends.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": directionProperty,
				"count": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"maximum":     maxStepsPerCall,
					"description": "Number of ticks to advance",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind these steps",
				},
			},
		},
	}, s.handleStep)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "decide",
		Description: "Answer the game-over prompt",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"decision": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"play_again", "quit"},
					"description": "play_again starts a fresh play-through, quit ends the game",
				},
			},
			Required: []string{"decision"},
		},
	}, s.handleDecide)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListConfigs)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "select_config",
		Description: "Select the configuration used from the next play-through on",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Config ID from list_configs",
				},
			},
			Required: []string{"config_name"},
		},
	}, s.handleSelectConfig)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "board_image",
		Description: "Render the board as a PNG image",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Image width in pixels (optional, defaults to the window width)",
					"minimum":     0,
					"maximum":     maxImageWidth,
				},
			},
		},
	}, s.handleBoardImage)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin and stdout until stdin closes
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// arguments returns the tool arguments, or an empty map when there are none
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// Tool handlers

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.service.State(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatState(state)), nil
}

func (s *Server) handleSteer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)

	if err := s.service.Steer(ctx, direction); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Queued %s for the next step", direction)), nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)

	count := 1
	if c, ok := args["count"].(float64); ok {
		count = int(c)
	}
	if count < 1 || count > maxStepsPerCall {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 1 and %d", maxStepsPerCall)), nil
	}

	if direction != "" {
		if err := s.service.Steer(ctx, direction); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var results []*service.StepResult
	for i := 0; i < count; i++ {
		result, err := s.service.Step(ctx)
		if err != nil {
			if errors.Is(err, service.ErrGameQuit) {
				return mcp.NewToolResultError("The game has ended. Start the server again to play."), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		results = append(results, result)
		if !result.Ticked || result.Result == engine.GameOver.String() {
			break
		}
	}

	return mcp.NewToolResultText(formatStepResults(results)), nil
}

func (s *Server) handleDecide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	decision, _ := args["decision"].(string)

	state, err := s.service.Decide(ctx, decision)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if state.Finished() {
		return mcp.NewToolResultText(fmt.Sprintf("Game ended. %s", state.FinalScoreLine())), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Round %d started\n\n%s", state.Round, formatState(state))), nil
}

func (s *Server) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.service.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		result.WriteString(fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Speed: %d ticks/s\n\n",
			config.ConfigID, config.Name, config.Description, config.GridWidth, config.GridHeight, config.TickRate))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleSelectConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configName, _ := args["config_name"].(string)

	info, err := s.service.SelectConfig(ctx, configName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Selected %s (%dx%d). It applies from the next play-through.",
		info.ConfigID, info.GridWidth, info.GridHeight)), nil
}

func (s *Server) handleBoardImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	width := 0
	if w, ok := args["width"].(float64); ok {
		width = int(w)
	}
	if width < 0 || width > maxImageWidth {
		return mcp.NewToolResultError(fmt.Sprintf("width must be between 0 and %d", maxImageWidth)), nil
	}

	state, err := s.service.State(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	raster := render.NewRaster(state.GameConfig.Messages)
	if err := raster.EncodePNG(&buf, state.Game, width); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data := base64.StdEncoding.EncodeToString(buf.Bytes())
	return mcp.NewToolResultImage(state.ScoreLine(), data, "image/png"), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `🐍 Snake - Complete Instructions

GAME OBJECTIVE:
Eat as much food as you can without crashing.

GAME MECHANICS:
• The snake starts with 3 segments in the middle of the board, heading right
• Every step moves the head one cell in the current direction
• Eating food adds one point; the snake grows by one segment on the following step
• New food appears on a random free cell right after the old one is eaten

GRID LEGEND:
• H = Snake head
• o = Snake body
• * = Food
• . = Empty cell

COORDINATES:
• (0,0) is the top-left cell; x grows to the right, y grows downward

STEERING:
• Only one direction counts per step; the last one queued wins
• A direction that reverses onto the snake's neck is ignored
• Moving into the cell the tail is leaving is safe, unless the snake is growing

GAME OVER:
• Leaving the board or running into your own body ends the play-through
• Answer the prompt with decide: play_again starts a fresh snake, quit ends the game

Good luck!`
