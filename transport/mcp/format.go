package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/service"
)

const (
	headRune  = 'H'
	bodyRune  = 'o'
	foodRune  = '*'
	emptyRune = '.'
)

// formatBoard draws the grid one row per line
func formatBoard(game engine.Snapshot) string {
	if game.GridWidth <= 0 || game.GridHeight <= 0 {
		return ""
	}

	rows := make([][]rune, game.GridHeight)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(string(emptyRune), game.GridWidth))
	}

	put := func(c engine.Cell, r rune) {
		if c.X >= 0 && c.X < game.GridWidth && c.Y >= 0 && c.Y < game.GridHeight {
			rows[c.Y][c.X] = r
		}
	}

	if game.HasFood {
		put(game.Food, foodRune)
	}
	for i := len(game.Body) - 1; i >= 0; i-- {
		if i == 0 {
			put(game.Body[i], headRune)
		} else {
			put(game.Body[i], bodyRune)
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatState formats the full state for an agent
func formatState(state *service.StateInfo) string {
	game := state.Game

	var result strings.Builder
	result.WriteString(fmt.Sprintf("🐍 Snake - %s (round %d)\n\n", state.ConfigName, state.Round))
	result.WriteString(fmt.Sprintf("%s\n", state.ScoreLine()))
	result.WriteString(fmt.Sprintf("Length: %d\n", len(game.Body)))
	result.WriteString(fmt.Sprintf("Head: (%d,%d) heading %s\n", game.Head.X, game.Head.Y, game.Direction))
	if game.HasFood {
		result.WriteString(fmt.Sprintf("Food: (%d,%d)\n", game.Food.X, game.Food.Y))
	} else {
		result.WriteString("Food: none (board is full)\n")
	}
	result.WriteString(fmt.Sprintf("Grid: %dx%d, Ticks: %d\n", game.GridWidth, game.GridHeight, game.Ticks))
	if state.PendingConfig != "" {
		result.WriteString(fmt.Sprintf("Next play-through uses: %s\n", state.PendingConfig))
	}
	result.WriteString("\n")
	result.WriteString(formatBoard(game))

	switch {
	case state.AwaitingDecision():
		messages := state.GameConfig.Messages
		result.WriteString(fmt.Sprintf("\n💀 %s\n%s\n", messages.GameOver, state.FinalScoreLine()))
		result.WriteString("Call decide with play_again or quit.\n")
	case state.Finished():
		result.WriteString(fmt.Sprintf("\nGame ended. %s\n", state.FinalScoreLine()))
	}

	return result.String()
}

// formatStepResults summarizes a run of steps and shows the final state
func formatStepResults(results []*service.StepResult) string {
	if len(results) == 0 {
		return "No steps taken"
	}

	last := results[len(results)-1]
	if !last.Ticked && len(results) == 1 {
		return fmt.Sprintf("Nothing moved: the game is not running.\n\n%s", formatState(last.State))
	}

	ticked := 0
	var result strings.Builder
	for _, r := range results {
		if !r.Ticked {
			continue
		}
		ticked++
		for _, event := range r.Events {
			if event.Type == "move" {
				continue
			}
			result.WriteString(fmt.Sprintf("• %s\n", event.Message))
		}
	}

	header := fmt.Sprintf("Advanced %d step(s), last result: %s\n", ticked, last.Result)
	return header + result.String() + "\n" + formatState(last.State)
}
