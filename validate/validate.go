// Command validate provides a small CLI that validates game preset JSON files
// in a configs directory (../configs by default). It checks:
//   - JSON structure and the rules enforced when a preset is loaded
//   - Window dimensions that are an exact multiple of the cell size
//   - Whether the board fits a standard 80x24 terminal
//
// For valid presets it also reports the board size, the highest possible
// score, how long the snake takes to cross the board and the terminal size
// needed to play it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/transport/terminal"
)

const (
	standardTerminalWidth  = 80
	standardTerminalHeight = 24
)

// ValidationResult captures the outcome of validating a single file.
// Errors holds problems that make the preset unusable; Warnings and Info are
// reported but do not fail validation.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.ParseGameConfig(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Leftover pixels are never drawn
	if config.WindowWidth%config.CellSize != 0 || config.WindowHeight%config.CellSize != 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Window %dx%d is not a multiple of cell_size %d; the remainder stays empty",
			config.WindowWidth, config.WindowHeight, config.CellSize))
	}

	grid := config.Grid()
	area := grid.Width * grid.Height

	termW, termH := terminal.RequiredSize(grid.Width, grid.Height)
	if termW > standardTerminalWidth || termH > standardTerminalHeight {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Needs a %dx%d terminal, larger than %dx%d",
			termW, termH, standardTerminalWidth, standardTerminalHeight))
	}

	crossing := time.Duration(grid.Width) * config.TickInterval()
	seed := "clock"
	if config.Seed != 0 {
		seed = fmt.Sprintf("%d", config.Seed)
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Grid: %dx%d (%d cells)", grid.Width, grid.Height, area),
		fmt.Sprintf("✓ Max score: %d", area-engine.StartingBodyLen),
		fmt.Sprintf("✓ Speed: %d ticks/s, %s to cross the board", config.TickRate, crossing),
		fmt.Sprintf("✓ Terminal: %dx%d", termW, termH),
		fmt.Sprintf("✓ Seed: %s", seed),
	)

	return result
}

// main validates every *.json file in the given directory (../configs by
// default), printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No presets found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Println("  ⚠️  " + warning)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
