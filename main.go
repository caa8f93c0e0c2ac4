// Command snake plays a single-player snake game.
//
// It supports several front ends on top of the same rules engine:
//  1. "desktop" (default) – an ebiten window
//  2. "terminal" – a tcell full-screen terminal game
//  3. "mcp" – an MCP stdio server so AI agents can play step by step
//  4. "simulate" – headless autopilot games that print their scores
//  5. "configs" – lists the available presets
//
// Flags control the config directory and preset, the random seed, debug
// logging, sound and where logs go. Every global flag can also be set from a
// SNAKE_* environment variable or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/snake/game/autopilot"
	"github.com/wricardo/mcp-training/snake/game/config"
	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/loop"
	"github.com/wricardo/mcp-training/snake/game/service"
	"github.com/wricardo/mcp-training/snake/transport/audio"
	"github.com/wricardo/mcp-training/snake/transport/desktop"
	"github.com/wricardo/mcp-training/snake/transport/mcp"
	"github.com/wricardo/mcp-training/snake/transport/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snake"
)

const (
	defaultConfigDir = "configs"
	maxLogSize       = 10 * 1024 * 1024
	cueVolume        = 0.5
)

// main loads .env, builds the command tree and runs the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatalf("%s failed: %v", AppName, err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	autopilotFlag := func() cli.Flag {
		return &cli.BoolFlag{Name: "autopilot", Usage: "let the autopilot steer"}
	}

	return &cli.Command{
		Name:    "snake",
		Usage:   "single-player snake",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   defaultConfigDir,
				Usage:   "directory containing game presets",
				Sources: cli.EnvVars("SNAKE_CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "preset to start with (defaults to classic)",
				Sources: cli.EnvVars("SNAKE_CONFIG"),
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "random seed for food placement (overrides the preset)",
				Sources: cli.EnvVars("SNAKE_SEED"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("SNAKE_DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "mute",
				Usage:   "disable sound",
				Sources: cli.EnvVars("SNAKE_MUTE"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file",
				Sources: cli.EnvVars("SNAKE_LOG_FILE"),
			},
		},
		Action: runDesktop,
		Commands: []*cli.Command{
			{
				Name:   "desktop",
				Usage:  "play in a window",
				Flags:  []cli.Flag{autopilotFlag()},
				Action: runDesktop,
			},
			{
				Name:   "terminal",
				Usage:  "play in the terminal",
				Flags:  []cli.Flag{autopilotFlag()},
				Action: runTerminal,
			},
			{
				Name:   "mcp",
				Usage:  "serve the game to AI agents over MCP stdio",
				Action: runMCP,
			},
			{
				Name:  "simulate",
				Usage: "play headless autopilot games and print the scores",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Value: 10, Usage: "number of games"},
					&cli.IntFlag{Name: "max-ticks", Value: 5000, Usage: "tick limit per game"},
				},
				Action: runSimulate,
			},
			{
				Name:   "configs",
				Usage:  "list available presets",
				Action: runConfigs,
			},
		},
	}
}

// setLogFlags adds file and line to log lines in debug mode
func setLogFlags(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// setupLogging points the standard logger at path, rotating it once it
// grows past maxLogSize. An empty path discards all log output.
func setupLogging(path string, debug bool) (*os.File, error) {
	setLogFlags(debug)

	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// setupStderrLogging keeps logs on stderr unless --log-file is given
func setupStderrLogging(cmd *cli.Command) (*os.File, error) {
	if path := cmd.String("log-file"); path != "" {
		return setupLogging(path, cmd.Bool("debug"))
	}
	setLogFlags(cmd.Bool("debug"))
	log.SetOutput(os.Stderr)
	return nil, nil
}

// newConfigManager opens the config directory. When the default directory is
// missing the built-in classic preset is used instead.
func newConfigManager(dir string, explicit bool) (*config.Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) && !explicit {
		log.Printf("Config directory %s not found, using built-in presets", dir)
		return config.NewManager("")
	}
	return config.NewManager(dir)
}

// initializeServices wires the config manager and the game service. It
// starts watching the config directory so edited presets apply from the next
// play-through.
func initializeServices(ctx context.Context, cmd *cli.Command) (service.GameService, error) {
	configManager, err := newConfigManager(cmd.String("config-dir"), cmd.IsSet("config-dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if configManager.ConfigDir() != "" {
		err := configManager.Watch(ctx, func(name string) {
			log.Printf("Preset %s changed, it applies from the next play-through", name)
		})
		if err != nil {
			log.Printf("Warning: not watching presets: %v", err)
		}
	}

	var rng engine.RandomSource
	if cmd.IsSet("seed") {
		rng = engine.NewRandomSource(cmd.Int64("seed"))
	}

	gameService, err := service.NewGameService(configManager, cmd.String("config"), rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create game service: %w", err)
	}
	return gameService, nil
}

// newCues opens the speaker unless muted. Audio failures fall back to silence.
func newCues(cmd *cli.Command) (loop.Cues, func()) {
	if cmd.Bool("mute") {
		return audio.Muted{}, func() {}
	}
	player, err := audio.NewPlayer(cueVolume)
	if err != nil {
		log.Printf("Sound disabled: %v", err)
		return audio.Muted{}, func() {}
	}
	return player, player.Close
}

func runDesktop(ctx context.Context, cmd *cli.Command) error {
	logFile, err := setupStderrLogging(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gameService, err := initializeServices(ctx, cmd)
	if err != nil {
		return err
	}

	cues, closeCues := newCues(cmd)
	defer closeCues()

	opts := []desktop.Option{desktop.WithCues(cues)}
	if cmd.Bool("autopilot") {
		opts = append(opts, desktop.WithPilot(autopilot.New(cmd.Bool("debug"))))
	}

	log.Printf("Starting %s v%s (mode: desktop)", AppName, Version)
	return desktop.Run(ctx, gameService, opts...)
}

func runTerminal(ctx context.Context, cmd *cli.Command) error {
	// The screen owns the terminal, so logs go to a file or nowhere
	logFile, err := setupLogging(cmd.String("log-file"), cmd.Bool("debug"))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gameService, err := initializeServices(ctx, cmd)
	if err != nil {
		return err
	}

	cues, closeCues := newCues(cmd)
	defer closeCues()

	opts := []loop.Option{loop.WithCues(cues)}
	if cmd.Bool("autopilot") {
		opts = append(opts, loop.WithPilot(autopilot.New(cmd.Bool("debug"))))
	}

	log.Printf("Starting %s v%s (mode: terminal)", AppName, Version)
	if err := terminal.Run(ctx, nil, gameService, opts...); err != nil {
		return err
	}

	state, err := gameService.State(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, state.FinalScoreLine())
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol, so logs stay on stderr
	logFile, err := setupStderrLogging(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gameService, err := initializeServices(ctx, cmd)
	if err != nil {
		return err
	}

	log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)
	if err := mcp.NewServer(gameService).ServeStdio(); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	logFile, err := setupStderrLogging(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	configManager, err := newConfigManager(cmd.String("config-dir"), cmd.IsSet("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	sim := simulation{
		configs:    configManager,
		configName: cmd.String("config"),
		seed:       cmd.Int64("seed"),
		games:      cmd.Int("games"),
		maxTicks:   cmd.Int("max-ticks"),
		debug:      cmd.Bool("debug"),
	}
	return sim.run(ctx, cmd.Root().Writer)
}

func runConfigs(ctx context.Context, cmd *cli.Command) error {
	configManager, err := newConfigManager(cmd.String("config-dir"), cmd.IsSet("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	return listConfigs(configManager, cmd.Root().Writer)
}

// listConfigs prints one row per preset
func listConfigs(configs service.ConfigManager, w io.Writer) error {
	infos, err := configs.ListConfigs()
	if err != nil {
		return fmt.Errorf("failed to list configs: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGRID\tTICKS/S\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%s\n",
			info.ConfigID, info.Name, info.GridWidth, info.GridHeight, info.TickRate, info.Description)
	}
	return tw.Flush()
}

// simulation plays autopilot games without a clock or a screen
type simulation struct {
	configs    service.ConfigManager
	configName string
	seed       int64
	games      int
	maxTicks   int
	debug      bool
}

// gameResult is the outcome of one simulated game
type gameResult struct {
	score   int
	ticks   int
	crashed bool
}

func (s simulation) run(ctx context.Context, w io.Writer) error {
	if s.games < 1 {
		return errors.New("games must be at least 1")
	}

	pilot := autopilot.New(s.debug)
	total, best := 0, 0
	for i := 0; i < s.games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		seed := s.seed
		if seed != 0 {
			seed += int64(i)
		}

		pilot.Reset()
		result, err := s.play(ctx, pilot, engine.NewRandomSource(seed))
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}

		outcome := "crashed"
		if !result.crashed {
			outcome = "tick limit"
		}
		fmt.Fprintf(w, "Game %d: score %d after %d ticks (%s)\n", i+1, result.score, result.ticks, outcome)

		total += result.score
		if result.score > best {
			best = result.score
		}
	}

	fmt.Fprintf(w, "Games: %d, best: %d, average: %.2f\n", s.games, best, float64(total)/float64(s.games))
	return nil
}

func (s simulation) play(ctx context.Context, pilot *autopilot.Pilot, rng engine.RandomSource) (gameResult, error) {
	svc, err := service.NewGameService(s.configs, s.configName, rng)
	if err != nil {
		return gameResult{}, err
	}
	defer svc.Quit(ctx)

	state, err := svc.State(ctx)
	if err != nil {
		return gameResult{}, err
	}

	for state.Game.Ticks < s.maxTicks && state.Playing() {
		if err := svc.Steer(ctx, pilot.Next(state.Game).String()); err != nil {
			return gameResult{}, err
		}
		result, err := svc.Step(ctx)
		if err != nil {
			return gameResult{}, err
		}
		state = result.State
	}

	return gameResult{
		score:   state.Game.Score,
		ticks:   state.Game.Ticks,
		crashed: state.AwaitingDecision(),
	}, nil
}
