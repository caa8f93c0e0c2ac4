package loop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wricardo/mcp-training/snake/game/engine"
	"github.com/wricardo/mcp-training/snake/game/service"
)

// CommandKind identifies what a shell asks the runner to do
type CommandKind int

const (
	CommandSteer CommandKind = iota
	CommandDecide
	CommandQuit
	CommandRedraw
)

// Command is one input from a shell. Value holds the direction or decision.
type Command struct {
	Kind  CommandKind
	Value string
}

// Steer builds a steering command
func Steer(direction string) Command {
	return Command{Kind: CommandSteer, Value: direction}
}

// Decide builds an answer to the game-over prompt
func Decide(decision string) Command {
	return Command{Kind: CommandDecide, Value: decision}
}

// Quit builds a quit command
func Quit() Command {
	return Command{Kind: CommandQuit}
}

// Redraw asks for the current state to be rendered again, e.g. after a resize
func Redraw() Command {
	return Command{Kind: CommandRedraw}
}

// Renderer draws a state
type Renderer interface {
	Render(state *service.StateInfo) error
}

// Cues plays feedback for game events
type Cues interface {
	FoodEaten()
	GameOver()
}

// Pilot chooses a direction every tick in place of the player
type Pilot interface {
	Next(snap engine.Snapshot) engine.Direction
}

// Ticker delivers the fixed cadence. It is satisfied by a wrapped time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Option configures a Runner
type Option func(*Runner)

// WithCues plays cues on eat and game over
func WithCues(cues Cues) Option {
	return func(r *Runner) { r.cues = cues }
}

// WithPilot lets a pilot steer before every tick
func WithPilot(pilot Pilot) Option {
	return func(r *Runner) { r.pilot = pilot }
}

// WithTicker replaces the clock, mainly for tests
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(r *Runner) { r.newTicker = newTicker }
}

// Runner drives a GameService at its configured tick rate, applying commands
// between ticks and rendering after every change
type Runner struct {
	service   service.GameService
	renderer  Renderer
	commands  <-chan Command
	cues      Cues
	pilot     Pilot
	newTicker func(time.Duration) Ticker
	interval  time.Duration
}

// NewRunner creates a runner reading commands from the given channel
func NewRunner(svc service.GameService, renderer Renderer, commands <-chan Command, opts ...Option) *Runner {
	r := &Runner{
		service:   svc,
		renderer:  renderer,
		commands:  commands,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the event loop. It returns nil when the player quits, the
// command channel closes or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	state, err := r.service.State(ctx)
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	if err := r.render(state); err != nil {
		return err
	}

	r.interval = state.TickInterval
	ticker := r.newTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-r.service.Done():
			return nil

		case cmd, ok := <-r.commands:
			if !ok {
				return nil
			}
			state, err := r.handle(ctx, cmd)
			if err != nil {
				return err
			}
			if state != nil && state.TickInterval != r.interval && state.TickInterval > 0 {
				r.interval = state.TickInterval
				ticker.Reset(r.interval)
			}

		case <-ticker.C():
			if err := r.tick(ctx); err != nil {
				if errors.Is(err, service.ErrGameQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// handle applies one command and renders the state when it changed
func (r *Runner) handle(ctx context.Context, cmd Command) (*service.StateInfo, error) {
	state, err := Dispatch(ctx, r.service, cmd)
	if err != nil || state == nil || state.Finished() {
		return state, err
	}
	return state, r.render(state)
}

// Dispatch applies a command to svc. It returns the state after a decision
// or a redraw request, and nil when there is nothing new to draw. Commands
// that do not fit the current state are logged and dropped.
func Dispatch(ctx context.Context, svc service.GameService, cmd Command) (*service.StateInfo, error) {
	switch cmd.Kind {
	case CommandSteer:
		if err := svc.Steer(ctx, cmd.Value); err != nil {
			if !errors.Is(err, service.ErrNotPlaying) {
				log.Printf("Ignoring steer %q: %v", cmd.Value, err)
			}
		}
		return nil, nil

	case CommandDecide:
		state, err := svc.Decide(ctx, cmd.Value)
		if err != nil {
			if !errors.Is(err, engine.ErrNoDecisionPending) {
				log.Printf("Ignoring decision %q: %v", cmd.Value, err)
			}
			return nil, nil
		}
		return state, nil

	case CommandQuit:
		return nil, svc.Quit(ctx)

	case CommandRedraw:
		return svc.State(ctx)
	}

	log.Printf("Unknown command kind: %d", cmd.Kind)
	return nil, nil
}

// tick advances the game once and renders the result
func (r *Runner) tick(ctx context.Context) error {
	if r.pilot != nil {
		state, err := r.service.State(ctx)
		if err != nil {
			return err
		}
		if state.Playing() {
			dir := r.pilot.Next(state.Game)
			if err := r.service.Steer(ctx, dir.String()); err != nil {
				log.Printf("Pilot steer failed: %v", err)
			}
		}
	}

	result, err := r.service.Step(ctx)
	if err != nil {
		return err
	}
	if !result.Ticked {
		return nil
	}

	if r.cues != nil {
		switch result.Result {
		case engine.Eaten.String():
			r.cues.FoodEaten()
		case engine.GameOver.String():
			r.cues.GameOver()
		}
	}

	return r.render(result.State)
}

func (r *Runner) render(state *service.StateInfo) error {
	if err := r.renderer.Render(state); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
