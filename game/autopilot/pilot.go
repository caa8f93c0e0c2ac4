// Package autopilot steers a snake without a human player. It is used by the
// simulate command and the terminal shell's demo mode.
package autopilot

import (
	"log"

	"github.com/wricardo/mcp-training/snake/game/engine"
)

// Pilot picks one direction per tick from a snapshot
type Pilot struct {
	visited map[engine.Cell]int
	round   int
	debug   bool
}

// New creates a pilot. With debug set it logs its fallbacks.
func New(debug bool) *Pilot {
	return &Pilot{
		visited: make(map[engine.Cell]int),
		debug:   debug,
	}
}

// Reset forgets the cells visited in previous play-throughs
func (p *Pilot) Reset() {
	clear(p.visited)
}

// Next returns the direction for the next tick. It follows the shortest safe
// path to the food, and without one it moves toward the most open space. It
// never returns the reverse of the current heading.
func (p *Pilot) Next(snap engine.Snapshot) engine.Direction {
	if snap.Round != p.round {
		p.round = snap.Round
		p.Reset()
	}

	current, err := engine.ParseDirection(snap.Direction)
	if err != nil {
		current = engine.Right
	}
	p.visited[snap.Head]++

	blocked := make(map[engine.Cell]bool, len(snap.Body))
	for _, c := range snap.Body {
		blocked[c] = true
	}
	grid := snap.Grid()

	var target *engine.Cell
	if snap.HasFood {
		if dir, ok := p.bfs(snap.Head, snap.Food, current, grid, blocked); ok {
			return dir
		}
		if p.debug {
			log.Printf("autopilot: no path from %v to food at %v", snap.Head, snap.Food)
		}
		target = &snap.Food
	}

	return p.exploreMove(snap.Head, current, target, grid, blocked)
}

// bfs finds the first step of a shortest path from start to goal
func (p *Pilot) bfs(start, goal engine.Cell, current engine.Direction, grid engine.Grid, blocked map[engine.Cell]bool) (engine.Direction, bool) {
	type queueItem struct {
		pos   engine.Cell
		first engine.Direction
	}

	var queue []queueItem
	visited := map[engine.Cell]bool{start: true}

	for _, dir := range engine.Directions {
		if dir.IsOpposite(current) {
			continue
		}
		next := start.Add(dir)
		if !isFree(next, grid, blocked) {
			continue
		}
		if next == goal {
			return dir, true
		}
		visited[next] = true
		queue = append(queue, queueItem{pos: next, first: dir})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for _, dir := range engine.Directions {
			next := item.pos.Add(dir)
			if visited[next] || !isFree(next, grid, blocked) {
				continue
			}
			if next == goal {
				return item.first, true
			}
			visited[next] = true
			queue = append(queue, queueItem{pos: next, first: item.first})
		}
	}

	return engine.NoDirection, false
}

// exploreMove picks the safe move with the most reachable space. Ties go to
// less visited cells, then to cells closer to target (if any), then to the
// current heading.
func (p *Pilot) exploreMove(head engine.Cell, current engine.Direction, target *engine.Cell, grid engine.Grid, blocked map[engine.Cell]bool) engine.Direction {
	type dirScore struct {
		dir      engine.Direction
		space    int
		visits   int
		distance int
	}

	var best *dirScore
	for _, dir := range engine.Directions {
		if dir.IsOpposite(current) {
			continue
		}
		next := head.Add(dir)
		if !isFree(next, grid, blocked) {
			continue
		}

		opt := dirScore{dir: dir, space: floodFill(next, grid, blocked), visits: p.visited[next]}
		if target != nil {
			opt.distance = engine.ManhattanDistance(next, *target)
		}
		switch {
		case best == nil:
			best = &opt
		case opt.space != best.space:
			if opt.space > best.space {
				best = &opt
			}
		case opt.visits != best.visits:
			if opt.visits < best.visits {
				best = &opt
			}
		case opt.distance != best.distance:
			if opt.distance < best.distance {
				best = &opt
			}
		case opt.dir == current:
			best = &opt
		}
	}

	if best == nil {
		if p.debug {
			log.Printf("autopilot: boxed in at %v", head)
		}
		return current
	}
	return best.dir
}

// floodFill counts the free cells reachable from start
func floodFill(start engine.Cell, grid engine.Grid, blocked map[engine.Cell]bool) int {
	seen := map[engine.Cell]bool{start: true}
	stack := []engine.Cell{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dir := range engine.Directions {
			next := c.Add(dir)
			if seen[next] || !isFree(next, grid, blocked) {
				continue
			}
			seen[next] = true
			stack = append(stack, next)
		}
	}
	return len(seen)
}

func isFree(c engine.Cell, grid engine.Grid, blocked map[engine.Cell]bool) bool {
	return grid.Contains(c) && !blocked[c]
}
