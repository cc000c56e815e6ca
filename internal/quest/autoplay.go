package quest

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-quest/internal/levels/chase"
	"github.com/vovakirdan/tui-quest/internal/levels/maze"
	"github.com/vovakirdan/tui-quest/internal/levels/typist"
)

// ErrNoRoute is returned when the maze has no collision-free route.
var ErrNoRoute = errors.New("maze has no route from start to goal")

// Layouts are the bounding boxes a scripted run plays against.
type Layouts struct {
	Chase chase.Layout
	Maze  maze.Layout
}

// Autoplay drives c from Start to Victory with perfect input. Wait is
// called between inputs with the time a human would have spent; pass
// nil to play instantly.
func Autoplay(c *Controller, l Layouts, wait func(time.Duration)) error {
	if wait == nil {
		wait = func(time.Duration) {}
	}

	if !c.Start() {
		return fmt.Errorf("autoplay: session is on %s, not start", c.Level())
	}

	for i := 0; c.Level() == Level1; i++ {
		if i >= chase.TapsRequired {
			return fmt.Errorf("autoplay: %s did not finish", Level1)
		}
		wait(300 * time.Millisecond)
		c.Chase(chase.Event{Kind: chase.Tap, Layout: l.Chase})
	}

	path := maze.Solve(l.Maze, 1)
	if path == nil {
		return fmt.Errorf("autoplay: %w", ErrNoRoute)
	}
	c.Maze(maze.Event{Kind: maze.Press, At: path[0], Layout: l.Maze})
	for _, p := range path[1:] {
		if c.Level() != Level2 {
			break
		}
		wait(16 * time.Millisecond)
		c.Maze(maze.Event{Kind: maze.Move, At: p, Layout: l.Maze})
	}
	if c.Level() == Level2 {
		return fmt.Errorf("autoplay: %s did not finish", Level2)
	}

	phrase := []rune(c.Phrase())
	for i := 1; i <= len(phrase) && c.Level() == Level3; i++ {
		wait(120 * time.Millisecond)
		c.Typist(typist.Event{Kind: typist.Input, Text: string(phrase[:i])})
	}
	if c.Level() == Level3 {
		return fmt.Errorf("autoplay: %s did not finish", Level3)
	}

	// Gain outpaces decay as long as kisses land faster than ticks
	for i := 0; c.Level() == Level4; i++ {
		if i > 1000 {
			return fmt.Errorf("autoplay: %s did not finish", Level4)
		}
		wait(50 * time.Millisecond)
		c.Storm(l.Maze.Arena.Center())
	}
	return nil
}
