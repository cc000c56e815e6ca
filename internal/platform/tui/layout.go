package tui

import (
	"math"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/levels/chase"
	"github.com/vovakirdan/tui-quest/internal/levels/maze"
	"github.com/vovakirdan/tui-quest/internal/quest"
)

// Layout dimensions in cells.
const (
	headerRows = 3
	footerRows = 2
	sideMargin = 2

	minArenaW = 20
	minArenaH = 8

	targetW = 7
	targetH = 3

	buttonW = 16
	buttonH = 3
)

// layout is the set of live bounding boxes for the current screen size.
// It is rebuilt from the screen for every event so a resize between two
// samples is always honored.
type layout struct {
	screen core.Rect
	arena  core.Rect
	maze   config.MazeConfig
}

func newLayout(s *core.Screen, mz config.MazeConfig) layout {
	w := core.Max(s.Width()-2*sideMargin, minArenaW)
	h := core.Max(s.Height()-headerRows-footerRows, minArenaH)
	return layout{
		screen: s.Bounds(),
		arena:  core.NewRect(sideMargin, headerRows, float64(w), float64(h)),
		maze:   mz,
	}
}

// QuestLayouts returns the level layouts a terminal of width x height
// plays on, key help line included. Headless playback uses it so a maze
// is solved exactly as the terminal snaps it.
func QuestLayouts(width, height int, mz config.MazeConfig) quest.Layouts {
	l := newLayout(core.NewScreen(width, core.Max(height-helpRows, 1)), mz)
	return quest.Layouts{Chase: l.chase(), Maze: l.mazeLayout()}
}

// inner is the arena minus its border.
func (l layout) inner() core.Rect {
	return l.arena.Inset(1)
}

func (l layout) chase() chase.Layout {
	return chase.Layout{
		Arena:  l.inner(),
		Target: core.NewRect(0, 0, targetW, targetH),
	}
}

// target is the chase target as drawn: its rect floored to whole cells.
// Hit tests use it so a click lands on exactly the cells on screen.
func (l layout) target(st chase.State) core.Rect {
	x, y, w, h := st.TargetRect(l.chase()).Cells()
	return core.NewRect(float64(x), float64(y), float64(w), float64(h))
}

func (l layout) mazeLayout() maze.Layout {
	in := l.inner()
	ml := maze.Layout{
		Arena: in,
		Start: snap(l.maze.Start.Rect(in)),
		Goal:  snap(l.maze.Goal.Rect(in)),
	}
	for _, w := range l.maze.Walls {
		ml.Walls = append(ml.Walls, snap(w.Rect(in)))
	}
	return ml
}

// button is the Level 4 action button.
func (l layout) button() core.Rect {
	c := l.arena.Center()
	x := math.Floor(c.X - buttonW/2)
	y := math.Floor(c.Y - buttonH/2 - 1)
	return core.NewRect(x, y, buttonW, buttonH)
}

// progressBar is the row under the button.
func (l layout) progressBar() core.Rect {
	b := l.button()
	return core.NewRect(l.arena.X+4, b.Bottom()+2, l.arena.W-8, 1)
}

// inputRow is where typed text is drawn on Level 3.
func (l layout) inputRow() core.Rect {
	c := l.arena.Center()
	w := math.Min(l.arena.W-8, 48)
	return core.NewRect(math.Floor(c.X-w/2), math.Floor(c.Y), w, 1)
}

// snap rounds r to whole cells, keeping at least one cell in each
// direction.
func snap(r core.Rect) core.Rect {
	x := math.Round(r.X)
	y := math.Round(r.Y)
	w := math.Max(1, math.Round(r.Right())-x)
	h := math.Max(1, math.Round(r.Bottom())-y)
	return core.NewRect(x, y, w, h)
}
