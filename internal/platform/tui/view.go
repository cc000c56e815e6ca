package tui

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/quest"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// instructions is the footer text for each level.
var instructions = map[quest.Level]string{
	quest.Start:   "Click the button or press enter to begin",
	quest.Level1:  "Catch the heart and click it 3 times",
	quest.Level2:  "Hold the button on S and drag to the heart without touching walls",
	quest.Level3:  "Type the phrase exactly",
	quest.Level4:  "Send kisses faster than they fade",
	quest.Victory: "You did it!",
}

// draw renders the whole session into the screen buffer.
func (m *Model) draw() {
	s := m.s
	now := s.now()
	lvl := s.ctrl.Level()
	l := newLayout(m.screen, m.opts.Quest.Maze)

	m.screen.Clear()
	if lvl == quest.Victory {
		s.ctrl.Draw(m.canvas)
	}

	m.drawHeader(lvl, now)

	switch lvl {
	case quest.Start:
		m.drawStart(l)
	case quest.Level1:
		m.drawChase(l)
	case quest.Level2:
		m.drawMaze(l)
	case quest.Level3:
		m.drawTypist(l)
	case quest.Level4:
		m.drawStorm(l, now)
	case quest.Victory:
		m.drawVictory(l)
	}

	footer := m.screen.Height() - footerRows + 1
	m.screen.DrawTextCenteredColor(footer, instructions[lvl], core.ColorGray)

	if s.shaking(now) {
		if m.frame%2 == 0 {
			m.screen.ShiftX(1)
		} else {
			m.screen.ShiftX(-1)
		}
	}
}

func (m *Model) drawHeader(lvl quest.Level, now time.Time) {
	m.screen.DrawTextColor(sideMargin, 1, m.opts.Quest.Title, core.ColorPink)

	var right string
	switch lvl {
	case quest.Start:
	case quest.Victory:
		right = formatDuration(m.s.elapsed(now))
	default:
		right = fmt.Sprintf("Level %d/4  %s", lvl-quest.Start, formatDuration(m.s.elapsed(now)))
	}
	x := m.screen.Width() - sideMargin - utf8.RuneCountInString(right)
	m.screen.DrawText(x, 1, right)
}

func (m *Model) drawButton(r core.Rect, label string, c core.Color) {
	m.screen.DrawBox(r, c)
	x0, y0, w, h := r.Cells()
	x := x0 + (w-utf8.RuneCountInString(label))/2
	m.screen.DrawTextColor(x, y0+h/2, label, c)
}

func (m *Model) drawStart(l layout) {
	b := l.button()
	_, y, _, _ := b.Cells()
	m.screen.DrawTextCenteredColor(y-2, "Four little challenges stand between you and a surprise.", core.ColorWhite)
	m.drawButton(b, "Begin ♥", core.ColorPink)
}

func (m *Model) drawChase(l layout) {
	m.screen.DrawBox(l.arena, core.ColorGray)

	st := m.s.ctrl.ChaseState()
	m.drawButton(l.target(st), st.Label(), core.ColorRed)
}

func (m *Model) drawMaze(l layout) {
	m.screen.DrawBox(l.arena, core.ColorGray)

	ml := l.mazeLayout()
	for _, w := range ml.Walls {
		m.screen.DrawRect(w, '█', core.ColorGray)
	}
	m.screen.DrawRect(ml.Start, '░', core.ColorGreen)
	m.screen.DrawRect(ml.Goal, '░', core.ColorPink)

	sx, sy := ml.Start.Center().Cell()
	m.screen.SetCell(sx, sy, 'S', core.ColorGreen)
	gx, gy := ml.Goal.Center().Cell()
	m.screen.SetCell(gx, gy, '♥', core.ColorRed)

	st := m.s.ctrl.MazeState()
	if st.CursorVisible {
		cx, cy := st.Cursor.Cell()
		m.screen.SetCell(cx, cy, '●', core.ColorYellow)
	}
}

func (m *Model) drawTypist(l layout) {
	m.screen.DrawBox(l.arena, core.ColorGray)

	st := m.s.ctrl.TypistState()
	row := l.inputRow()
	x, y, w, _ := row.Cells()

	m.screen.DrawTextCenteredColor(y-3, "Type:", core.ColorGray)
	m.screen.DrawTextCenteredColor(y-2, st.Target, core.ColorPink)

	color := core.ColorWhite
	if st.Flagged {
		color = core.ColorRed
	}
	m.screen.DrawHLine(x, y+1, w, '─', core.ColorGray)
	typed := st.Input + "▏"
	m.screen.DrawTextColor(x, y, typed, color)

	if st.Flagged {
		m.screen.DrawTextCenteredColor(y+3, "wrong letter, try again", core.ColorRed)
	}
}

func (m *Model) drawStorm(l layout, now time.Time) {
	m.screen.DrawBox(l.arena, core.ColorGray)
	m.drawButton(l.button(), "Kiss ♥", core.ColorPink)

	bar := l.progressBar()
	x, y, w, _ := bar.Cells()
	pct := m.s.ctrl.StormState().Percent()
	m.screen.DrawText(x, y, progressBar(w, pct))

	for _, mk := range m.s.markers {
		age := now.Sub(mk.born)
		t := math.Min(float64(age)/float64(markerLife), 1)
		cx, cy := mk.at.Cell()
		cy -= int(math.Round(t * markerRise))
		color := core.ColorPink
		if t > 0.5 {
			color = core.ColorGray
		}
		m.screen.SetCell(cx, cy, '♥', color)
	}
}

func (m *Model) drawVictory(l layout) {
	_, y := l.arena.Center().Cell()
	m.screen.DrawTextCenteredColor(y-2, "♥  Victory!  ♥", core.ColorPink)
	m.screen.DrawTextCenteredColor(y, "Time: "+formatDuration(m.s.total), core.ColorBrightWhite)
	if m.s.hasBest {
		m.screen.DrawTextCenteredColor(y+1, "Best: "+formatDuration(m.s.best), core.ColorYellow)
	}
	m.screen.DrawTextCenteredColor(y+3, "r: play again · q: quit", core.ColorGray)
}

// progressBar renders "[████░░░░]  42%" in width cells.
func progressBar(width, pct int) string {
	inner := width - 7
	if inner < 1 {
		return fmt.Sprintf("%3d%%", pct)
	}
	filled := core.Clamp(inner*pct/100, 0, inner)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", inner-filled) + "]" + fmt.Sprintf(" %3d%%", pct)
}

// formatDuration renders d as m:ss.t.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}
