package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/feedback"
	"github.com/vovakirdan/tui-quest/internal/levels/chase"
	"github.com/vovakirdan/tui-quest/internal/levels/maze"
	"github.com/vovakirdan/tui-quest/internal/levels/typist"
	"github.com/vovakirdan/tui-quest/internal/quest"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

// helpRows is the height of the key help line under the screen.
const helpRows = 1

// Options configures a Model. Zero values get usable defaults.
type Options struct {
	Quest   config.Quest
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger
	Haptics feedback.Haptics
	Player  string

	// Rand overrides the seeded source built from Runtime.Seed.
	Rand core.Rand

	// Now is the wall clock used for split times and animations.
	Now func() time.Time

	// ScreenshotDir defaults to ~/.quest/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one player.
type Model struct {
	opts     Options
	screen   *core.Screen
	canvas   *core.Canvas
	s        *session
	keys     KeyMap
	help     help.Model
	frame    int
	quitting bool
}

// NewModel creates a model on the Start screen.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Haptics == nil {
		opts.Haptics = feedback.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Quest.Typing.Phrase == "" {
		opts.Quest = config.Default()
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Quest.Display.FPS
	}
	if opts.Player == "" {
		opts.Player = os.Getenv("USER")
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, core.Max(opts.Runtime.ScreenH-helpRows, 1))
	canvas := core.NewCanvas(screen, core.DefaultCellW, core.DefaultCellH)
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		opts:   opts,
		screen: screen,
		canvas: canvas,
		s:      newSession(opts, canvas),
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.Runtime.TickRate), m.s.sched.drain())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.s.sched.drain()

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()

	case timerMsg:
		m.s.sched.fire(msg)
		return m, m.s.sched.drain()
	}

	// Cursor blink and other text input messages
	if m.s.ctrl.Level() == quest.Level3 {
		var cmd tea.Cmd
		m.s.input, cmd = m.s.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lvl := m.s.ctrl.Level()

	switch m.keys.MapKey(msg, lvl) {
	case core.ActionQuit:
		m.quitting = true
		m.s.close()
		return m, tea.Quit
	case core.ActionRestart:
		m.restart()
		return m, m.s.sched.drain()
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	case core.ActionStart:
		m.s.ctrl.Start()
		return m, m.s.sched.drain()
	case core.ActionKiss:
		m.kiss(newLayout(m.screen, m.opts.Quest.Maze).button().Center())
		return m, m.s.sched.drain()
	}

	if lvl == quest.Level3 {
		return m.handleTyping(msg)
	}
	return m, nil
}

// handleTyping feeds a key to the text input and reports every change
// of its value to Level 3.
func (m Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.s.input.Value()

	var cmd tea.Cmd
	m.s.input, cmd = m.s.input.Update(msg)

	if after := m.s.input.Value(); after != before {
		fx := m.s.ctrl.Typist(typist.Event{Kind: typist.Input, Text: after})
		if fx.Has(core.EffectAlert) {
			m.s.input.SetValue("")
		}
		m.s.apply(fx)
	}
	return m, tea.Batch(cmd, m.s.sched.drain())
}

// handleMouse routes pointer input to the active level. Mouse cells are
// mapped to their centers so they share a coordinate space with the
// layout rectangles.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := core.CellCenter(msg.X, msg.Y)
	l := newLayout(m.screen, m.opts.Quest.Maze)
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	switch m.s.ctrl.Level() {
	case quest.Start:
		if press && l.button().Contains(p) {
			m.s.ctrl.Start()
		}
	case quest.Level1:
		m.mouseChase(msg, p, l)
	case quest.Level2:
		m.mouseMaze(msg, p, l)
	case quest.Level4:
		if press && l.button().Contains(p) {
			m.kiss(p)
		}
	}
}

func (m *Model) mouseChase(msg tea.MouseMsg, p core.Point, l layout) {
	s := m.s
	cl := l.chase()
	over := l.target(s.ctrl.ChaseState()).Contains(p)

	switch msg.Action {
	case tea.MouseActionMotion:
		if !over {
			s.hover = false
			return
		}
		if !s.hover {
			s.hover = true
			s.apply(s.ctrl.Chase(chase.Event{Kind: chase.PointerEnter, Layout: cl}))
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !over {
			return
		}
		// A press with no hover before it is the terminal's touch contact
		if !s.hover {
			fx := s.ctrl.Chase(chase.Event{Kind: chase.TouchStart, Layout: cl})
			s.apply(fx)
			if fx.Has(core.EffectRelocate) {
				return
			}
		}
		s.armed = true

	case tea.MouseActionRelease:
		if s.armed && over {
			s.apply(s.ctrl.Chase(chase.Event{Kind: chase.Tap, Layout: cl}))
		}
		s.armed = false
	}
}

func (m *Model) mouseMaze(msg tea.MouseMsg, p core.Point, l layout) {
	ml := l.mazeLayout()
	var ev maze.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		ev = maze.Event{Kind: maze.Press, At: p, Layout: ml}
	case tea.MouseActionMotion:
		ev = maze.Event{Kind: maze.Move, At: p, Layout: ml}
	case tea.MouseActionRelease:
		ev = maze.Event{Kind: maze.Release, At: p, Layout: ml}
	default:
		return
	}
	m.s.apply(m.s.ctrl.Maze(ev))
}

func (m *Model) kiss(at core.Point) {
	m.s.apply(m.s.ctrl.Storm(at))
}

// handleResize processes window resize events. Level state is kept; the
// layout is recomputed for every event anyway.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-helpRows, 1))
	m.s.ctrl.Resize(m.canvas.Width(), m.canvas.Height())
	m.help.Width = msg.Width
	return m, nil
}

// handleFrame advances animations.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	m.frame++
	m.s.age(m.s.now())
	m.s.ctrl.Frame()
	return m, tea.Batch(frameCmd(m.opts.Runtime.TickRate), m.s.sched.drain())
}

// restart discards the whole session and starts over from Start.
func (m *Model) restart() {
	m.s.close()
	m.opts.Logger.Info("session restarted", "session", m.s.id)
	m.s = newSession(m.opts, m.canvas)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("could not resolve home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".quest", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := m.s.now().Format("20060102_150405")
	filename := fmt.Sprintf("quest_%s_%s.txt", m.s.ctrl.Level(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.forLevel(m.s.ctrl.Level())))
}

// Level returns the active level.
func (m Model) Level() quest.Level {
	return m.s.ctrl.Level()
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover is part of Level 1
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.s.close()
	}
	return err
}
