package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// WatchOptions selects the walk shown by the watch view.
type WatchOptions struct {
	PuzzleID    string
	Title       string
	Layout      *patrol.Layout
	Obstruction *patrol.Coord // Extra wall for the walk, may be nil
	StepLimit   int
	Workers     int
}

// searchStartedMsg marks a search launched from Init.
type searchStartedMsg struct{}

// searchDoneMsg carries the result of a background obstruction search.
type searchDoneMsg struct {
	hits []patrol.Coord
	err  error
}

// WatchModel is the Bubble Tea model that animates a guard walk.
type WatchModel struct {
	opts   WatchOptions
	sim    patrol.Simulator
	walker *patrol.Walker
	screen *core.Screen
	config core.RuntimeConfig
	keys   WatchKeyMap
	help   help.Model

	obstruction *patrol.Coord
	hits        []patrol.Coord
	hitIdx      int // Index into hits of the current obstruction, -1 if none
	searching   bool
	searchErr   error
	walkErr     error

	paused     bool
	tickID     int
	nested     bool // Running inside a session; back returns to the menu
	quitting   bool
	backToMenu bool
}

// NewWatchModel creates a watch model for the given walk.
func NewWatchModel(opts WatchOptions, cfg core.RuntimeConfig) WatchModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := WatchModel{
		opts:        opts,
		sim:         patrol.Simulator{Grid: opts.Layout.Grid, StepLimit: opts.StepLimit},
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:      cfg,
		keys:        DefaultWatchKeyMap(),
		help:        help.New(),
		obstruction: opts.Obstruction,
		hitIdx:      -1,
	}
	m.walker = m.sim.Walk(opts.Layout.Start, m.obstruction)
	return m
}

// Init starts the tick loop, and the obstruction search when candidates are shown.
func (m WatchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tickID, m.config.TickRate)}
	if m.config.ShowCandidates {
		cmds = append(cmds, func() tea.Msg { return searchStartedMsg{} }, m.searchCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case searchStartedMsg:
		m.searching = m.hits == nil && m.searchErr == nil
		return m, nil

	case searchDoneMsg:
		m.searching = false
		m.hits = msg.hits
		m.searchErr = msg.err
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		if m.nested {
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused {
			return m, m.restartTicks()
		}

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.advance(1)
		}

	case key.Matches(msg, m.keys.Faster):
		m.config.TickRate = core.Faster(m.config.TickRate)
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Slower):
		m.config.TickRate = core.Slower(m.config.TickRate)
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Trail):
		m.config.ShowTrail = !m.config.ShowTrail

	case key.Matches(msg, m.keys.Candidates):
		m.config.ShowCandidates = !m.config.ShowCandidates
		if m.config.ShowCandidates && m.needsSearch() {
			m.searching = true
			return m, m.searchCmd()
		}

	case key.Matches(msg, m.keys.Obstruction):
		if len(m.hits) == 0 {
			if m.needsSearch() {
				m.searching = true
				return m, m.searchCmd()
			}
			return m, nil
		}
		m.nextObstruction()
		return m, m.restartTicks()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances the guard for one tick of the current loop.
func (m WatchModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.tickID || m.paused || m.walker.Done() {
		return m, nil
	}

	_, steps := tickPlan(m.config.TickRate)
	m.advance(steps)
	if m.walker.Done() {
		return m, nil
	}
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// advance moves the guard up to n evaluations.
func (m *WatchModel) advance(n int) {
	for i := 0; i < n && !m.walker.Done(); i++ {
		if _, err := m.walker.Advance(); err != nil {
			m.walkErr = err
		}
	}
}

// restartTicks replaces the running tick loop, if the walk should keep moving.
func (m *WatchModel) restartTicks() tea.Cmd {
	m.tickID++
	if m.paused || m.walker.Done() {
		return nil
	}
	return tickCmd(m.tickID, m.config.TickRate)
}

// restart begins the walk again with the current obstruction.
func (m *WatchModel) restart() {
	m.walker = m.sim.Walk(m.opts.Layout.Start, m.obstruction)
	m.walkErr = nil
}

// nextObstruction cycles through the loop-causing cells, then back to none.
func (m *WatchModel) nextObstruction() {
	m.hitIdx++
	if m.hitIdx >= len(m.hits) {
		m.hitIdx = -1
		m.obstruction = m.opts.Obstruction
	} else {
		o := m.hits[m.hitIdx]
		m.obstruction = &o
	}
	m.restart()
}

func (m WatchModel) needsSearch() bool {
	return m.hits == nil && !m.searching && m.searchErr == nil
}

// searchCmd runs the obstruction search off the UI goroutine.
func (m WatchModel) searchCmd() tea.Cmd {
	layout := m.opts.Layout
	opts := patrol.SearchOptions{Workers: m.opts.Workers, StepLimit: m.opts.StepLimit}
	return func() tea.Msg {
		hits, err := patrol.FindCycleObstructions(context.Background(), layout.Grid, layout.Start, opts)
		if hits == nil && err == nil {
			hits = []patrol.Coord{}
		}
		return searchDoneMsg{hits: hits, err: err}
	}
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	watchHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	helpLines := lipgloss.Height(helpView)

	// The header line and the help sit outside the screen; the status is its last row
	m.screen.Resize(m.config.ScreenW, core.Max(m.config.ScreenH-1-helpLines, 2))
	m.screen.Clear()
	mapArea := core.NewRect(0, 0, m.screen.Width(), m.screen.Height()-1)
	box := mapArea
	if mapArea.W > 2 && mapArea.H > 2 {
		box = core.NewRect(0, 0,
			core.Min(m.opts.Layout.Grid.W+2, mapArea.W),
			core.Min(m.opts.Layout.Grid.H+2, mapArea.H))
		m.screen.DrawBox(box, m.config.Palette.Border)
		mapArea = box.Inset(1)
	}

	DrawMap(m.screen, mapArea, MapView{
		Layout:         m.opts.Layout,
		Walker:         m.walker,
		Candidates:     m.hits,
		ShowTrail:      m.config.ShowTrail,
		ShowCandidates: m.config.ShowCandidates,
		Palette:        m.config.Palette,
	})
	m.screen.DrawText(0, box.Bottom(), m.Status(), m.config.Palette.Text)

	return watchTitleStyle.Render(m.header()) + "\n" +
		RenderScreen(m.screen) + "\n" +
		watchHelpStyle.Render(helpView)
}

func (m WatchModel) header() string {
	title := m.opts.Title
	if title == "" {
		title = m.opts.PuzzleID
	}
	if m.obstruction != nil {
		title += fmt.Sprintf("  [obstruction %s]", *m.obstruction)
	}
	return title
}

// Status returns the one-line summary shown under the map.
func (m WatchModel) Status() string {
	w := m.walker
	var s string
	switch {
	case errors.Is(m.walkErr, patrol.ErrStepLimit):
		s = fmt.Sprintf("stopped: step limit reached after %d steps", w.Steps())
	case w.Done() && w.Result().Exited():
		s = fmt.Sprintf("guard left the map after %d steps, %d cells visited", w.Steps(), w.VisitedCount())
	case w.Done():
		s = fmt.Sprintf("guard is looping after %d steps, %d cells visited", w.Steps(), w.VisitedCount())
	default:
		s = fmt.Sprintf("step %d  visited %d  facing %s  %d/s", w.Steps(), w.VisitedCount(), w.Pose().Facing, m.config.TickRate)
		if m.paused {
			s += "  PAUSED"
		}
	}

	switch {
	case m.searching:
		s += "  | searching loop cells..."
	case errors.Is(m.searchErr, patrol.ErrNonTerminatingBaseline):
		s += "  | no exit, nothing to search"
	case m.searchErr != nil:
		s += "  | search failed: " + m.searchErr.Error()
	case m.hits != nil:
		s += fmt.Sprintf("  | %d loop cells", len(m.hits))
	}
	return s
}

// Walker returns the walk in progress.
func (m WatchModel) Walker() *patrol.Walker {
	return m.walker
}

// IsQuitting returns true if user requested to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunWatch starts the Bubble Tea program for a single walk.
// Returns true if user wants to go back to menu, false if quitting.
func RunWatch(opts WatchOptions, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(
		NewWatchModel(opts, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(WatchModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
