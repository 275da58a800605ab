package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the puzzle sidebar
	sidebarWidth       = 20  // Width of the puzzle sidebar
	maxRuns            = 100 // Max runs to load per puzzle
)

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	puzzles      []string // Puzzle IDs with history or registered
	puzzleCursor int
	store        *storage.Store
	runs         []storage.Run
	stats        *storage.PuzzleStats
	loadErr      error
	table        table.Model
	help         help.Model
	keys         HistoryKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewHistoryModel creates a history model. initial selects the first
// puzzle shown; an unknown or empty ID starts at the first puzzle.
func NewHistoryModel(store *storage.Store, width, height int, initial string) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		puzzles:     historyPuzzles(store),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	for i, id := range m.puzzles {
		if id == initial {
			m.puzzleCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.puzzles) > 0 {
		m.loadRuns(m.puzzles[m.puzzleCursor])
	}
	return m
}

// historyPuzzles lists registered puzzles plus any file puzzle with runs.
func historyPuzzles(store *storage.Store) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, info := range registry.List() {
		seen[info.ID] = true
		ids = append(ids, info.ID)
	}

	if store != nil {
		if all, err := store.AllPuzzleStats(); err == nil {
			for id := range all {
				if !seen[id] {
					ids = append(ids, id)
				}
			}
		}
	}

	sort.Strings(ids)
	return ids
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Outcome", Width: 8},
		{Title: "Visited", Width: 8},
		{Title: "Loops", Width: 6},
		{Title: "Time", Width: 9},
		{Title: "Workers", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads history and stats for the given puzzle ID.
func (m *HistoryModel) loadRuns(puzzleID string) {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.RunsForPuzzle(puzzleID, maxRuns)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.PuzzleStats(puzzleID)
		}
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// runRows formats runs as table rows.
func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		loops := "-"
		if r.HasObstructions() {
			loops = fmt.Sprintf("%d", r.Obstructions)
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Outcome,
			fmt.Sprintf("%d", r.Visited),
			loops,
			r.Duration.Round(time.Millisecond).String(),
			fmt.Sprintf("%d", r.Workers),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPuzzle):
			if len(m.puzzles) > 0 {
				m.puzzleCursor = (m.puzzleCursor + 1) % len(m.puzzles)
				m.loadRuns(m.puzzles[m.puzzleCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPuzzle):
			if len(m.puzzles) > 0 {
				m.puzzleCursor--
				if m.puzzleCursor < 0 {
					m.puzzleCursor = len(m.puzzles) - 1
				}
				m.loadRuns(m.puzzles[m.puzzleCursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "RUN HISTORY"
	if id := m.Current(); id != "" {
		title = "RUN HISTORY - " + id
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := panelStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) statsLine() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.stats == nil || m.stats.Runs == 0 {
		return dim.Render("no runs yet")
	}
	return dim.Render(fmt.Sprintf("%d runs  fastest %s  average %s  last %s",
		m.stats.Runs,
		m.stats.Fastest.Round(time.Millisecond),
		m.stats.Average.Round(time.Millisecond),
		m.stats.LastRun.Local().Format("Jan 02 15:04")))
}

// renderSidebar renders the puzzle list used on wide terminals.
func (m HistoryModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Puzzles\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, id := range m.puzzles {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.puzzleCursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := id
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(line.Render(cursor + name))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTabs renders the puzzle selector used on narrow terminals.
func (m HistoryModel) renderTabs() string {
	if len(m.puzzles) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.puzzles[m.puzzleCursor])
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return empty.Render("Run history is disabled.")
	case m.loadErr != nil:
		return empty.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return empty.Render("No runs recorded yet.\nSolve this puzzle to record one!")
	}
	return m.table.View()
}

// Current returns the ID of the puzzle being shown.
func (m HistoryModel) Current() string {
	if len(m.puzzles) == 0 {
		return ""
	}
	return m.puzzles[m.puzzleCursor]
}

// Runs returns the runs loaded for the current puzzle.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int, initial string) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height, initial),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
