// Package tui provides a Bubble Tea terminal user interface that reviews
// and applies a rename plan.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/handiism/tagcat/internal/batch"
	"github.com/handiism/tagcat/internal/config"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxPlanLines bounds the number of planned moves shown at once.
const maxPlanLines = 15

// State represents the current UI state.
type State int

const (
	StatePlanning State = iota
	StateReview
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// logBuffer collects progress events from the runner goroutine until the
// next tick drains them.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (b *logBuffer) add(e batch.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, LogEntry{Message: e.Message, Level: e.Level})
}

func (b *logBuffer) drain() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.entries
	b.entries = nil
	return entries
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	runner   *batch.Runner
	pending  *logBuffer
	logs     []LogEntry
	err      error

	files []string
	root  string

	plan    *batch.Plan
	summary *batch.Summary
	offset  int

	ctx    context.Context
	cancel context.CancelFunc

	doneFiles  int32
	totalFiles int32

	verbose bool

	width  int
	height int
}

// NewModel creates a model that plans the relocation of files under root.
func NewModel(settings *config.Settings, log logrus.FieldLogger, files []string, root string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())
	pending := &logBuffer{}

	return Model{
		state:    StatePlanning,
		spinner:  sp,
		progress: prog,
		settings: settings,
		runner:   batch.NewRunner(settings, log, pending.add),
		pending:  pending,
		files:    files,
		root:     root,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init starts planning.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.planRename(), m.spinner.Tick, m.tickProgress())
}

// Message types
type (
	// PlanDoneMsg is sent when the rename plan is ready.
	PlanDoneMsg struct {
		Plan *batch.Plan
		Err  error
	}

	// ApplyDoneMsg is sent when all planned moves were attempted.
	ApplyDoneMsg struct {
		Summary *batch.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateReview:
				return m, tea.Quit
			case StatePlanning, StateApplying:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateReview && m.plan != nil && len(m.plan.Moves) > 0 {
				m.state = StateApplying
				return m, tea.Batch(m.applyRename(), m.tickProgress())
			}

		case "p":
			if m.state == StateReview {
				m.settings.CreatePlaylist = !m.settings.CreatePlaylist
			}

		case "v":
			m.verbose = !m.verbose

		case "up", "k":
			if m.state == StateReview && m.offset > 0 {
				m.offset--
			}

		case "down", "j":
			if m.state == StateReview && m.plan != nil && m.offset < len(m.plan.Moves)-maxPlanLines {
				m.offset++
			}

		case "q":
			if m.state == StateReview || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PlanDoneMsg:
		m.collectLogs()
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.plan = msg.Plan
			m.state = StateReview
		}

	case ApplyDoneMsg:
		m.collectLogs()
		m.summary = msg.Summary
		m.doneFiles, m.totalFiles = m.runner.GetProgress()
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		m.collectLogs()
		if m.state == StatePlanning || m.state == StateApplying {
			files, totalFiles := m.runner.GetProgress()
			m.doneFiles = files
			m.totalFiles = totalFiles

			// Calculate percentage and animate progress bar
			var percent float64
			if totalFiles > 0 {
				percent = float64(files) / float64(totalFiles)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// collectLogs moves buffered progress events into the visible log.
func (m *Model) collectLogs() {
	for _, entry := range m.pending.drain() {
		// Filter verbose messages if not in verbose mode
		if entry.Level == batch.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, entry)
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("tagcat"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("File audio by its tags into " + m.root))
	b.WriteString("\n\n")

	switch m.state {
	case StatePlanning:
		b.WriteString(m.viewPlanning())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateApplying:
		b.WriteString(m.viewApplying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewPlanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Reading tags of %d file(s)...", len(m.files))))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	moves := m.plan.Moves
	if len(moves) == 0 {
		b.WriteString(warningStyle.Render("Nothing to move."))
		b.WriteString("\n")
	} else {
		b.WriteString(successStyle.Render(fmt.Sprintf("%d file(s) to move:", len(moves))))
		b.WriteString("\n")

		end := min(m.offset+maxPlanLines, len(moves))
		for _, mv := range moves[m.offset:end] {
			rel, err := filepath.Rel(m.root, mv.Destination.Path())
			if err != nil {
				rel = mv.Destination.Path()
			}
			b.WriteString(moveStyle.Render(fmt.Sprintf("  %s", rel)))
			b.WriteString(dimStyle.Render(fmt.Sprintf("  <- %s", filepath.Base(mv.Source))))
			b.WriteString("\n")
		}
		if rest := len(moves) - end; rest > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", rest)))
			b.WriteString("\n")
		}
	}

	if s := m.plan.Summary; len(s.Results) > 0 {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Not moved: %s", s)))
		b.WriteString("\n")
		b.WriteString(m.renderResults(s, batch.StatusFailed))
	}

	playlistCheck := "[ ]"
	if m.settings.CreatePlaylist {
		playlistCheck = "[x]"
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", playlistCheck))

	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder

	// Progress bar
	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.doneFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.doneFiles, m.totalFiles)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Rename complete\n\n"+
			"Moved:   %d\n"+
			"Skipped: %d\n"+
			"Failed:  %d",
		m.summary.Count(batch.StatusOK),
		m.summary.Count(batch.StatusSkipped),
		m.summary.Count(batch.StatusFailed),
	))
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(m.renderResults(m.summary, batch.StatusFailed))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

// renderResults lists the results with the given status.
func (m Model) renderResults(s *batch.Summary, status batch.Status) string {
	var b strings.Builder
	for _, r := range s.Results {
		if r.Status != status {
			continue
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", filepath.Base(r.Path), r.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateReview:
		return "enter: apply • p: playlist • ↑/↓: scroll • v: verbose • q: quit"
	case StatePlanning, StateApplying:
		return "esc: cancel"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// planRename reads tags and derives destinations in the background.
func (m Model) planRename() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.runner.PlanRename(m.ctx, m.files, m.root)
		return PlanDoneMsg{Plan: plan, Err: err}
	}
}

// applyRename performs the planned moves in the background.
func (m Model) applyRename() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.runner.ApplyRename(m.ctx, m.plan)
		return ApplyDoneMsg{Summary: summary, Err: err}
	}
}

// Run starts the TUI application and returns the final summary, which is
// nil when nothing was applied.
func Run(settings *config.Settings, log logrus.FieldLogger, files []string, root string) (*batch.Summary, error) {
	p := tea.NewProgram(NewModel(settings, log, files, root), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).summary, nil
}
