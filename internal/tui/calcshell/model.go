// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     calcshell
// Description: Main Bubbletea model for the calc shell
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package calcshell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/repl"
	"github.com/msto63/mcalc/internal/session"
	"github.com/msto63/mcalc/pkg/core/config"
	"github.com/msto63/mcalc/pkg/core/version"
)

// maxInputHistory bounds the up/down recall list
const maxInputHistory = 100

// Options configures the calc shell
type Options struct {
	Session *session.Session
	Config  *config.Config
	Logger  *mdwlog.Logger
}

// Model is the main Bubbletea model for the calc shell
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Calculator state
	ctx        context.Context
	session    *session.Session
	config     *config.Config
	logger     *mdwlog.Logger
	scrollback *scrollback
	evaluated  int
	failed     int

	// Input history
	inputHistory []string
	historyIndex int    // -1 means no recall in progress
	currentInput string // input saved when recall starts
}

// New creates a new calc shell model
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	ti := textinput.New()
	ti.Placeholder = "1 + 2 * 3, x = 5, :help"
	ti.Prompt = cfg.REPL.Prompt
	ti.PromptStyle = InputLineStyle
	// CharLimit counts runes while the evaluator limits bytes. A multibyte
	// line within CharLimit can still fail with InputTooLong, which is
	// shown in the scrollback like any other error.
	ti.CharLimit = cfg.Evaluator.MaxInputLength
	ti.Focus()

	return Model{
		input:        ti,
		ctx:          ctx,
		session:      opts.Session,
		config:       cfg,
		logger:       logger.WithField("component", "calcshell"),
		scrollback:   newScrollback(cfg.Shell.Scrollback),
		historyIndex: -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Logo + subtitle
		footerHeight := 7 // Input + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.scrollback.Clear()
		m.updateViewportContent()
		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	// Pass other keys to the input line
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input line. Evaluation runs here, inside
// Update, so lines are evaluated in input order.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.historyIndex = -1
	m.currentInput = ""

	if line == "" {
		return m, nil
	}

	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != line {
		m.inputHistory = append(m.inputHistory, line)
		if len(m.inputHistory) > maxInputHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
		}
	}

	if m.config.IsExitCommand(line) {
		m.quitting = true
		return m, tea.Quit
	}

	m.scrollback.Push(Line{Kind: LineInput, Text: m.config.REPL.Prompt + line})

	if repl.IsMeta(line) {
		lines, err := repl.RunMeta(m.ctx, m.session, line)
		if err != nil {
			m.scrollback.Push(Line{Kind: LineError, Text: err.Error()})
		}
		for _, l := range lines {
			m.scrollback.Push(Line{Kind: LineInfo, Text: l})
		}
	} else {
		outcome := m.session.Evaluate(m.ctx, line)
		m.evaluated++
		if outcome.Failed() {
			m.failed++
			m.scrollback.Push(Line{Kind: LineError, Text: outcome.Err.Error()})
		} else {
			m.scrollback.Push(Line{Kind: LineResult, Text: fmt.Sprint(outcome.Value)})
		}
	}

	m.updateViewportContent()
	m.viewport.GotoBottom()
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading mCalc shell..."
	}

	var b strings.Builder

	b.WriteString(LogoStyle.Render(Logo) + "  " + SubHeaderStyle.Render("integer calculator"))
	b.WriteString("\n\n")

	b.WriteString(ScrollbackPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(InputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderStatusBar renders session statistics and version
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("vars: %d  lines: %d  errors: %d", len(m.session.Vars()), m.evaluated, m.failed)
	right := HelpDescStyle.Render("v" + version.ComponentVersion("shell"))

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 2 {
		padding = 2
	}

	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", padding) + right)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "evaluate"),
		RenderKeyHint("↑/↓", "recall"),
		RenderKeyHint("PgUp/PgDn", "scroll"),
		RenderKeyHint("Ctrl+L", "clear"),
		RenderKeyHint("Esc", "quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent updates the viewport with the scrollback
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, line := range m.scrollback.Lines() {
		switch line.Kind {
		case LineInput:
			content.WriteString(InputLineStyle.Render(line.Text))
		case LineResult:
			content.WriteString(ResultLineStyle.Render(line.Text))
		case LineError:
			content.WriteString(ErrorLineStyle.Render(line.Text))
		default:
			content.WriteString(InfoLineStyle.Render(line.Text))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the calc shell in the alternate screen and blocks until the
// user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
