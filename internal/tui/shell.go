// Package tui provides the interactive shell using Bubble Tea: a
// command prompt with live suggestion ranking over the canned example
// commands.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/keiko/fman/internal/nlp"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

const maxShellSuggestions = 5

// Executor runs one natural-language command and returns rendered
// output.
type Executor func(text string) string

// Model is the shell model.
type Model struct {
	exec   Executor
	corpus []string

	input    textinput.Model
	viewport viewport.Model

	suggestions []string
	selected    int

	transcript strings.Builder
	width      int
	height     int
	ready      bool
	quitting   bool
	err        error
}

type resultMsg string

// New creates the shell model around an executor.
func New(exec Executor) Model {
	ti := textinput.New()
	ti.Placeholder = "describe a file operation..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return Model{
		exec:   exec,
		corpus: nlp.AllSuggestions(),
		input:  ti,
	}
}

// Init starts the blinking cursor.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[m.selected])
				m.input.CursorEnd()
				m.suggestions = nil
				m.selected = 0
				return m, nil
			}

		case "up":
			if m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down":
			if m.selected < len(m.suggestions)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.suggestions = nil
			m.selected = 0
			return m, m.runCommand(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport = viewport.New(msg.Width-4, msg.Height-10)
		m.viewport.SetContent(m.transcript.String())

	case resultMsg:
		m.transcript.WriteString(string(msg))
		m.transcript.WriteString("\n")
		if m.ready {
			m.viewport.SetContent(m.transcript.String())
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.suggestions = m.rank(m.input.Value())
	if m.selected >= len(m.suggestions) {
		m.selected = 0
	}
	return m, tea.Batch(cmds...)
}

// rank orders the canned commands by fuzzy match quality against the
// partial input.
func (m Model) rank(partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return nil
	}

	matches := fuzzy.Find(partial, m.corpus)
	n := len(matches)
	if n > maxShellSuggestions {
		n = maxShellSuggestions
	}

	out := make([]string, 0, n)
	for _, match := range matches[:n] {
		out = append(out, match.Str)
	}
	return out
}

func (m Model) runCommand(text string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg("> " + text + "\n" + m.exec(text))
	}
}

// View renders the shell.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("fman interactive shell") + "\n\n")

	if m.ready {
		b.WriteString(m.viewport.View() + "\n\n")
	}

	b.WriteString(promptStyle.Render("› ") + m.input.View() + "\n")

	for i, s := range m.suggestions {
		style := suggestionStyle
		cursor := "  "
		if i == m.selected {
			style = selectedStyle
			cursor = "▸ "
		}
		b.WriteString(style.Render(cursor+s) + "\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render("enter run · tab complete · ↑/↓ select · esc quit"))
	return b.String()
}

// Run starts the shell program.
func Run(exec Executor) error {
	p := tea.NewProgram(New(exec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
