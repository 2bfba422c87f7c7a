// Package tui is the interactive search-as-you-type front end.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/runnerr0/findsite/internal/browser"
	"github.com/runnerr0/findsite/internal/history"
)

// SearchFunc runs one search. *history.Searcher.Search satisfies it.
type SearchFunc func(ctx context.Context, text string) ([]browser.Result, error)

// resultsMsg carries the outcome of the search issued with seq.
type resultsMsg struct {
	seq     int
	results []browser.Result
	err     error
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).MarginTop(1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Model follows the Bubble Tea architecture. Every keystroke that changes
// the query starts a search tagged with a sequence number; results for any
// older sequence are dropped so the list always reflects the latest text.
type Model struct {
	input    textinput.Model
	search   SearchFunc
	browser  string
	seq      int
	loading  bool
	views    []history.ViewModel
	cursor   int
	err      error
	empty    string
	selected string
	height   int
}

// NewModel returns a model bound to search. browserName is shown in the header.
func NewModel(search SearchFunc, browserName string) Model {
	ti := textinput.New()
	ti.Placeholder = "Search history by title or URL"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return Model{
		input:   ti,
		search:  search,
		browser: browserName,
	}
}

// Selected returns the URL chosen with enter, or "" when the user quit.
func (m Model) Selected() string {
	return m.selected
}

// Init runs the empty search so the recents list shows immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(0, ""))
}

func (m Model) searchCmd(seq int, text string) tea.Cmd {
	search := m.search
	return func() tea.Msg {
		results, err := search(context.Background(), text)
		return resultsMsg{seq: seq, results: results, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case resultsMsg:
		if msg.seq != m.seq || errors.Is(msg.err, history.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.empty = ""
		switch {
		case errors.Is(msg.err, history.ErrNotInstalled):
			m.views = nil
			m.empty = fmt.Sprintf("%s history not found. Is the browser installed?", m.browser)
		case msg.err != nil:
			m.views = nil
			m.err = msg.err
		default:
			m.views = history.RenderResults(msg.results)
			if len(m.views) == 0 {
				m.empty = "No matching websites"
			}
		}
		if m.cursor >= len(m.views) {
			m.cursor = max(len(m.views)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.views) {
				m.selected = m.views[m.cursor].URL
			}
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.views)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	m.loading = true
	m.cursor = 0
	return m, tea.Batch(cmd, m.searchCmd(m.seq, m.input.Value()))
}

// View renders the search box and the result list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("findsite · " + m.browser))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.loading {
		b.WriteString(subtleStyle.Render("  searching…"))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.empty != "":
		b.WriteString(subtleStyle.Render(m.empty))
		b.WriteString("\n")
	}

	section := ""
	for i, v := range m.views {
		if m.height > 0 && i >= m.height-6 {
			break
		}
		if v.Section != section {
			section = v.Section
			b.WriteString(sectionStyle.Render(section))
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s  %s", v.Title, subtleStyle.Render(v.Subtitle+"  "+v.Accessory))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ " + v.Title))
			b.WriteString("  " + subtleStyle.Render(v.Subtitle+"  "+v.Accessory))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("↑/↓ move · enter open · esc quit"))
	return b.String()
}
