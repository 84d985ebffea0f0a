// Package tui is a terminal rendition of the model selection menu. It drives
// the same coordinator as the HTTP API and polls the loading state the way a
// camera preview would.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snnd/internal/menu"
	"snnd/pkg/types"
)

// Driver is what the menu needs from the daemon.
type Driver interface {
	View() menu.View
	Choose(menu.Option) (menu.Result, error)
	Progress() types.ProgressResponse
	ClassifierLabel() types.ClassifierResponse
}

// PollInterval is how often the loading state and classifier label are refreshed.
const PollInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model of the menu.
type Model struct {
	d      Driver
	view   menu.View
	items  []menu.Option
	cursor int

	open     bool
	loading  bool
	frame    int
	label    string
	err      error
	width    int
	quitting bool
}

// New returns a model with the menu open.
func New(d Driver) Model {
	m := Model{d: d, open: true}
	m.setView(d.View())
	return m
}

func (m *Model) setView(v menu.View) {
	m.view = v
	items := make([]menu.Option, 0, len(menu.Options()))
	for _, o := range menu.Options() {
		if v.Visible(o) {
			items = append(items, o)
		}
	}
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
}

// Init starts polling.
func (m Model) Init() tea.Cmd { return tick() }

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.poll()
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.open = false
		return m, nil
	case "m":
		if !m.open {
			m.open = true
			m.err = nil
			m.setView(m.d.View())
		}
		return m, nil
	}
	if !m.open {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor >= 0 && m.cursor < len(m.items) {
			m.choose(m.items[m.cursor])
		}
	case "r":
		m.choose(menu.OptRun)
	}
	return m, nil
}

func (m *Model) choose(o menu.Option) {
	res, err := m.d.Choose(o)
	m.err = err
	m.setView(res.View)
	if err != nil {
		return
	}
	if res.Ran {
		m.open = false
		m.poll()
	}
}

// poll refreshes the loading indicator and the classifier label.
func (m *Model) poll() {
	p := m.d.Progress()
	m.loading = p.Loading
	if m.loading {
		m.frame = (m.frame + 1) % len(spinnerFrames)
	}
	m.label = m.d.ClassifierLabel().Label
}

// Loading reports whether the spinner is showing.
func (m Model) Loading() bool { return m.loading }

// Open reports whether the menu is showing.
func (m Model) Open() bool { return m.open }

// Cursor returns the option under the cursor.
func (m Model) Cursor() menu.Option {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor]
}

// Err returns the error of the last selection, if any.
func (m Model) Err() error { return m.err }

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("snnd"))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.open {
		b.WriteString("\n")
		b.WriteString(m.renderMenu())
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	help := "[m] menu · [q] quit"
	if m.open {
		help = "[↑↓] navigate · [enter/space] select · [r] run · [esc] close · [q] quit"
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))

	box := boxStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	return box.Render(b.String())
}

func (m Model) renderStatus() string {
	if m.loading {
		return fmt.Sprintf("%s Loading model...", spinnerFrames[m.frame])
	}
	return "Classifier: " + m.label
}

func (m Model) renderMenu() string {
	var b strings.Builder
	var group menu.Group
	for i, o := range m.items {
		if g := o.Group(); g != group && g != menu.GroupAction {
			if i > 0 {
				b.WriteString("\n")
			}
			group = g
		}
		mark := "( )"
		if m.view.IsChecked(o) {
			mark = checkedStyle.Render("(•)")
		}
		if o == menu.OptRun {
			b.WriteString("\n")
			mark = "   "
		}
		indent := ""
		if g := o.Group(); g == menu.GroupClassifier || g == menu.GroupStyle {
			indent = "    "
		}
		label := o.Label()
		if !m.view.Enabled(o) {
			label = disabledStyle.Render(label)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, indent, mark, " ", label)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
