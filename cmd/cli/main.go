package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

const (
	envAPIURL     = "FITPLAN_API_URL"
	defaultAPIURL = "http://localhost:8080"
	pollInterval  = 500 * time.Millisecond
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).PaddingLeft(2)

type model struct {
	api      *client
	snap     planner.Snapshot // Last state seen from the server
	form     form             // Profile form, shown in the calculator state
	busy     bool             // Whether a request is in flight
	spinner  spinner.Model
	err      error
	width    int
	height   int
	viewport viewport.Model // Results and plans
	keys     keyMap
	help     help.Model
	theme    theme
}

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Submit      key.Binding
	Generate    key.Binding
	Recalculate key.Binding
	Language    key.Binding
	Theme       key.Binding
	Up          key.Binding
	Down        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Generate:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate plans")),
	Recalculate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recalculate")),
	Language:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "English/العربية")),
	Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "light/dark")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:        key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
}

// formKeys are the bindings active on the profile form, where letters are
// typed into the inputs.
type formKeys struct{ keyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Submit}}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Recalculate, k.Language, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Generate, k.Recalculate},
		{k.Language, k.Theme},
		{k.Help, k.Quit},
	}
}

type snapshotMsg planner.Snapshot
type errMsg error
type pollMsg struct{}

func initialModel(api *client) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		api:      api,
		form:     newForm(models.DefaultUser()),
		busy:     true,
		spinner:  s,
		viewport: viewport.New(0, 0),
		keys:     keys,
		help:     help.New(),
		theme:    themeDark,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.request(m.api.State))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.help.Width = msg.Width
		m.refreshContent()
		return m, nil

	case snapshotMsg:
		return m.applySnapshot(planner.Snapshot(msg))

	case errMsg:
		m.err = msg
		m.busy = false
		return m, nil

	case pollMsg:
		if m.snap.State != planner.StateGenerating {
			return m, nil
		}
		return m, func() tea.Msg {
			snap, err := m.api.State()
			if err != nil {
				return errMsg(err)
			}
			return snapshotMsg(snap)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.snap.State == planner.StateCalculator && !m.busy {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.form.move(-1)
	case key.Matches(msg, m.keys.Submit):
		u, err := m.form.User()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.busy = true
		return m, m.request(func() (planner.Snapshot, error) {
			return m.api.SubmitProfile(u)
		})
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.toggle()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Language):
		lang := m.snap.Language.Toggle()
		return m, m.request(func() (planner.Snapshot, error) {
			return m.api.SetLanguage(lang)
		})

	case key.Matches(msg, m.keys.Generate) && m.snap.State == planner.StateResults && !m.busy:
		m.err = nil
		m.busy = true
		m.snap.State = planner.StateGenerating
		return m, tea.Batch(
			m.spinner.Tick,
			m.request(m.api.GeneratePlans),
			poll(),
		)

	case key.Matches(msg, m.keys.Recalculate) && (m.snap.State == planner.StateResults || m.snap.State == planner.StatePlans) && !m.busy:
		m.err = nil
		m.busy = true
		return m, m.request(m.api.Recalculate)

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applySnapshot adopts the server's state. Poll responses may arrive after
// the generation request has already returned, so a stale generating
// snapshot does not override a finished one.
func (m model) applySnapshot(s planner.Snapshot) (tea.Model, tea.Cmd) {
	if s.State == planner.StateGenerating && m.snap.State != planner.StateGenerating && !m.busy {
		return m, nil
	}

	entering := s.State == planner.StateCalculator && (m.snap.State != planner.StateCalculator || m.busy)
	prev := m.snap.State
	m.snap = s
	if s.State != planner.StateGenerating {
		m.busy = false
	}

	if s.Error != "" {
		m.err = errors.New(s.Error)
	} else if prev != s.State {
		m.err = nil
	}

	if entering {
		u := models.DefaultUser()
		if s.User != nil {
			u = *s.User
		}
		m.form = newForm(u)
	}

	m.refreshContent()

	if s.State == planner.StateGenerating {
		return m, poll()
	}
	return m, nil
}

func (m *model) refreshContent() {
	md := snapshotMarkdown(m.snap)
	if md == "" {
		m.viewport.SetContent("")
		return
	}
	out, err := render(md, m.width, m.theme)
	if err != nil {
		m.err = err
		return
	}
	m.viewport.SetContent(out)
	if m.snap.State != planner.StatePlans {
		m.viewport.GotoTop()
	}
}

func (m model) View() string {
	var errView string
	if m.err != nil {
		errView = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	switch {
	case m.snap.State == planner.StateGenerating || (m.busy && m.snap.State == ""):
		status := m.snap.Status
		if status == "" {
			status = "Loading..."
		}
		return errView + lipgloss.NewStyle().
			Width(m.width).
			Height(m.height-lipgloss.Height(errView)).
			AlignVertical(lipgloss.Center).
			Align(lipgloss.Center).
			Render(lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", status))

	case m.snap.State == planner.StateCalculator:
		helpView := lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(m.help.View(formKeys{m.keys}))
		return lipgloss.JoinVertical(lipgloss.Left, errView, m.form.View(), helpView)
	}

	helpView := lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(m.help.View(m.keys))
	contentHeight := m.height - lipgloss.Height(helpView) - lipgloss.Height(errView)
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.viewport.Height = contentHeight

	return lipgloss.JoinVertical(lipgloss.Left, errView+m.viewport.View(), helpView)
}

func (m model) request(fn func() (planner.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		snap, err := fn()
		if err != nil {
			return errMsg(err)
		}
		return snapshotMsg(snap)
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func main() {
	apiURL := os.Getenv(envAPIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	p := tea.NewProgram(initialModel(newClient(apiURL)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
