package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/dread/internal/engine"
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/player"
)

type sessionState int

const (
	stateLocations sessionState = iota
	stateEvent
	stateGameOver
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))

	consequenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7D7"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// screen receives everything the engine pushes: event presentations,
// results, stat changes, turn updates and the end of the run. The model
// keeps a pointer to it so pushes made during Update are visible to View.
type screen struct {
	log      []string
	labels   []string
	location string
	gameOver string
}

func (s *screen) ShowEvent(text, image string, labels []string) {
	s.log = append(s.log, gameStyle.Render(strings.TrimSpace(text)))
	s.labels = labels
}

func (s *screen) ShowResult(r engine.Result) {
	lines := []string{titleStyle.Render("RESULT")}
	if r.Passed != nil {
		line := r.CheckLine()
		if r.Roll > 0 {
			line += fmt.Sprintf(" (rolled %d)", r.Roll)
		}
		if *r.Passed {
			lines = append(lines, passStyle.Render(line))
		} else {
			lines = append(lines, failStyle.Render(line))
		}
	}
	for _, sum := range r.Summaries {
		lines = append(lines, consequenceStyle.Render(sum))
	}
	s.log = append(s.log, strings.Join(lines, "\n"))
	s.labels = nil
}

func (s *screen) statChanged(c player.Change) {
	s.log = append(s.log, helpStyle.Render(StatChangeLine(c)))
}

func (s *screen) turnAdvanced(u engine.TurnUpdate) {
	s.location = u.Location.Name
}

// StatChangeLine renders "STAMINA changed: 10 → 7".
func StatChangeLine(c player.Change) string {
	return fmt.Sprintf("%s changed: %d → %d", strings.ToUpper(string(c.Stat)), c.Old, c.New)
}

type model struct {
	state    sessionState
	session  *engine.Session
	screen   *screen
	viewport viewport.Model

	locations []*models.Location
	cursor    int
	width     int
	height    int
}

// NewModel builds the TUI over a session. The session must have been built
// with the display returned by NewDisplay.
func NewModel(s *engine.Session, d *Display) model {
	scr := d.screen
	s.State.Stats.Subscribe(scr.statChanged)
	s.Controller.SubscribeTurns(scr.turnAdvanced)
	s.OnGameOver(func(g engine.GameOver) { scr.gameOver = g.Message })

	return model{
		state:     stateLocations,
		session:   s,
		screen:    scr,
		locations: s.Locations(),
	}
}

// Display is the engine-facing half of the TUI.
type Display struct {
	*screen
}

func NewDisplay() *Display {
	return &Display{screen: &screen{}}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		switch m.state {
		case stateLocations:
			m = m.updateLocations(msg)
			if msg.String() == "q" {
				return m, tea.Quit
			}
		case stateEvent:
			m = m.updateEvent(msg)
		case stateGameOver:
			switch msg.String() {
			case "n":
				m.session.NewGame()
				m.screen.log = nil
				m.screen.labels = nil
				m.screen.location = ""
				m.screen.gameOver = ""
				m.locations = m.session.Locations()
				m.cursor = 0
				m.state = stateLocations
			case "q", "esc":
				return m, tea.Quit
			}
		}
		if m.screen.gameOver != "" {
			m.state = stateGameOver
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.70)
		m.viewport.Height = msg.Height - 6
		m.refresh()
	}
	return m, nil
}

func (m model) updateLocations(msg tea.KeyMsg) model {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.locations)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.locations) == 0 {
			return m
		}
		loc := m.locations[m.cursor]
		m.screen.log = append(m.screen.log, userStyle.Render("> Investigate "+loc.Name))
		if err := m.session.Investigate(loc.ID); err != nil {
			m.screen.log = append(m.screen.log, failStyle.Render("Nothing stirs. ("+err.Error()+")"))
			return m
		}
		if m.session.Resolver.Phase() == engine.PhaseAwaitingChoice {
			m.state = stateEvent
		} else {
			m.screen.log = append(m.screen.log, helpStyle.Render("You find nothing but lost time."))
		}
	}
	return m
}

func (m model) updateEvent(msg tea.KeyMsg) model {
	key := msg.String()
	switch {
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		idx := int(key[0] - '1')
		if m.session.Resolver.Phase() != engine.PhaseAwaitingChoice {
			return m
		}
		if _, ok := m.session.Choose(idx); ok {
			m.screen.log = append(m.screen.log, helpStyle.Render("[SPACE] continue"))
		}
	case key == " " || key == "enter" || key == "esc":
		if m.session.Resolver.Phase() == engine.PhaseAwaitingChoice && key != "esc" {
			return m
		}
		if !m.session.Close() {
			m.screen.labels = nil
			m.locations = m.session.Locations()
			m.state = stateLocations
		}
	}
	return m
}

func (m *model) refresh() {
	if m.viewport.Width == 0 && m.width > 0 {
		m.viewport = viewport.New(int(float64(m.width)*0.70), m.height-6)
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.screen.log, "\n\n")))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var prompt string
	switch m.state {
	case stateLocations:
		prompt = m.renderLocations() + "\n" + helpStyle.Render("↑/↓ choose a location, enter to investigate, q to quit.")
	case stateEvent:
		prompt = strings.Join(m.screen.labels, "\n")
		if m.session.Resolver.Phase() == engine.PhaseAwaitingChoice {
			prompt += "\n" + helpStyle.Render("Press 1-9 to choose, esc to turn away.")
		} else {
			prompt += "\n" + helpStyle.Render("Continue [SPACE]")
		}
	case stateGameOver:
		prompt = gameOverStyle.Render("GAME OVER: "+m.screen.gameOver) + "\n" + helpStyle.Render("n for a new game, q to quit.")
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+prompt) + "\n"
}

func (m model) renderLocations() string {
	if len(m.locations) == 0 {
		return "(nowhere left to go)"
	}
	var b strings.Builder
	for i, loc := range m.locations {
		line := "  " + loc.Label()
		if i == m.cursor {
			line = selectedStyle.Render("> " + loc.Label())
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderState() string {
	st := m.session.State

	location := titleStyle.Render("LOCATION") + "\n" + LocationLine(m.screen.location) + "\n" + TurnLine(m.session.Turn()) + "\n\n"
	stats := titleStyle.Render("STATS") + "\n" + HUDLines(st.Stats) + "\n\n"

	mystery := titleStyle.Render("MYSTERY") + "\n"
	if cur, ok := st.CurrentMystery(); ok {
		mystery += fmt.Sprintf("%s: %d\n\n", cur, st.MysteryProgress[cur])
	} else {
		mystery += "(none)\n\n"
	}

	inventory := titleStyle.Render("INVENTORY") + "\n"
	if len(st.Inventory) == 0 {
		inventory += "(empty)"
	} else {
		for _, item := range st.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	stateWidth := int(float64(m.width) * 0.27)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(location + stats + mystery + inventory)
}

func Run(s *engine.Session, d *Display) error {
	p := tea.NewProgram(NewModel(s, d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
