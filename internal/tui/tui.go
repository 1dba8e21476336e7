package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/daylight"
)

const tableHeight = 12

// slider keys move a slider by a tenth of its range, the thermostat by its step
const sliderSteps = 10

type actor interface {
	Act(ctx context.Context, entityID string, action cards.Action) (cards.View, error)
}

// messages the dashboard sends the model
type CardMessage struct {
	View cards.View
}

type RemovedMessage struct {
	EntityID string
}

type FailureMessage struct {
	Failure commands.Failure
}

type ThemeMessage struct {
	Theme daylight.Theme
}

type actionResultMessage struct {
	entityID string
	err      error
}

type palette struct {
	border   lipgloss.Color
	text     lipgloss.Color
	accent   lipgloss.Color
	muted    lipgloss.Color
	selected lipgloss.Color
	warning  lipgloss.Color
}

var palettes = map[daylight.Theme]palette{
	daylight.ThemeDay: {
		border:   lipgloss.Color("240"),
		text:     lipgloss.Color("235"),
		accent:   lipgloss.Color("214"),
		muted:    lipgloss.Color("245"),
		selected: lipgloss.Color("229"),
		warning:  lipgloss.Color("160"),
	},
	daylight.ThemeNight: {
		border:   lipgloss.Color("238"),
		text:     lipgloss.Color("252"),
		accent:   lipgloss.Color("172"),
		muted:    lipgloss.Color("242"),
		selected: lipgloss.Color("57"),
		warning:  lipgloss.Color("203"),
	},
}

// the terminal dashboard, fed card changes like any other renderer
type TUI struct {
	teaProgram *tea.Program
}

func NewTUI(ctx context.Context, board actor, views []cards.View, theme daylight.Theme) *TUI {
	m := NewModel(ctx, board, views, theme)
	return &TUI{tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))}
}

// blocks until the user quits or the context ends
func (t *TUI) Run() error {
	_, err := t.teaProgram.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (t *TUI) PublishCard(view cards.View) {
	t.teaProgram.Send(CardMessage{View: view})
}

func (t *TUI) PublishRemoved(entityID string) {
	t.teaProgram.Send(RemovedMessage{EntityID: entityID})
}

func (t *TUI) PublishFailure(failure commands.Failure) {
	t.teaProgram.Send(FailureMessage{Failure: failure})
}

func (t *TUI) SetTheme(theme daylight.Theme) {
	t.teaProgram.Send(ThemeMessage{Theme: theme})
}

type Model struct {
	ctx    context.Context
	board  actor
	table  table.Model
	views  []cards.View
	theme  daylight.Theme
	status string
}

func NewModel(ctx context.Context, board actor, views []cards.View, theme daylight.Theme) Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Room", Width: 12},
		{Title: "State", Width: 12},
		{Title: "Detail", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	m := Model{ctx: ctx, board: board, table: t, theme: theme}
	m.views = append([]cards.View{}, views...)
	cards.SortViews(m.views)
	m.applyTheme()
	m.refreshRows("")
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			return m, m.act(func(cards.View) (cards.Action, bool) { return cards.ToggleAction(), true })
		case "+", "=":
			return m, m.act(sliderAction(cards.ControlBrightness, 1))
		case "-":
			return m, m.act(sliderAction(cards.ControlBrightness, -1))
		case "]":
			return m, m.act(sliderAction(cards.ControlColorTemp, 1))
		case "[":
			return m, m.act(sliderAction(cards.ControlColorTemp, -1))
		case "T":
			return m, m.act(sliderAction(cards.ControlTemperature, 1))
		case "t":
			return m, m.act(sliderAction(cards.ControlTemperature, -1))
		}

	case CardMessage:
		selected := m.selectedID()
		m.views = lo.Reject(m.views, func(v cards.View, _ int) bool { return v.EntityID == msg.View.EntityID })
		m.views = append(m.views, msg.View)
		cards.SortViews(m.views)
		m.refreshRows(selected)
		return m, nil

	case RemovedMessage:
		selected := m.selectedID()
		m.views = lo.Reject(m.views, func(v cards.View, _ int) bool { return v.EntityID == msg.EntityID })
		m.refreshRows(selected)
		return m, nil

	case FailureMessage:
		m.status = fmt.Sprintf("%s %s failed: %s", msg.Failure.EntityID, msg.Failure.Service, msg.Failure.Error)
		return m, nil

	case ThemeMessage:
		m.theme = msg.Theme
		m.applyTheme()
		return m, nil

	case actionResultMessage:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %s", msg.entityID, msg.err)
		} else {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(message)
	return m, cmd
}

func (m Model) View() string {
	p := m.palette()
	tableStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border)
	detailStyle := tableStyle.Copy().
		Padding(0, 1).
		Width(44).
		Foreground(p.text)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		tableStyle.Render(m.table.View()),
		detailStyle.Render(m.detail()),
	)

	help := lipgloss.NewStyle().Foreground(p.muted).
		Render("space toggle • +/- brightness • [/] colour temp • t/T target • q quit")

	lines := []string{body}
	if m.status != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.warning).Render(m.status))
	}
	lines = append(lines, help)
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) detail() string {
	view, ok := m.selected()
	if !ok {
		return "No cards"
	}
	p := m.palette()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(view.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.muted).Render(view.EntityID))
	b.WriteString("\n")

	for _, r := range view.Readings {
		fmt.Fprintf(&b, "\n%s: %s", r.Label, r.Value)
	}
	for _, c := range view.Controls {
		line := fmt.Sprintf("%s: %s", c.Label, controlText(c))
		if c.Disabled {
			line = lipgloss.NewStyle().Foreground(p.muted).Render(line + " (disabled)")
		}
		b.WriteString("\n" + line)
	}
	if view.Tooltip != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(p.warning).Render(view.Tooltip))
	}
	return b.String()
}

// sends the action for the selected card in the background
func (m Model) act(build func(cards.View) (cards.Action, bool)) tea.Cmd {
	view, ok := m.selected()
	if !ok {
		return nil
	}
	action, ok := build(view)
	if !ok {
		return nil
	}
	if view.Unavailable {
		return func() tea.Msg {
			return actionResultMessage{entityID: view.EntityID, err: errors.New(constants.UnavailableTooltip)}
		}
	}

	ctx, board := m.ctx, m.board
	return func() tea.Msg {
		_, err := board.Act(ctx, view.EntityID, action)
		return actionResultMessage{entityID: view.EntityID, err: err}
	}
}

func sliderAction(control string, direction float64) func(cards.View) (cards.Action, bool) {
	return func(view cards.View) (cards.Action, bool) {
		c, ok := view.Control(control)
		if !ok {
			return cards.Action{}, false
		}
		step := (c.Max - c.Min) / sliderSteps
		if control == cards.ControlTemperature && c.Step > 0 {
			step = c.Step
		}
		return cards.SliderAction(control, c.Value+direction*step), true
	}
}

func (m *Model) refreshRows(selectedID string) {
	rows := lo.Map(m.views, func(v cards.View, _ int) table.Row {
		return table.Row{v.Name, v.Room, stateText(v), detailText(v)}
	})
	m.table.SetRows(rows)

	if _, index, found := lo.FindIndexOf(m.views, func(v cards.View) bool { return v.EntityID == selectedID }); found {
		m.table.SetCursor(index)
	} else if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(lo.Max([]int{len(rows) - 1, 0}))
	}
}

func (m *Model) applyTheme() {
	p := m.palette()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true).
		Bold(false)
	s.Cell = s.Cell.Foreground(p.text)
	s.Selected = s.Selected.
		Foreground(p.selected).
		Background(p.accent).
		Bold(false)
	m.table.SetStyles(s)
}

func (m Model) palette() palette {
	if p, ok := palettes[m.theme]; ok {
		return p
	}
	return palettes[daylight.ThemeDay]
}

func (m Model) selected() (cards.View, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.views) {
		return cards.View{}, false
	}
	return m.views[i], true
}

func (m Model) selectedID() string {
	v, _ := m.selected()
	return v.EntityID
}

func stateText(v cards.View) string {
	if v.Unavailable {
		return constants.StateUnavailable
	}
	return v.State
}

// the slider displays, or the readings for cards without sliders
func detailText(v cards.View) string {
	parts := lo.FilterMap(v.Controls, func(c cards.Control, _ int) (string, bool) {
		return c.Display, c.Type == cards.ControlTypeSlider && c.Display != ""
	})
	if len(parts) == 0 {
		parts = lo.Map(v.Readings, func(r cards.Reading, _ int) string { return r.Value })
	}
	return strings.Join(parts, " ")
}

func controlText(c cards.Control) string {
	if c.Type == cards.ControlTypeToggle {
		if c.Value == 1 {
			return "on"
		}
		return "off"
	}
	return c.Display
}
