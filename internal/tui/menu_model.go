package tui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/worklog/internal/logger"
	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
)

// screen is what the menu is currently showing
type screen int

const (
	screenMenu screen = iota
	screenDescription
	screenHistoryCount
	screenResult
)

// menuOptions are the numbered entries in display order
var menuOptions = []string{
	"Start working day",
	"Start new activity",
	"End current activity",
	"End working day",
	"View history",
	"Exit",
}

// clockTickMsg is sent every second to refresh elapsed times
type clockTickMsg struct{}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

// MenuModel is the numbered work log menu
type MenuModel struct {
	tracker *tracker.Tracker

	width  int
	height int

	screen screen
	state  tracker.State
	input  textinput.Model
	output viewport.Model

	err      error // storage failure, ends the program
	quitting bool
}

// NewMenuModel creates the menu over an existing tracker
func NewMenuModel(tr *tracker.Tracker) MenuModel {
	input := textinput.New()
	input.Width = 60
	input.CharLimit = 0
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return MenuModel{
		tracker: tr,
		screen:  screenMenu,
		state:   tr.Status(),
		input:   input,
		output:  viewport.New(80, 20),
	}
}

// Init starts the clock
func (m MenuModel) Init() tea.Cmd {
	return clockTick()
}

// Update handles messages
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		m.state = m.tracker.Status()
		if m.quitting {
			return m, nil
		}
		return m, clockTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = msg.Width - 4
		m.output.Height = max(msg.Height-6, 3)
		m.input.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		switch m.screen {
		case screenMenu:
			return m.handleMenuKey(msg)
		case screenDescription, screenHistoryCount:
			return m.handlePromptKey(msg)
		case screenResult:
			return m.handleResultKey(msg)
		}
	}

	return m, nil
}

func (m MenuModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		return m.run(func(w io.Writer) error {
			day, err := m.tracker.StartDay()
			if err == nil {
				report.DayStarted(w, day)
			}
			return err
		})
	case "2":
		// Ask for the description only when it can be used
		if m.state.Day == nil {
			return m.showResult(func(w io.Writer) { report.Refusal(w, tracker.ErrNoOpenDay) })
		}
		return m.prompt(screenDescription, "Describe the activity...")
	case "3":
		return m.run(func(w io.Writer) error {
			activity, err := m.tracker.EndActivity()
			if err == nil {
				report.ActivityEnded(w, activity)
			}
			return err
		})
	case "4":
		return m.run(func(w io.Writer) error {
			summary, err := m.tracker.EndDay()
			if err == nil {
				report.DayEnded(w, summary)
			}
			return err
		})
	case "5":
		return m.prompt(screenHistoryCount, fmt.Sprintf("How many days? (Enter for %d)", m.tracker.HistoryDays()))
	case "6", "q", "esc":
		return m.quit()
	}

	return m, nil
}

func (m MenuModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.input.Reset()
		m.screen = screenMenu
		return m, nil

	case "enter":
		value := m.input.Value()
		current := m.screen
		m.input.Blur()
		m.input.Reset()

		if current == screenDescription {
			return m.run(func(w io.Writer) error {
				activity, err := m.tracker.StartActivity(value)
				if err == nil {
					report.ActivityStarted(w, activity)
				}
				return err
			})
		}

		count := m.tracker.HistoryCount(value)
		return m.run(func(w io.Writer) error {
			days, err := m.tracker.History(count)
			if err == nil {
				report.History(w, days, count)
			}
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m MenuModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "k", "j", "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	case "q":
		return m.quit()
	default:
		m.screen = screenMenu
		return m, nil
	}
}

// run performs a tracker operation and shows what it printed. Refusals are
// shown like any other result, anything else stops the program.
func (m MenuModel) run(op func(w io.Writer) error) (tea.Model, tea.Cmd) {
	var buf bytes.Buffer

	err := op(&buf)
	switch {
	case err == nil:
	case tracker.IsRefusal(err):
		logger.Debug("operation refused", "reason", err)
		buf.Reset()
		report.Refusal(&buf, err)
	default:
		logger.Error("storage failure", "error", err)
		m.err = err
		return m.quit()
	}

	m.state = m.tracker.Status()
	return m.showResult(func(w io.Writer) { _, _ = buf.WriteTo(w) })
}

func (m MenuModel) showResult(render func(w io.Writer)) (tea.Model, tea.Cmd) {
	var buf bytes.Buffer
	render(&buf)

	m.output.SetContent(strings.TrimRight(buf.String(), "\n"))
	m.output.GotoTop()
	m.screen = screenResult
	return m, nil
}

func (m MenuModel) prompt(s screen, placeholder string) (tea.Model, tea.Cmd) {
	m.screen = s
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m MenuModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m MenuModel) goodbye() string {
	state := m.tracker.Status()
	switch {
	case state.Activity != nil:
		return fmt.Sprintf("Activity '%s' keeps running. Run 'worklog' again to end it.", state.Activity.Description)
	case state.Day != nil:
		return "Working day is still open. Run 'worklog' again to end it."
	default:
		return "Bye."
	}
}

// View renders the menu
func (m MenuModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render("WORK TIME LOG")

	var body string
	switch m.screen {
	case screenResult:
		body = m.renderResult()
	case screenDescription, screenHistoryCount:
		body = m.renderPrompt()
	default:
		body = m.renderMenu()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, m.renderHelpBar())
}

func (m MenuModel) renderStatus() string {
	var b strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	if m.state.Day == nil {
		b.WriteString(labelStyle.Render("- No working day open"))
	} else {
		b.WriteString(labelStyle.Render("- Working day open since ") +
			valueStyle.Render(m.state.Day.StartTime.String()) +
			labelStyle.Render(" ("+tracker.FormatDuration(m.state.DayElapsed)+")"))
	}
	b.WriteString("\n")

	if m.state.Activity == nil {
		b.WriteString(labelStyle.Render("- No activity running"))
		return b.String()
	}

	b.WriteString(labelStyle.Render("- Running activity: ") +
		valueStyle.Render("'"+m.state.Activity.Description+"'") +
		labelStyle.Render(" (started "+m.state.Activity.StartTime.String()+")"))

	if m.width >= bigClockWidth(m.state.ActivityElapsed)+4 && m.height >= 22 {
		clock := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Render(renderBigClock(m.state.ActivityElapsed))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width-4, lipgloss.Center, clock))
	}

	return b.String()
}

func (m MenuModel) renderMenu() string {
	var b strings.Builder

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	numberStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	for i, option := range menuOptions {
		b.WriteString(numberStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(textStyle.Render(option))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m MenuModel) renderPrompt() string {
	label := "Describe the activity:"
	if m.screen == screenHistoryCount {
		label = "How many working days do you want to see?"
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Render(labelStyle.Render(label) + "\n\n" + m.input.View())
}

func (m MenuModel) renderResult() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(m.output.View())
}

// renderHelpBar renders the help bar at the bottom
func (m MenuModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch m.screen {
	case screenResult:
		helpText = "↑/↓ scroll · any key back to menu · q quit"
	case screenDescription, screenHistoryCount:
		helpText = "enter confirm · esc cancel"
	default:
		helpText = "1-6 choose · q/esc exit · ctrl+c force quit"
	}

	return helpStyle.Render(helpText)
}
