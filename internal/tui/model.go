package tui

import (
	"fmt"
	"strings"
	"time"

	"pomopet/internal/core/controller"
	"pomopet/internal/core/timer"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
)

const (
	defaultWidth = 44
	flashTicks   = 8
)

// TickMsg carries the wall time of a render tick.
type TickMsg time.Time

// Model is the bubbletea model for the terminal frontend.
type Model struct {
	controller *controller.Controller
	interval   time.Duration
	last       time.Time
	width      int
	progress   progress.Model
	theme      Theme
	flash      int
	quitting   bool
}

// New creates a terminal model ticking every interval.
func New(ctrl *controller.Controller, interval time.Duration, clock clockwork.Clock) *Model {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := &Model{
		controller: ctrl,
		interval:   interval,
		last:       clock.Now(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		theme:      DefaultTheme(),
	}
	m.resize(defaultWidth)
	ctrl.OnPhaseChange(func(timer.Transition) {
		m.flash = flashTicks
	})
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.last)
		m.last = now
		if elapsed > 0 {
			m.controller.Tick(elapsed)
		}
		if m.flash > 0 {
			m.flash--
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width - 8)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m.quit()
		}
		command, ok := controller.CommandForKey(key)
		if !ok {
			return m, nil
		}
		if command == controller.CommandQuit {
			return m.quit()
		}
		m.controller.Dispatch(command)
		return m, nil
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.controller.Dispatch(controller.CommandQuit)
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) resize(width int) {
	if width < 20 {
		width = 20
	}
	m.width = width
	m.progress.Width = width
	m.controller.Resize(width * cellPixels)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snapshot := m.controller.Snapshot()
	state := snapshot.Timer

	phaseStyle := m.theme.Work
	phase := "WORK"
	if state.Phase == timer.PhaseBreak {
		phaseStyle = m.theme.Break
		phase = "BREAK"
	}
	if m.flash > 0 && m.flash%2 == 0 {
		phaseStyle = m.theme.Flash
	}
	if !state.Running {
		phase += " (paused)"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		phaseStyle.Render(phase),
		"  ",
		m.theme.Timer.Render(timer.FormatRemaining(state.Remaining)),
	)
	sessions := m.theme.Dim.Render(ansi.Truncate(
		fmt.Sprintf("%s · %d sessions completed", snapshot.PetName, state.Completed), m.width, "…"))

	var body strings.Builder
	body.WriteString(header)
	body.WriteString("\n")
	body.WriteString(m.progress.ViewAs(snapshot.Progress))
	body.WriteString("\n")
	body.WriteString(sessions)
	body.WriteString("\n\n")
	body.WriteString(m.theme.Pet.Render(petLine(snapshot, m.width)))
	body.WriteString("\n")
	body.WriteString(m.theme.Ground.Render(strings.Repeat("─", m.width)))

	help := m.theme.Dim.Render(ansi.Truncate("space start/pause · r reset · s skip · esc quit", m.width, "…"))
	return m.theme.Base.Render(m.theme.Frame.Render(body.String()) + "\n" + help)
}

// Run starts the terminal program and blocks until it exits.
func Run(ctrl *controller.Controller, interval time.Duration) error {
	program := tea.NewProgram(New(ctrl, interval, nil), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
