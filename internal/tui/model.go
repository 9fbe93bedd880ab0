// Package tui renders the check-in display in a terminal
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/display"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/qrcode"
)

// stateMsg carries a fresh display snapshot.
type stateMsg display.State

// Model is the root Bubbletea model of the check-in display.
type Model struct {
	ctx     context.Context
	display *display.Display
	changed <-chan struct{}
	title   string
	state   display.State
	qr      string // rendered QR of state.Address
	width   int
	height  int
}

// NewModel wires a display to the model. changed must be signalled by the display's OnChange, see Notifier.
func NewModel(ctx context.Context, d *display.Display, title string, changed <-chan struct{}) Model {
	return Model{
		ctx:     ctx,
		display: d,
		changed: changed,
		title:   title,
		state:   d.State(),
	}
}

// Notifier returns a channel and an OnChange callback that never blocks the display's timers.
func Notifier() (<-chan struct{}, func(display.State)) {
	ch := make(chan struct{}, 1)
	return ch, func(display.State) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (m Model) Init() tea.Cmd {
	m.display.Activate(m.ctx)
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	d, changed := m.display, m.changed
	return func() tea.Msg {
		<-changed
		return stateMsg(d.State())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case stateMsg:
		m = m.withState(display.State(msg))
		return m, m.waitForChange()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.display.Deactivate()
			return m, tea.Quit
		case " ", "p":
			if m.display.State().Active {
				m.display.Deactivate()
			} else {
				m.display.Activate(m.ctx)
			}
			m = m.withState(m.display.State())
		case "r":
			// Restart the activation, which rotates immediately
			m.display.Activate(m.ctx)
			m = m.withState(m.display.State())
		}
	}
	return m, nil
}

func (m Model) withState(s display.State) Model {
	if s.Address != m.state.Address || m.qr == "" {
		m.qr = ""
		if s.Address != "" {
			if rendered, err := qrcode.Terminal(s.Address); err == nil {
				m.qr = rendered
			}
		}
	}
	m.state = s
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("event " + m.state.EventID))
	b.WriteString("\n\n")

	switch {
	case !m.state.Active:
		b.WriteString(dimStyle.Render("Paused"))
		b.WriteString("\n")
	case m.qr == "":
		b.WriteString(dimStyle.Render("Waiting for the first token..."))
		b.WriteString("\n")
	default:
		b.WriteString(qrStyle.Render(strings.TrimRight(m.qr, "\n")))
		b.WriteString("\n\n")
		b.WriteString(countdownStyle.Render(fmt.Sprintf("Next code in %s", formatRemaining(m.state.Remaining))))
		b.WriteString("\n")
	}

	if m.state.Err != nil {
		b.WriteString(errorStyle.Render("Rotation failed: " + m.state.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause/resume · r rotate now · q quit"))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// formatRemaining renders a countdown as m:ss
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
