// Package ui renders live melt progress with Bubble Tea. The model consumes
// driver events from a channel and quits when the channel closes.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"meltr/internal/driver"
)

type meltModel struct {
	path    string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	frac    float64
	total   int
	chunks  int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewMeltModel returns a Bubble Tea model that renders melt progress for
// one source file.
func NewMeltModel(path string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 60

	return &meltModel{
		path:    path,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *meltModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *meltModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := driver.Event(msg)
		if ev.Total > 0 {
			m.total = ev.Total
		}
		if ev.Fraction > m.frac {
			m.frac = ev.Fraction
		}
		if ev.ChunkDone {
			m.chunks++
		}
		return m, tea.Batch(m.prog.SetPercent(m.frac), m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *meltModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	header := "melting " + runewidth.Truncate(m.path, m.width-12, "...")
	if m.done {
		header = "melted " + runewidth.Truncate(m.path, m.width-12, "...")
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("%d chunk(s)", m.chunks)
	if m.total > 0 {
		stats = fmt.Sprintf("%s · %d bytes", stats, m.total)
	}
	b.WriteString(statStyle.Render(stats))
	b.WriteString("\n")

	return b.String()
}

func (m *meltModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}
