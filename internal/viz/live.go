// Package viz plays a finished trajectory back in the terminal as an
// animated chart with a live readout of the loop state.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heliosim/internal/sim"
)

const (
	graphWidth  = 80
	graphHeight = 12
	// Window of trailing samples shown in the chart.
	windowSize = 240
	frameRate  = 30
	// Samples advanced per frame; at dt=10 s a full day plays in ~10 s.
	playbackStride = 30
)

type TickMsg time.Time

// Model plays back a result sample by sample.
type Model struct {
	result   *sim.Result
	cursor   int
	running  bool
	showHelp bool
}

func NewModel(result *sim.Result) Model {
	return Model{result: result, running: true}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.cursor = 0
			m.running = true
		case "[", "left":
			m.scrub(-playbackStride)
		case "]", "right":
			m.scrub(playbackStride)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.scrub(playbackStride)
			if m.cursor == m.result.Len()-1 {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := m.result.Len() - 1; m.cursor > max {
		m.cursor = max
	}
}

func (m Model) View() string {
	if m.result == nil || m.result.Len() == 0 {
		return "no samples\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("solar loop playback"))
	b.WriteString("\n")

	start := m.cursor - windowSize
	if start < 0 {
		start = 0
	}
	window := m.result.TankTemperatureK[start : m.cursor+1]
	if len(window) >= 2 {
		chart := asciigraph.Plot(window,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("tank temperature [K]"),
		)
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}

	b.WriteString(m.readout())

	if m.showHelp {
		b.WriteString(helpStyle.Render("space pause  [ ] scrub  r restart  q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) readout() string {
	i := m.cursor
	t := m.result.TimesS[i]

	pump := pumpOffStyle.Render("OFF")
	if m.result.PumpOn[i] {
		pump = pumpOnStyle.Render("ON")
	}

	rows := []struct{ label, value string }{
		{"time", fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)},
		{"tank", fmt.Sprintf("%.2f K (%.2f degC)", m.result.TankTemperatureK[i], m.result.TankTemperatureK[i]-273.15)},
		{"ambient", fmt.Sprintf("%.2f K", m.result.AmbientTemperatureK[i])},
		{"irradiance", fmt.Sprintf("%.0f W/m2", m.result.IrradianceWM2[i])},
		{"pump", pump},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}
	return b.String()
}
