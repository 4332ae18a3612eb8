package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/heliosim/internal/sim"
)

func playbackResult() *sim.Result {
	r := &sim.Result{}
	for i := 0; i < 500; i++ {
		r.TimesS = append(r.TimesS, float64(i)*10)
		r.TankTemperatureK = append(r.TankTemperatureK, 293.15+float64(i)*0.01)
		r.AmbientTemperatureK = append(r.AmbientTemperatureK, 290)
		r.IrradianceWM2 = append(r.IrradianceWM2, 400)
		r.PumpOn = append(r.PumpOn, i%2 == 0)
	}
	return r
}

func TestViewRendersReadout(t *testing.T) {
	m := NewModel(playbackResult())
	m.cursor = 360 // 3600 s

	view := m.View()
	if !strings.Contains(view, "01:00:00") {
		t.Errorf("missing formatted time in view:\n%s", view)
	}
	if !strings.Contains(view, "tank temperature [K]") {
		t.Errorf("missing chart caption in view:\n%s", view)
	}
}

func TestViewEmptyResult(t *testing.T) {
	m := NewModel(&sim.Result{})
	if got := m.View(); !strings.Contains(got, "no samples") {
		t.Errorf("unexpected view for empty result: %q", got)
	}
}

func TestUpdateQuits(t *testing.T) {
	m := NewModel(playbackResult())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestTickAdvancesAndStopsAtEnd(t *testing.T) {
	m := NewModel(playbackResult())

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.cursor != playbackStride {
		t.Errorf("expected cursor %d after one tick, got %d", playbackStride, m.cursor)
	}

	m.cursor = m.result.Len() - 2
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.cursor != m.result.Len()-1 {
		t.Errorf("expected cursor clamped to last sample, got %d", m.cursor)
	}
	if m.running {
		t.Error("playback should pause at the end")
	}
}

func TestScrubClamps(t *testing.T) {
	m := NewModel(playbackResult())
	m.scrub(-100)
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.cursor)
	}
	m.scrub(1 << 20)
	if m.cursor != m.result.Len()-1 {
		t.Errorf("expected cursor clamped at end, got %d", m.cursor)
	}
}
