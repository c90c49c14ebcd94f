package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries the timer generation it was scheduled for. A tick whose
// generation no longer matches the model's is dropped, which is how a timer
// is cancelled.
type tickMsg struct {
	gen int
	at  time.Time
}

type timer struct {
	gen     int
	running bool
}

// start begins a new generation and returns the first tick.
func (t *timer) start() tea.Cmd {
	t.gen++
	t.running = true
	return t.next()
}

// stop cancels any tick in flight.
func (t *timer) stop() {
	t.gen++
	t.running = false
}

// accepts reports whether msg belongs to the running generation.
func (t *timer) accepts(msg tickMsg) bool {
	return t.running && msg.gen == t.gen
}

func (t *timer) next() tea.Cmd {
	gen := t.gen
	return tea.Tick(time.Second, func(at time.Time) tea.Msg {
		return tickMsg{gen: gen, at: at}
	})
}
