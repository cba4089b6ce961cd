package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maglo/maglo/internal/query"
)

// toastMsg is delivered when a background fetch reports through the notifier.
type toastMsg struct {
	resource string
	text     string
	isError  bool
}

// toastGoneMsg clears an expired toast. The sequence number guards against an
// old expiry wiping a newer toast.
type toastGoneMsg struct {
	seq int
}

// Toasts bridges query notifications into the bubbletea loop. Fetches run in
// their own goroutines, so Success and Error push onto a buffered channel
// that the app drains with listen.
type Toasts struct {
	ch chan toastMsg
}

// NewToasts returns a notifier whose messages surface as TUI toasts.
func NewToasts() *Toasts {
	return &Toasts{ch: make(chan toastMsg, 16)}
}

// Success implements query.Notifier.
func (t *Toasts) Success(resource, message string) {
	t.push(toastMsg{resource: resource, text: message, isError: false})
}

// Error implements query.Notifier.
func (t *Toasts) Error(resource, message string) {
	t.push(toastMsg{resource: resource, text: message, isError: true})
}

func (t *Toasts) push(m toastMsg) {
	// Never block a fetch goroutine on a full channel.
	select {
	case t.ch <- m:
	default:
	}
}

// listen returns a command that waits for the next notification.
func (t *Toasts) listen() tea.Cmd {
	return func() tea.Msg {
		return <-t.ch
	}
}

// toastDuration is how long a toast stays on screen.
const toastDuration = 4 * time.Second

type toastModel struct {
	current *toastMsg
	seq     int
}

// show displays a toast and schedules its expiry.
func (m *toastModel) show(t toastMsg) tea.Cmd {
	m.current = &t
	m.seq++
	seq := m.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastGoneMsg{seq: seq}
	})
}

// expire clears the toast if it is still the one that was scheduled.
func (m *toastModel) expire(g toastGoneMsg) {
	if g.seq == m.seq {
		m.current = nil
	}
}

func (m toastModel) View() string {
	if m.current == nil {
		return ""
	}
	label := query.Label(m.current.resource)
	if m.current.isError {
		return errorStyle.Render("✗ " + label + ": " + m.current.text)
	}
	return successStyle.Render("✓ " + label + ": " + m.current.text)
}
