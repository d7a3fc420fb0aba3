package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// debounce is a single cancellable timer owned by its page. Arming it
// invalidates any timer still pending, so at most one armed timer exists
// at any instant; only the token that survives uncancelled may fire.
type debounce struct {
	delay time.Duration
	token uuid.UUID
	armed bool
}

func newDebounce(delay time.Duration) *debounce {
	return &debounce{delay: delay}
}

// arm replaces the pending timer and returns the new token.
func (d *debounce) arm() uuid.UUID {
	d.token = uuid.New()
	d.armed = true
	return d.token
}

// tick arms the timer and returns the command that delivers its token
// after the delay.
func (d *debounce) tick() tea.Cmd {
	token := d.arm()
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{token: token}
	})
}

// fire reports whether the delivered token is still the live one. A stale
// token, a cancelled timer, or a second delivery all return false.
func (d *debounce) fire(token uuid.UUID) bool {
	if !d.armed || token != d.token {
		return false
	}
	d.armed = false
	return true
}

// cancel invalidates the pending timer, if any. The home page calls this
// before navigating away so a stale fetch can never fire into the new
// page.
func (d *debounce) cancel() {
	d.armed = false
}
