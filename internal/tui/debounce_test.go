package tui

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// Keystrokes at 0ms, 100ms and 250ms with a 300ms delay: the timers armed
// at 0 and 100 are invalidated by later keystrokes, and only the timer
// armed at 250 fires, at 550.
func TestDebounceOnlySurvivingTimerFires(t *testing.T) {
	d := newDebounce(300 * time.Millisecond)

	tok0 := d.arm()   // t=0, would fire at 300
	tok100 := d.arm() // t=100, would fire at 400
	tok250 := d.arm() // t=250, fires at 550

	fired := 0
	for _, tok := range []uuid.UUID{tok0, tok100, tok250} {
		if d.fire(tok) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want exactly 1", fired)
	}
	if d.fire(tok250) {
		t.Fatal("a token must not fire twice")
	}
}

func TestDebounceCancelDropsPendingTimer(t *testing.T) {
	d := newDebounce(300 * time.Millisecond)
	tok := d.arm()
	d.cancel()
	if d.fire(tok) {
		t.Fatal("cancelled timer must not fire")
	}
}

func TestDebounceUnarmedNeverFires(t *testing.T) {
	d := newDebounce(300 * time.Millisecond)
	if d.fire(uuid.New()) {
		t.Fatal("unarmed debounce must not fire")
	}
}
