package bridge

import "testing"

func TestPrimaryLifecycle(t *testing.T) {
	c := NewChrome()

	if c.PressPrimary() {
		t.Fatal("hidden primary must not fire")
	}

	fired := 0
	c.ShowPrimary("Confirm Purchase", func() { fired++ })
	label, visible, enabled := c.Primary()
	if label != "Confirm Purchase" || !visible || !enabled {
		t.Fatalf("primary state = %q %v %v", label, visible, enabled)
	}

	if !c.PressPrimary() {
		t.Fatal("visible enabled primary should fire")
	}
	if fired != 1 {
		t.Fatalf("fired = %d", fired)
	}

	c.DisablePrimary()
	if c.PressPrimary() {
		t.Fatal("disabled primary must not fire")
	}

	c.EnablePrimary()
	if !c.PressPrimary() {
		t.Fatal("re-enabled primary should fire")
	}
	c.SetPrimaryLabel("Creating...")
	label, _, _ = c.Primary()
	if label != "Creating..." {
		t.Fatalf("label = %q", label)
	}

	c.HidePrimary()
	if c.PressPrimary() {
		t.Fatal("hidden primary must not fire")
	}
	if fired != 2 {
		t.Fatalf("fired = %d", fired)
	}
}

func TestResetClearsStaleHandlers(t *testing.T) {
	c := NewChrome()
	c.ShowBack(func() { t.Fatal("stale back handler fired") })
	c.ShowPrimary("Buy", func() { t.Fatal("stale primary handler fired") })

	c.Reset()

	if c.BackVisible() {
		t.Fatal("back still visible after reset")
	}
	if c.PressBack() || c.PressPrimary() {
		t.Fatal("reset chrome must not fire handlers")
	}
}

func TestHapticHook(t *testing.T) {
	c := NewChrome()
	var events []string
	c.OnHaptic = func(e string) { events = append(events, e) }

	c.HapticImpact(ImpactMedium)
	c.HapticNotification(NotifySuccess)
	c.HapticSelection()

	want := []string{"impact:medium", "notification:success", "selection"}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}

	// no hook set: must not panic
	NewChrome().HapticImpact(ImpactLight)
}
