package bridge

// Chrome is the terminal-rendered Bridge. It keeps the chrome state the
// embedding platform would own: one back control and one primary action,
// each with at most one registered handler. The UI layer renders this
// state into its footer and routes key presses through PressBack and
// PressPrimary.
//
// Single-threaded by contract: only the UI event loop touches it.
type Chrome struct {
	backVisible bool
	onBack      func()

	primaryVisible bool
	primaryEnabled bool
	primaryLabel   string
	onPrimary      func()

	// OnHaptic, when set, receives haptic events so the UI can surface
	// them (a status flash). Failures are ignored by contract.
	OnHaptic func(event string)
}

func NewChrome() *Chrome { return &Chrome{} }

func (c *Chrome) ShowBack(onPress func()) {
	c.backVisible = true
	c.onBack = onPress
}

func (c *Chrome) HideBack() {
	c.backVisible = false
	c.onBack = nil
}

func (c *Chrome) ShowPrimary(label string, onPress func()) {
	c.primaryVisible = true
	c.primaryEnabled = true
	c.primaryLabel = label
	c.onPrimary = onPress
}

func (c *Chrome) HidePrimary() {
	c.primaryVisible = false
	c.primaryEnabled = false
	c.primaryLabel = ""
	c.onPrimary = nil
}

func (c *Chrome) SetPrimaryLabel(label string) { c.primaryLabel = label }
func (c *Chrome) EnablePrimary()               { c.primaryEnabled = true }
func (c *Chrome) DisablePrimary()              { c.primaryEnabled = false }

func (c *Chrome) HapticImpact(style ImpactStyle) { c.haptic("impact:" + string(style)) }
func (c *Chrome) HapticNotification(kind NotificationKind) {
	c.haptic("notification:" + string(kind))
}
func (c *Chrome) HapticSelection() { c.haptic("selection") }

func (c *Chrome) haptic(event string) {
	if c.OnHaptic != nil {
		c.OnHaptic(event)
	}
}

// Reset clears both controls. The UI calls this on every navigation before
// mounting the next page, so a page that failed partway through activation
// can never leave a stale handler behind.
func (c *Chrome) Reset() {
	c.HideBack()
	c.HidePrimary()
}

// BackVisible reports whether the back control is shown.
func (c *Chrome) BackVisible() bool { return c.backVisible }

// Primary returns the primary control's label, visibility and enablement.
func (c *Chrome) Primary() (label string, visible, enabled bool) {
	return c.primaryLabel, c.primaryVisible, c.primaryEnabled
}

// PressBack fires the registered back handler, if the control is shown.
func (c *Chrome) PressBack() bool {
	if !c.backVisible || c.onBack == nil {
		return false
	}
	c.onBack()
	return true
}

// PressPrimary fires the registered primary handler, if shown and enabled.
func (c *Chrome) PressPrimary() bool {
	if !c.primaryVisible || !c.primaryEnabled || c.onPrimary == nil {
		return false
	}
	c.onPrimary()
	return true
}

var _ Bridge = (*Chrome)(nil)
