// Package bridge abstracts the embedding platform's UI chrome: the
// contextual back control, the contextual primary action, and haptic
// feedback. Pages receive a Bridge instead of reaching for a process-wide
// singleton; each page registers its handlers on activation and must
// release them on deactivation so stale handlers never fire for the wrong
// page.
package bridge

// ImpactStyle mirrors the platform's impact haptic variants.
type ImpactStyle string

const (
	ImpactLight  ImpactStyle = "light"
	ImpactMedium ImpactStyle = "medium"
	ImpactHeavy  ImpactStyle = "heavy"
)

// NotificationKind mirrors the platform's notification haptic variants.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
)

// Bridge is the injected chrome capability. All calls are fire-and-forget;
// haptic failures are ignored by contract.
type Bridge interface {
	ShowBack(onPress func())
	HideBack()

	ShowPrimary(label string, onPress func())
	HidePrimary()
	SetPrimaryLabel(label string)
	EnablePrimary()
	DisablePrimary()

	HapticImpact(style ImpactStyle)
	HapticNotification(kind NotificationKind)
	HapticSelection()
}

// Noop is a Bridge that does nothing, for headless runs and tests.
type Noop struct{}

func (Noop) ShowBack(func())                      {}
func (Noop) HideBack()                            {}
func (Noop) ShowPrimary(string, func())           {}
func (Noop) HidePrimary()                         {}
func (Noop) SetPrimaryLabel(string)               {}
func (Noop) EnablePrimary()                       {}
func (Noop) DisablePrimary()                      {}
func (Noop) HapticImpact(ImpactStyle)             {}
func (Noop) HapticNotification(NotificationKind)  {}
func (Noop) HapticSelection()                     {}

var _ Bridge = Noop{}
