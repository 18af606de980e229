// Package chrome holds the page furniture shared by every page: the mobile menu, the
// sticky header, in-page scrolling, expandable sections and the main navigation.
package chrome

// DesktopMinWidth is the viewport width at which the mobile menu is closed for good.
const DesktopMinWidth = 1024

// Menu actions sent by the client.
const (
	ActionToggle  = "toggle"
	ActionOutside = "outside"
	ActionEscape  = "escape"
	ActionResize  = "resize"
)

// Menu is the mobile navigation drawer.
type Menu struct {
	open bool
}

// NewMenu returns a menu in the given state.
func NewMenu(open bool) *Menu {
	return &Menu{open: open}
}

// Apply performs a client action. refocus is true when focus goes back to the toggle;
// ok is false for an unknown action.
func (m *Menu) Apply(action string, width int) (refocus, ok bool) {
	switch action {
	case ActionToggle:
		m.Toggle()
	case ActionOutside:
		m.CloseOutside()
	case ActionEscape:
		return m.Escape(), true
	case ActionResize:
		m.Resize(width)
	default:
		return false, false
	}
	return false, true
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() { m.open = !m.open }

// IsOpen reports whether the drawer is shown.
func (m *Menu) IsOpen() bool { return m.open }

// AriaExpanded renders the toggle's aria-expanded value.
func (m *Menu) AriaExpanded() string {
	if m.open {
		return "true"
	}
	return "false"
}

// BodyScrollLocked mirrors the open state.
func (m *Menu) BodyScrollLocked() bool { return m.open }

// CloseOutside handles a click outside both the toggle and the drawer.
func (m *Menu) CloseOutside() { m.open = false }

// Escape closes an open menu and reports whether focus should return to the toggle.
func (m *Menu) Escape() bool {
	if !m.open {
		return false
	}
	m.open = false
	return true
}

// Resize closes the menu once the viewport reaches desktop width.
func (m *Menu) Resize(width int) {
	if width >= DesktopMinWidth {
		m.open = false
	}
}
