package lightbox

// FocusTrap keeps Tab navigation inside the open viewer. Count is the number of
// focusable controls, in document order.
type FocusTrap struct {
	Count int
}

// Move returns the control to focus after Tab (or Shift+Tab when shift is set) from
// current. handled is false when the browser's default order already applies.
func (t FocusTrap) Move(current int, shift bool) (next int, handled bool) {
	if t.Count == 0 {
		return current, false
	}
	last := t.Count - 1
	if shift && current == 0 {
		return last, true
	}
	if !shift && current == last {
		return 0, true
	}
	return current, false
}
