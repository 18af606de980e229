package chrome

// Scroll thresholds in CSS pixels. The client script applies them: the header shadow
// switches above HeaderShadowAfter, in-page anchors (other than a bare "#") scroll to the
// target minus HeaderOffset, and the scroll-to-top button shows above ScrollTopAfter.
const (
	HeaderShadowAfter = 50
	HeaderOffset      = 80
	ScrollTopAfter    = 300
)

// Header box shadows for the resting and scrolled states.
const (
	ShadowResting  = "0 1px 2px 0 rgba(0, 0, 0, 0.05)"
	ShadowElevated = "0 4px 6px -1px rgba(0, 0, 0, 0.1)"
)

// ResizeDebounce is how long, in milliseconds, the client waits after the last resize
// before asking for layout that depends on the viewport width.
const ResizeDebounce = 250
