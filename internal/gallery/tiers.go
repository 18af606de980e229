package gallery

// Breakpoint is a viewport class.
type Breakpoint string

const (
	Mobile  Breakpoint = "mobile"
	Tablet  Breakpoint = "tablet"
	Desktop Breakpoint = "desktop"
)

// Minimum viewport widths, in CSS pixels.
const (
	TabletMinWidth  = 768
	DesktopMinWidth = 1024
)

// Detect classifies a viewport width.
func Detect(width int) Breakpoint {
	switch {
	case width >= DesktopMinWidth:
		return Desktop
	case width >= TabletMinWidth:
		return Tablet
	default:
		return Mobile
	}
}

// Tiers holds the initial page size and the per-click batch size for each breakpoint.
type Tiers struct {
	Initial map[Breakpoint]int
	Batch   map[Breakpoint]int
}

// DefaultTiers returns 4/4/6 for both the initial page and each batch.
func DefaultTiers() Tiers {
	return Tiers{
		Initial: map[Breakpoint]int{Mobile: 4, Tablet: 4, Desktop: 6},
		Batch:   map[Breakpoint]int{Mobile: 4, Tablet: 4, Desktop: 6},
	}
}

// InitialFor returns the initial page size, never below one.
func (t Tiers) InitialFor(bp Breakpoint) int {
	return atLeastOne(t.Initial[bp])
}

// BatchFor returns the batch size, never below one.
func (t Tiers) BatchFor(bp Breakpoint) int {
	return atLeastOne(t.Batch[bp])
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
