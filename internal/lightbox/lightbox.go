// Package lightbox models the full-screen image viewer opened from the gallery grid.
package lightbox

import (
	"fmt"

	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
)

// SwipeThreshold is the minimum horizontal travel, in pixels, that counts as a swipe.
const SwipeThreshold = 50

// Image is one viewable image.
type Image struct {
	Src     string
	Alt     string
	Caption string
}

// Text returns the caption, or the alt text when there is none.
func (img Image) Text() string {
	if img.Caption != "" {
		return img.Caption
	}
	return img.Alt
}

// FromItems converts gallery items, preserving order.
func FromItems(items []gallery.Item) []Image {
	out := make([]Image, len(items))
	for i, it := range items {
		out[i] = Image{Src: it.Src, Alt: it.Alt, Caption: it.Caption}
	}
	return out
}

// Focus names the element that should hold keyboard focus.
type Focus int

const (
	FocusNone Focus = iota
	FocusClose
	FocusThumbnail
)

// Viewer owns the image collection and the current selection. It replaces the
// page-global image list: the collection changes only through SetImages, Append or
// the gallery subscription installed by Bind.
type Viewer struct {
	images []Image
	index  int
	open   bool
	focus  Focus
}

// NewViewer returns a closed viewer over images.
func NewViewer(images []Image) *Viewer {
	v := &Viewer{}
	v.SetImages(images)
	return v
}

// Bind keeps the viewer's collection in sync with the gallery loader and returns the
// function that stops it.
func (v *Viewer) Bind(l *gallery.Loader) func() {
	v.SetImages(FromItems(l.Shown()))
	return l.Subscribe(func(items []gallery.Item) {
		v.SetImages(FromItems(items))
	})
}

// SetImages replaces the collection. The selection is clamped to the new length.
func (v *Viewer) SetImages(images []Image) {
	v.images = append(v.images[:0:0], images...)
	if v.index >= len(v.images) {
		v.index = max(0, len(v.images)-1)
	}
	if len(v.images) == 0 {
		v.open = false
	}
}

// Append adds images to the end of the collection.
func (v *Viewer) Append(images ...Image) {
	v.images = append(v.images, images...)
}

// Len returns the collection size.
func (v *Viewer) Len() int { return len(v.images) }

// Open shows image i and moves focus to the close control. It is a no-op on an empty
// collection; out-of-range indexes are clamped.
func (v *Viewer) Open(i int) bool {
	if len(v.images) == 0 {
		return false
	}
	v.index = max(0, min(i, len(v.images)-1))
	v.open = true
	v.focus = FocusClose
	return true
}

// Close hides the viewer and returns the thumbnail index that should regain focus.
func (v *Viewer) Close() int {
	v.open = false
	v.focus = FocusThumbnail
	return v.index
}

// IsOpen reports whether the viewer is visible.
func (v *Viewer) IsOpen() bool { return v.open }

// BodyScrollLocked mirrors the open state; page scrolling is disabled while open.
func (v *Viewer) BodyScrollLocked() bool { return v.open }

// Focus reports where focus should be after the last open or close.
func (v *Viewer) Focus() Focus { return v.focus }

// Index returns the selected position.
func (v *Viewer) Index() int { return v.index }

// Current returns the selected image.
func (v *Viewer) Current() (Image, bool) {
	if len(v.images) == 0 {
		return Image{}, false
	}
	return v.images[v.index], true
}

// Next moves forward, wrapping from the last image to the first.
func (v *Viewer) Next() {
	if n := len(v.images); n > 0 {
		v.index = (v.index + 1) % n
	}
}

// Prev moves back, wrapping from the first image to the last.
func (v *Viewer) Prev() {
	if n := len(v.images); n > 0 {
		v.index = (v.index - 1 + n) % n
	}
}

// NextIndex and PrevIndex return the neighbours without moving.
func (v *Viewer) NextIndex() int {
	if n := len(v.images); n > 0 {
		return (v.index + 1) % n
	}
	return 0
}

func (v *Viewer) PrevIndex() int {
	if n := len(v.images); n > 0 {
		return (v.index - 1 + n) % n
	}
	return 0
}

// NavVisible reports whether the previous/next controls are shown.
func (v *Viewer) NavVisible() bool { return len(v.images) > 1 }

// Trap covers the close control plus prev/next when they are shown.
func (v *Viewer) Trap() FocusTrap {
	if v.NavVisible() {
		return FocusTrap{Count: 3}
	}
	return FocusTrap{Count: 1}
}

// Counter renders "3 / 12".
func (v *Viewer) Counter() string {
	if len(v.images) == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", v.index+1, len(v.images))
}

// Caption returns the selected image's caption or alt text.
func (v *Viewer) Caption() string {
	img, ok := v.Current()
	if !ok {
		return ""
	}
	return img.Text()
}

// HandleKey applies Escape, ArrowLeft and ArrowRight while the viewer is open and
// reports whether the key was consumed.
func (v *Viewer) HandleKey(key string) bool {
	if !v.open {
		return false
	}
	switch key {
	case "Escape":
		v.Close()
	case "ArrowLeft":
		v.Prev()
	case "ArrowRight":
		v.Next()
	default:
		return false
	}
	return true
}

// Swipe navigates on a horizontal touch gesture: leftward travel beyond the threshold
// goes to the next image, rightward to the previous one.
func (v *Viewer) Swipe(startX, endX float64) bool {
	diff := startX - endX
	switch {
	case diff > SwipeThreshold:
		v.Next()
	case diff < -SwipeThreshold:
		v.Prev()
	default:
		return false
	}
	return true
}
