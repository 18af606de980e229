package gallery

import "fmt"

// Labels are the user-visible gallery strings for one language.
type Labels struct {
	More     string // "load more" prefix, followed by the remaining count
	Loading  string
	Complete string
	Announce string // format with the number of items just loaded
	View     string // item aria-label prefix
	Fallback string // used when an item has no alt text
}

var labels = map[string]Labels{
	"ro": {
		More:     "Arată mai mult",
		Loading:  "Se încarcă...",
		Complete: "Toate imaginile au fost încărcate.",
		Announce: "%d imagini încărcate.",
		View:     "Vizualizează",
		Fallback: "Imagine din galerie",
	},
	"en": {
		More:     "Load More",
		Loading:  "Loading...",
		Complete: "All images have been loaded.",
		Announce: "%d images loaded.",
		View:     "View",
		Fallback: "Gallery image",
	},
}

// LabelsFor returns the strings for lang, falling back to Romanian.
func LabelsFor(lang string) Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels["ro"]
}

// MoreButton renders "Arată mai mult (N)".
func (l Labels) MoreButton(remaining int) string {
	return fmt.Sprintf("%s (%d)", l.More, remaining)
}

// Announcement renders the screen-reader message for a finished batch.
func (l Labels) Announcement(count int) string {
	return fmt.Sprintf(l.Announce, count)
}

// ItemLabel renders the aria-label of a grid item.
func (l Labels) ItemLabel(alt string) string {
	if alt == "" {
		alt = l.Fallback
	}
	return l.View + ": " + alt
}
