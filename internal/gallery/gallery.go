// Package gallery pages a fixed list of images into a grid: an initial page sized for the
// viewport, then fixed-size batches on demand.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

// DefaultSource is the gallery collection name relative to the data directory.
const DefaultSource = "gallery.json"

// Fallback dimensions for items that omit them.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Item is one gallery image.
type Item struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Srcset  string `json:"srcset,omitempty"`
	Sizes   string `json:"sizes,omitempty"`
}

// DisplayWidth returns Width or DefaultWidth.
func (it Item) DisplayWidth() int {
	if it.Width > 0 {
		return it.Width
	}
	return DefaultWidth
}

// DisplayHeight returns Height or DefaultHeight.
func (it Item) DisplayHeight() int {
	if it.Height > 0 {
		return it.Height
	}
	return DefaultHeight
}

// Load fetches and decodes the gallery. On any failure it returns an empty, non-nil list
// together with the error so the caller can log it; the page then renders no images.
func Load(ctx context.Context, f fetch.Fetcher, name string) ([]Item, error) {
	data, err := f.Fetch(ctx, name)
	if err != nil {
		return []Item{}, fmt.Errorf("fetch gallery: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []Item{}, fmt.Errorf("decode gallery %s: %w", name, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
