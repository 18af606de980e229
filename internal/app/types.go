package app

import "github.com/mitropolia-targovistei/calendar-site/internal/views"

// Holiday is one public or church holiday in the /api/holidays response.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// SiteConfig is the /api/config response consumed by client scripts.
type SiteConfig struct {
	Year        int                  `json:"year"`
	Languages   []string             `json:"languages"`
	Language    string               `json:"language"`
	Types       []string             `json:"types"`
	EventCount  int                  `json:"eventCount"`
	GallerySize int                  `json:"gallerySize"`
	Breakpoints map[string]int       `json:"breakpoints"`
	Tiers       map[string]TierSizes `json:"tiers"`
	Holidays    map[string]string    `json:"holidays"`
	Chrome      views.ChromeConfig   `json:"chrome"`
	LoadedAt    string               `json:"loadedAt"`
}

// TierSizes are the gallery page sizes of one breakpoint.
type TierSizes struct {
	Initial int `json:"initial"`
	Batch   int `json:"batch"`
}

// ReloadResult is the /admin/reload response.
type ReloadResult struct {
	Status   string `json:"status"`
	Events   int    `json:"events"`
	Gallery  int    `json:"gallery"`
	LoadedAt string `json:"loadedAt"`
}
