package seo

import (
	"encoding/json"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func org(name string, withLogo bool) map[string]any {
	m := map[string]any{"@type": "Organization", "name": name}
	if withLogo {
		m["logo"] = map[string]any{"@type": "ImageObject", "url": LogoURL}
	}
	return m
}

// Organization returns the site's Organization schema.
func Organization() map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     SiteName,
		"url":      SiteURL,
		"logo":     LogoURL,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleData describes a news article page.
type ArticleData struct {
	Title         string
	Description   string
	Image         string
	PublishedDate string
	ModifiedDate  string
}

// Article returns the Article schema with the Metropolis as author and publisher.
func Article(d ArticleData) map[string]any {
	m := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "Article",
		"headline":  d.Title,
		"author":    org(SiteName, false),
		"publisher": org(SiteName, true),
	}
	if d.Image != "" {
		m["image"] = d.Image
	}
	if d.PublishedDate != "" {
		m["datePublished"] = d.PublishedDate
	}
	if d.ModifiedDate != "" {
		m["dateModified"] = d.ModifiedDate
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}

// EventList returns an ItemList of all-day Event entries for the calendar page.
// Records with unparsable dates are left out.
func EventList(evts []events.Event) map[string]any {
	el := make([]map[string]any, 0, len(evts))
	for _, e := range evts {
		if _, ok := e.Time(); !ok {
			continue
		}
		ev := map[string]any{
			"@type":     "Event",
			"name":      e.Title,
			"startDate": e.Date,
			"endDate":   e.Date,
			"organizer": org(SiteName, false),
		}
		if e.Description != "" {
			ev["description"] = e.Description
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": len(el) + 1,
			"item":     ev,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}
