// Package seo builds the meta tags and schema.org structured data of every page.
package seo

// Site identity.
const (
	SiteName = "Mitropolia Târgoviștei"
	SiteURL  = "https://mitropolia-targovistei.ro"
	LogoURL  = SiteURL + "/assets/img/logo.png"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	Locale      string
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
}

// New returns page metadata with the title and description propagated to the Open
// Graph and Twitter copies.
func New(title, description string) Meta {
	m := Meta{
		OG:      OpenGraph{Type: "website"},
		Twitter: Twitter{Card: "summary_large_image"},
	}
	m.UpdateTitle(title)
	m.UpdateDescription(description)
	return m
}

// UpdateTitle sets the document title together with og:title and twitter:title.
func (m *Meta) UpdateTitle(title string) {
	m.Title = title
	m.OG.Title = title
	m.Twitter.Title = title
}

// UpdateDescription sets description, og:description and twitter:description.
func (m *Meta) UpdateDescription(description string) {
	m.Description = description
	m.OG.Description = description
	m.Twitter.Description = description
}

// Tag is one <meta> element. Exactly one of Name and Property is set.
type Tag struct {
	Name     string
	Property string
	Content  string
}

// Tags lists the meta elements to render, skipping empty values.
func (m Meta) Tags() []Tag {
	all := []Tag{
		{Name: "description", Content: m.Description},
		{Property: "og:title", Content: m.OG.Title},
		{Property: "og:description", Content: m.OG.Description},
		{Property: "og:type", Content: m.OG.Type},
		{Property: "og:image", Content: m.OG.Image},
		{Property: "og:locale", Content: m.OG.Locale},
		{Property: "og:url", Content: m.Canonical},
		{Name: "twitter:card", Content: m.Twitter.Card},
		{Name: "twitter:title", Content: m.Twitter.Title},
		{Name: "twitter:description", Content: m.Twitter.Description},
		{Name: "twitter:image", Content: m.Twitter.Image},
	}
	out := all[:0]
	for _, t := range all {
		if t.Content != "" {
			out = append(out, t)
		}
	}
	return out
}

// Locale maps a site language to an Open Graph locale.
func Locale(lang string) string {
	if lang == "en" {
		return "en_US"
	}
	return "ro_RO"
}
