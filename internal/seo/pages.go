package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

// PagesSource is the page metadata collection name.
const PagesSource = "pages.yaml"

// PageMeta is the per-page metadata authored in pages.yaml.
type PageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Pages maps language, then request path, to metadata:
//
//	ro:
//	  /calendar:
//	    title: Calendar Ortodox 2025
type Pages map[string]map[string]PageMeta

// ParsePages decodes pages.yaml.
func ParsePages(data []byte) (Pages, error) {
	var p Pages
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode page metadata: %w", err)
	}
	if p == nil {
		p = Pages{}
	}
	return p, nil
}

// LoadPages fetches and decodes the page metadata. It is optional: a missing file
// yields an empty set and no error.
func LoadPages(ctx context.Context, f fetch.Fetcher, name string) (Pages, error) {
	data, err := f.Fetch(ctx, name)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return Pages{}, nil
		}
		return Pages{}, fmt.Errorf("fetch page metadata: %w", err)
	}
	return ParsePages(data)
}

// Meta builds the metadata for a page, starting from def and overriding whatever
// pages.yaml provides for lang and path.
func (p Pages) Meta(lang, path string, def Meta) Meta {
	m := def
	m.OG.Locale = Locale(lang)
	if path == "" {
		path = "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	m.Canonical = SiteURL + path

	pm, ok := p[lang][path]
	if !ok {
		return m
	}
	if pm.Title != "" {
		m.UpdateTitle(pm.Title)
	}
	if pm.Description != "" {
		m.UpdateDescription(pm.Description)
	}
	if pm.Image != "" {
		m.OG.Image = pm.Image
		m.Twitter.Image = pm.Image
	}
	return m
}
