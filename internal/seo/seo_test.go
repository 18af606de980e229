package seo

import (
	"context"
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

func tagMap(tags []Tag) map[string]string {
	m := map[string]string{}
	for _, t := range tags {
		key := t.Name
		if key == "" {
			key = t.Property
		}
		m[key] = t.Content
	}
	return m
}

func TestUpdateTitleAndDescription(t *testing.T) {
	t.Parallel()

	m := New("Acasă", "Pagina principală")
	m.UpdateTitle("Calendar")
	m.UpdateDescription("Sărbători și posturi")

	tags := tagMap(m.Tags())
	assert.Equal(t, "Calendar", m.Title)
	assert.Equal(t, "Calendar", tags["og:title"])
	assert.Equal(t, "Calendar", tags["twitter:title"])
	assert.Equal(t, "Sărbători și posturi", tags["description"])
	assert.Equal(t, "Sărbători și posturi", tags["og:description"])
	assert.Equal(t, "Sărbători și posturi", tags["twitter:description"])
}

func TestTagsSkipEmpty(t *testing.T) {
	t.Parallel()

	tags := tagMap(Meta{Title: "x"}.Tags())
	assert.Empty(t, tags)
}

func TestArticle(t *testing.T) {
	t.Parallel()

	raw := JSON(Article(ArticleData{Title: "Hram", Image: "/a.jpg", PublishedDate: "2025-01-07"}))
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	assert.Equal(t, "Article", got["@type"])
	assert.Equal(t, "Hram", got["headline"])
	assert.Equal(t, "2025-01-07", got["datePublished"])
	assert.NotContains(t, got, "dateModified")

	publisher := got["publisher"].(map[string]any)
	assert.Equal(t, "Organization", publisher["@type"])
	assert.Equal(t, SiteName, publisher["name"])
	logo := publisher["logo"].(map[string]any)
	assert.Equal(t, LogoURL, logo["url"])

	author := got["author"].(map[string]any)
	assert.NotContains(t, author, "logo")
}

func TestBreadcrumbList(t *testing.T) {
	t.Parallel()

	bl := BreadcrumbList([]BreadcrumbItem{{Name: "Acasă", Item: SiteURL + "/"}, {Name: "Calendar", Item: SiteURL + "/calendar"}})
	items := bl["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1]["position"])
}

func TestEventList(t *testing.T) {
	t.Parallel()

	list := EventList([]events.Event{
		{Date: "2025-01-07", Title: "Sf. Ioan", Description: "Hram"},
		{Date: "??", Title: "Broken"},
	})
	items := list["itemListElement"].([]map[string]any)
	require.Len(t, items, 1)
	ev := items[0]["item"].(map[string]any)
	assert.Equal(t, "2025-01-07", ev["startDate"])
	assert.Equal(t, "Hram", ev["description"])
	assert.NotEmpty(t, JSON(list))
}

func TestPages(t *testing.T) {
	t.Parallel()

	f := fetch.DirFetcher{FS: fstest.MapFS{
		"pages.yaml": {Data: []byte(`
ro:
  /calendar:
    title: Calendar Ortodox 2025
    description: Sărbători, posturi și evenimente
en:
  /calendar:
    title: Orthodox Calendar 2025
    image: /assets/img/calendar.jpg
`)},
	}}

	pages, err := LoadPages(context.Background(), f, PagesSource)
	require.NoError(t, err)

	def := New("Mitropolia Târgoviștei", "Site oficial")
	ro := pages.Meta("ro", "/calendar/", def)
	assert.Equal(t, "Calendar Ortodox 2025", ro.OG.Title)
	assert.Equal(t, "Sărbători, posturi și evenimente", ro.Twitter.Description)
	assert.Equal(t, SiteURL+"/calendar", ro.Canonical)
	assert.Equal(t, "ro_RO", ro.OG.Locale)

	en := pages.Meta("en", "/calendar", def)
	assert.Equal(t, "Orthodox Calendar 2025", en.Title)
	assert.Equal(t, "Site oficial", en.Description, "unset fields keep the default")
	assert.Equal(t, "/assets/img/calendar.jpg", en.Twitter.Image)

	other := pages.Meta("ro", "/gallery", def)
	assert.Equal(t, def.Title, other.Title)
}

func TestLoadPagesOptional(t *testing.T) {
	t.Parallel()

	pages, err := LoadPages(context.Background(), fetch.DirFetcher{FS: fstest.MapFS{}}, PagesSource)
	require.NoError(t, err)
	assert.Empty(t, pages)

	_, err = ParsePages([]byte("ro: [unclosed"))
	assert.Error(t, err)
}
