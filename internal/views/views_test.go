package views

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitropolia-targovistei/calendar-site/internal/chrome"
	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/lightbox"
	"github.com/mitropolia-targovistei/calendar-site/internal/seo"
)

var sample = []events.Event{
	{Date: "2025-01-07", Title: "Sf. Ioan Botezătorul", Type: "feast", Description: "Soborul **Sf. Ioan**"},
	{Date: "2025-01-06", Title: "Boboteaza", Type: "feast", Fast: "Dezlegare la pește"},
	{Date: "2025-03-03", Title: "Începutul Postului Mare", Type: "fast"},
}

func bundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b := i18n.NewBundle(i18n.Default, i18n.English)
	f := fetch.DirFetcher{FS: fstest.MapFS{
		"i18n-ro.json": {Data: []byte(`{"nav":{"home":"Acasă","calendar":"Calendar","gallery":"Galerie"},"calendar":{"types":{"feast":"Sărbătoare"}}}`)},
		"i18n-en.json": {Data: []byte(`{"nav":{"home":"Home","calendar":"Calendar","gallery":"Gallery"},"calendar":{"noEvents":"No events for the selected filters."}}`)},
	}}
	require.NoError(t, b.LoadAll(context.Background(), f))
	return b
}

func renderer(t *testing.T) (*Renderer, *i18n.Bundle) {
	t.Helper()
	b := bundle(t)
	r, err := New(b)
	require.NoError(t, err)
	return r, b
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func listState() events.State {
	return events.State{View: events.ViewList, Filter: events.NewFilter(), Cursor: events.Cursor{Month: 0, Year: 2025}}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Markdown("  "))
	out := string(Markdown("**Hram**\nlinia doi"))
	assert.Contains(t, out, "<strong>Hram</strong>")
	assert.Contains(t, out, "<br")

	out = string(Markdown("[x](javascript:alert(1)) <script>alert(1)</script>"))
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "<script>")

	out = string(Markdown("[site](https://example.org)"))
	assert.Contains(t, out, `rel="nofollow noopener"`)
	assert.Contains(t, out, `target="_blank"`)
}

func TestCalendarPageList(t *testing.T) {
	t.Parallel()

	r, b := renderer(t)
	body := Calendar(b, i18n.Romanian, sample, listState(), nil)
	data := PageData{Layout: NewLayout(i18n.Romanian, "/calendar", seo.New("Calendar", "Sărbători")), Body: body}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "calendar", data))
	d := doc(t, buf.String())

	assert.Equal(t, "ro", d.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Calendar", d.Find("title").Text())
	assert.Equal(t, 3, d.Find(".events-timeline .event-item").Length())

	first := d.Find(".event-item").First()
	assert.Equal(t, "2025-01-06", first.AttrOr("data-date", ""))
	assert.Equal(t, "6", first.Find(".event-day").Text())
	assert.Equal(t, "IAN", first.Find(".event-month").Text())
	assert.Equal(t, "feast • Dezlegare la pește", first.Find(".event-meta").Text())
	assert.Equal(t, 1, d.Find(".event-description strong").Length())

	assert.Equal(t, "Calendar", d.Find(".nav-menu a.active").Text())
	assert.Equal(t, "EN", d.Find(".lang-switch .lang-text").Text())
	assert.Equal(t, 2, d.Find(".breadcrumbs ol li").Length())
	assert.Equal(t, 1, d.Find("#scroll-to-top").Length())

	typeOpts := d.Find("#filter-type option")
	assert.Equal(t, 3, typeOpts.Length(), "all + feast + fast")
	assert.Equal(t, "Sărbătoare", typeOpts.Eq(1).Text())
	assert.Equal(t, 13, d.Find("#filter-month option").Length())

	href := d.Find("#export-ics").AttrOr("href", "")
	assert.True(t, strings.HasPrefix(href, "/calendar/export.ics?"))
}

func TestCalendarEmptyAndTranslated(t *testing.T) {
	t.Parallel()

	r, b := renderer(t)
	st := listState().WithFilter(events.Filter{Type: "fast", Month: 5})
	body := Calendar(b, i18n.English, sample, st, nil)

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "calendar-body", body))
	d := doc(t, buf.String())
	assert.Equal(t, 0, d.Find(".event-item").Length())
	assert.Equal(t, "No events for the selected filters.", d.Find(".no-events").Text())

	buf.Reset()
	require.NoError(t, r.Fragment(&buf, "calendar-body", Calendar(b, i18n.Romanian, sample, st, nil)))
	assert.Contains(t, buf.String(), "Nu există evenimente pentru filtrele selectate.")
}

func TestCalendarGrid(t *testing.T) {
	t.Parallel()

	r, b := renderer(t)
	st := listState().Toggle(events.ViewGrid)
	body := Calendar(b, i18n.Romanian, sample, st, map[string]string{"2025-01-01": "Anul Nou"})

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "calendar-body", body))
	d := doc(t, buf.String())

	assert.Equal(t, "Ianuarie 2025", d.Find("#current-month-year").Text())
	assert.Equal(t, 4, d.Find(".calendar-day.other-month").Length(), "3 leading, 1 trailing")
	assert.Equal(t, 2, d.Find(".calendar-day.has-event").Length())
	assert.Equal(t, "2025-01-06", d.Find(".has-event").First().AttrOr("data-date", ""))
	assert.Equal(t, "Anul Nou", d.Find(".calendar-day.holiday").AttrOr("title", ""))
	assert.Equal(t, 7, d.Find(".calendar-weekday").Length())

	prev, _ := url.Parse(d.Find("#prev-month").AttrOr("href", ""))
	assert.Equal(t, "11", prev.Query().Get("cm"))
	assert.Equal(t, "2024", prev.Query().Get("cy"))
	assert.Equal(t, "calendar", prev.Query().Get("view"))
}

func TestDayFragment(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	day := Day(i18n.Romanian, "Evenimente pentru", sample, events.NewFilter(), "2025-01-06")
	assert.Equal(t, "6 Ianuarie 2025", day.Title)
	assert.Contains(t, day.Message, "• Boboteaza")

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "calendar-day", day))
	d := doc(t, buf.String())
	msg := d.Find(".day-message").Text()
	assert.Contains(t, msg, "Evenimente pentru 6 Ianuarie 2025:")
	assert.Contains(t, msg, "Dezlegare la pește")

	buf.Reset()
	require.NoError(t, r.Fragment(&buf, "calendar-day", Day(i18n.English, "Events for", sample, events.NewFilter(), "2025-01-02")))
	assert.Equal(t, 1, doc(t, buf.String()).Find(".no-events").Length())
}

func galleryItems(n int) []gallery.Item {
	items := make([]gallery.Item, n)
	for i := range items {
		items[i] = gallery.Item{Src: "/img/" + string(rune('a'+i)) + ".jpg", Alt: "Imagine " + string(rune('A'+i))}
	}
	return items
}

func TestGalleryPage(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	l := gallery.NewLoader(galleryItems(10), gallery.DefaultTiers())
	page := l.Init(1280)
	body := Gallery(i18n.Romanian, l, page, 1280, false)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "gallery", PageData{Layout: NewLayout(i18n.Romanian, "/gallery", seo.New("Galerie", "")), Body: body}))
	d := doc(t, buf.String())

	items := d.Find("#gallery-grid .gallery-item")
	assert.Equal(t, 6, items.Length())
	assert.Equal(t, "Vizualizează: Imagine A", items.First().AttrOr("aria-label", ""))
	assert.Equal(t, "/gallery/lightbox/0", items.First().AttrOr("hx-get", ""))
	assert.Equal(t, "800", items.First().Find("img").AttrOr("width", ""))
	assert.Equal(t, "Arată mai mult (4)", d.Find(".gallery-more .btn-text").Text())
	assert.Equal(t, "/gallery/more?offset=6", d.Find(".gallery-more").AttrOr("hx-get", ""))
	assert.Equal(t, "1280", d.Find("#gallery-controls").AttrOr("data-width", ""))
	assert.Equal(t, "polite", d.Find("#gallery-status").AttrOr("aria-live", ""))
	assert.Empty(t, strings.TrimSpace(d.Find("#gallery-status").Text()))
	assert.Equal(t, 1, d.Find("#lightbox[hidden]").Length())
}

func TestGalleryMoreFragment(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	l := gallery.NewLoader(galleryItems(10), gallery.DefaultTiers())
	l.Resume(1280, 6)
	page := l.LoadMore()
	body := Gallery(i18n.English, l, page, 1280, true)

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "gallery-more", body))
	d := doc(t, buf.String())

	oob := d.Find("[hx-swap-oob]")
	assert.Equal(t, "beforeend:#gallery-grid", oob.AttrOr("hx-swap-oob", ""))
	assert.Equal(t, 4, oob.Find(".gallery-item").Length())
	assert.Equal(t, "6", oob.Find(".gallery-item").First().AttrOr("data-index", ""))
	assert.Equal(t, 0, d.Find(".gallery-more").Length())
	assert.Equal(t, "All images have been loaded.", d.Find(".gallery-complete").Text())
	assert.Equal(t, "4 images loaded.", d.Find("#gallery-status").Text())
}

func TestEmptyGallery(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	l := gallery.NewLoader(nil, gallery.DefaultTiers())
	body := Gallery(i18n.Romanian, l, l.Init(400), 400, false)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "gallery", PageData{Layout: NewLayout(i18n.Romanian, "/gallery", seo.New("Galerie", "")), Body: body}))
	d := doc(t, buf.String())
	assert.Equal(t, 0, d.Find(".gallery-item").Length())
	assert.Equal(t, 1, d.Find(".gallery-empty").Length())
}

func TestLightboxFragment(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	v := lightbox.NewViewer([]lightbox.Image{
		{Src: "/a.jpg", Alt: "A", Caption: "Catedrala"},
		{Src: "/b.jpg", Alt: "B"},
		{Src: "/c.jpg"},
	})
	require.True(t, v.Open(0))

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "lightbox", Lightbox(i18n.Romanian, v)))
	d := doc(t, buf.String())

	assert.Equal(t, 1, d.Find("#lightbox.active").Length())
	assert.Equal(t, "/a.jpg", d.Find(".lightbox-image").AttrOr("src", ""))
	assert.Equal(t, "Catedrala", d.Find(".lightbox-caption").Text())
	assert.Equal(t, "1 / 3", d.Find(".lightbox-counter").Text())
	assert.Equal(t, "/gallery/lightbox/2?n=3", d.Find(".lightbox-prev").AttrOr("hx-get", ""))
	assert.Equal(t, "/gallery/lightbox/1?n=3", d.Find(".lightbox-next").AttrOr("hx-get", ""))

	closeBtn := d.Find(".lightbox-close")
	assert.Equal(t, "2", closeBtn.AttrOr("data-tab-prev", ""))
	_, wraps := closeBtn.Attr("data-tab-next")
	assert.False(t, wraps)
	assert.Equal(t, "0", d.Find(".lightbox-next").AttrOr("data-tab-next", ""))
	assert.Zero(t, d.Find(".lightbox-prev[data-tab-next], .lightbox-prev[data-tab-prev]").Length())

	single := lightbox.NewViewer([]lightbox.Image{{Src: "/only.jpg"}})
	single.Open(0)
	buf.Reset()
	require.NoError(t, r.Fragment(&buf, "lightbox", Lightbox(i18n.Romanian, single)))
	d = doc(t, buf.String())
	assert.Equal(t, 0, d.Find(".lightbox-prev, .lightbox-next, .lightbox-counter").Length())
	assert.Equal(t, "0", d.Find(".lightbox-close").AttrOr("data-tab-next", ""))
	assert.Equal(t, "0", d.Find(".lightbox-close").AttrOr("data-tab-prev", ""))

	single.Close()
	buf.Reset()
	require.NoError(t, r.Fragment(&buf, "lightbox", Lightbox(i18n.Romanian, single)))
	assert.Equal(t, 1, doc(t, buf.String()).Find("#lightbox[hidden]").Length())
}

func TestHomePage(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	home := Home(i18n.Romanian, sample, "2025-01-07", chrome.Expandables{})
	require.Len(t, home.List.Entries, 2)
	assert.Equal(t, "2025-01-07", home.List.Entries[0].Date)
	assert.Equal(t, "/?open=about", home.ExpandURL)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "home", PageData{Layout: NewLayout(i18n.Romanian, "/", seo.New("Acasă", "")), Body: home}))
	d := doc(t, buf.String())
	assert.Equal(t, 1, d.Find("#about.is-collapsed").Length())
	assert.Equal(t, 1, d.Find("#about .expand-toggle").Length())
	assert.Equal(t, 0, d.Find(".breadcrumbs").Length())

	open := Home(i18n.Romanian, sample, "2025-01-07", chrome.Expandables{"about": true})
	buf.Reset()
	require.NoError(t, r.Page(&buf, "home", PageData{Layout: NewLayout(i18n.Romanian, "/", seo.New("Acasă", "")), Body: open}))
	d = doc(t, buf.String())
	assert.Equal(t, 1, d.Find("#about.is-expanded").Length())
	assert.Equal(t, 0, d.Find("#about .expand-toggle").Length())
}

func TestLayoutMetaAndJSONLD(t *testing.T) {
	t.Parallel()

	r, b := renderer(t)
	meta := seo.New("Calendar", "Sărbători")
	meta.Canonical = seo.SiteURL + "/calendar"
	layout := NewLayout(i18n.English, "/calendar", meta)
	layout.JSONLD = []any{seo.Organization(), BreadcrumbSchema(b, i18n.English, layout.Crumbs)}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "calendar", PageData{Layout: layout, Body: Calendar(b, i18n.English, sample, listState(), nil)}))
	d := doc(t, buf.String())

	assert.Equal(t, "Sărbători", d.Find(`meta[name="description"]`).AttrOr("content", ""))
	assert.Equal(t, "Calendar", d.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	assert.Equal(t, seo.SiteURL+"/calendar", d.Find(`link[rel="canonical"]`).AttrOr("href", ""))

	scripts := d.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 2, scripts.Length())
	assert.Contains(t, scripts.Eq(1).Text(), `"BreadcrumbList"`)
	assert.Contains(t, scripts.Eq(1).Text(), `"Home"`)
	assert.Equal(t, "RO", d.Find(".lang-text").Text())

	assert.Equal(t, "false", d.Find(".menu-toggle").AttrOr("aria-expanded", ""))
	assert.Equal(t, "250", d.Find("body").AttrOr("data-resize-debounce", ""))
	assert.False(t, d.Find("body").HasClass("menu-open"))
	assert.Equal(t, "300", d.Find("body").AttrOr("data-scroll-top-after", ""))
	assert.Equal(t, "1024", d.Find("body").AttrOr("data-menu-close-width", ""))
	assert.Equal(t, chrome.ShadowElevated, d.Find(".header").AttrOr("data-shadow-elevated", ""))
}

func TestUnknownPage(t *testing.T) {
	t.Parallel()

	r, _ := renderer(t)
	assert.Error(t, r.Page(&bytes.Buffer{}, "missing", nil))
}
