package app

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mitropolia-targovistei/calendar-site/internal/chrome"
	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/lightbox"
	"github.com/mitropolia-targovistei/calendar-site/internal/seo"
	"github.com/mitropolia-targovistei/calendar-site/internal/views"
)

// pageText names the translation keys and Romanian defaults of a page's title and description.
type pageText struct {
	titleKey, title string
	descKey, desc   string
}

var (
	homeText     = pageText{"page.home.title", "Mitropolia Târgoviștei", "page.home.description", "Site-ul oficial al Arhiepiscopiei Târgoviștei"}
	calendarText = pageText{"page.calendar.title", "Calendar Ortodox 2025", "page.calendar.description", "Sărbători, posturi și evenimente ale anului bisericesc"}
	galleryText  = pageText{"page.gallery.title", "Galerie foto", "page.gallery.description", "Imagini din viața arhiepiscopiei"}
)

// layout resolves metadata, navigation and the common JSON-LD for a page.
func (a *App) layout(r *http.Request, snap Snapshot, text pageText) views.Layout {
	lang := i18n.FromContext(r.Context())
	b := a.store.Bundle()
	def := seo.New(a.translate(lang, text.titleKey, text.title), a.translate(lang, text.descKey, text.desc))
	def.OG.Image = seo.LogoURL
	def.Twitter.Image = seo.LogoURL
	meta := snap.Pages.Meta(lang, r.URL.Path, def)

	l := views.NewLayout(lang, r.URL.Path, meta)
	if r.URL.Query().Get("menu") == "open" {
		l.Menu = views.NewMenuView(lang, r.URL.Path, chrome.NewMenu(true), false)
	}
	l.JSONLD = []any{seo.Organization()}
	if len(l.Crumbs) > 1 {
		l.JSONLD = append(l.JSONLD, views.BreadcrumbSchema(b, lang, l.Crumbs))
	}
	return l
}

func (a *App) translate(lang, key, def string) string {
	if v, ok := a.store.Bundle().Lookup(lang, key); ok {
		return v
	}
	if v, ok := a.store.Bundle().Lookup(i18n.Default, key); ok {
		return v
	}
	return def
}

// render buffers the output so a template error still yields a clean 500.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		a.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}
	setHTML(w)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (a *App) page(w http.ResponseWriter, r *http.Request, name string, data views.PageData) {
	a.render(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return a.views.Page(buf, name, data)
	})
}

func (a *App) fragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	a.render(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return a.views.Fragment(buf, name, data)
	})
}

// HandleHome serves the home page with the next events.
func (a *App) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := a.store.Snapshot()
	lang := i18n.FromContext(r.Context())
	open := chrome.ParseExpandables(r.URL.Query())
	body := views.Home(lang, snap.Events, a.now().Format(events.DateLayout), open)

	l := a.layout(r, snap, homeText)
	l.JSONLD = append(l.JSONLD, seo.Article(seo.ArticleData{
		Title:       l.Meta.Title,
		Description: l.Meta.Description,
		Image:       seo.LogoURL,
	}))
	a.page(w, r, "home", views.PageData{Layout: l, Body: body})
}

// calendarState reads the page state, defaulting the cursor to the current month of
// the configured year.
func (a *App) calendarState(r *http.Request, all []events.Event) events.State {
	def := events.CursorFor(a.now(), a.store.Year())
	st := events.ParseState(r.URL.Query(), def)
	st.Filter = st.Filter.Known(events.Types(all))
	return st
}

// HandleCalendar serves the calendar page, or only its body to htmx requests.
func (a *App) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Snapshot()
	lang := i18n.FromContext(r.Context())
	st := a.calendarState(r, snap.Events)
	body := views.Calendar(a.store.Bundle(), lang, snap.Events, st, snap.Holidays)

	if IsHTMX(r.Context()) {
		a.fragment(w, r, "calendar-body", body)
		return
	}

	l := a.layout(r, snap, calendarText)
	l.JSONLD = append(l.JSONLD, seo.EventList(st.Filter.Apply(snap.Events)))
	a.page(w, r, "calendar", views.PageData{Layout: l, Body: body})
}

// HandleCalendarFragment renders one view of the calendar body; the route picks the view.
func (a *App) HandleCalendarFragment(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Snapshot()
	st := a.calendarState(r, snap.Events)
	name := "calendar-list"
	st = st.Toggle(events.ViewList)
	if strings.HasSuffix(r.URL.Path, "/grid") {
		name = "calendar-grid"
		st = st.Toggle(events.ViewGrid)
	}
	a.fragment(w, r, name, views.Calendar(a.store.Bundle(), i18n.FromContext(r.Context()), snap.Events, st, snap.Holidays))
}

// HandleDay lists the filtered events of one grid day.
func (a *App) HandleDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, ok := (events.Event{Date: date}).Time(); !ok {
		http.Error(w, ErrInvalidDate, http.StatusBadRequest)
		return
	}
	snap := a.store.Snapshot()
	q := r.URL.Query()
	f := events.ParseFilter(q.Get("type"), q.Get("month")).Known(events.Types(snap.Events))
	lang := i18n.FromContext(r.Context())
	heading := a.translate(lang, "calendar.dayTitle", "Evenimente pentru")
	a.fragment(w, r, "calendar-day", views.Day(lang, heading, snap.Events, f, date))
}

// loader builds a gallery loader showing everything up to shown (at least the initial
// page for width) and a viewer bound to it.
func (a *App) loader(items []gallery.Item, width, shown int) (*gallery.Loader, *lightbox.Viewer, gallery.Page) {
	l := gallery.NewLoader(items, a.tiers)
	v := lightbox.NewViewer(nil)
	v.Bind(l)
	page := l.Init(width)
	if shown > l.Loaded() {
		l.Resume(width, shown)
		v.SetImages(lightbox.FromItems(l.Shown()))
		page = l.Visible()
	}
	return l, v, page
}

// HandleGallery serves the gallery page with the initial page for the viewport width.
// Without a width the default is assumed and the page asks the browser to send its own,
// which comes back as an htmx request for the gallery body only.
func (a *App) HandleGallery(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Snapshot()
	lang := i18n.FromContext(r.Context())
	q := r.URL.Query()
	width := queryInt(q, "w", a.cfg.DefaultWidth)

	l, viewer, page := a.loader(snap.Gallery, width, queryInt(q, "shown", 0))
	body := views.Gallery(lang, l, page, width, false)
	body.WidthKnown = q.Has("w")
	body.Lightbox = views.Lightbox(lang, viewer)

	if IsHTMX(r.Context()) {
		a.fragment(w, r, "gallery-body", body)
		return
	}

	a.page(w, r, "gallery", views.PageData{Layout: a.layout(r, snap, galleryText), Body: body})
}

// HandleGalleryMore appends the next batch after offset. Without htmx the whole page
// is re-rendered with the batch included.
func (a *App) HandleGalleryMore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := queryInt(q, "w", a.cfg.DefaultWidth)
	offset := queryInt(q, "offset", 0)

	if !IsHTMX(r.Context()) {
		l := gallery.NewLoader(a.store.Snapshot().Gallery, a.tiers)
		l.Resume(width, offset)
		http.Redirect(w, r, "/gallery?shown="+strconv.Itoa(l.Loaded()+l.Batch())+"&w="+strconv.Itoa(width), http.StatusSeeOther)
		return
	}

	l := gallery.NewLoader(a.store.Snapshot().Gallery, a.tiers)
	l.Resume(width, offset)
	page := l.LoadMore()
	a.fragment(w, r, "gallery-more", views.Gallery(i18n.FromContext(r.Context()), l, page, width, true))
}

// HandleGalleryControls refreshes the "load more" controls after the viewport was
// resized from width from to w. It answers 204 when the breakpoint did not change.
func (a *App) HandleGalleryControls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := queryInt(q, "w", a.cfg.DefaultWidth)

	l := gallery.NewLoader(a.store.Snapshot().Gallery, a.tiers)
	l.Resume(queryInt(q, "from", a.cfg.DefaultWidth), queryInt(q, "offset", 0))
	if !l.Resize(width) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.fragment(w, r, "gallery-controls", views.Gallery(i18n.FromContext(r.Context()), l, gallery.Page{}, width, false))
}

// viewer rebuilds the lightbox collection from the request: the first n gallery items,
// n defaulting to the whole gallery.
func (a *App) viewer(r *http.Request) (*lightbox.Viewer, int, bool) {
	items := a.store.Snapshot().Gallery
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index >= len(items) {
		return nil, 0, false
	}
	n := queryInt(r.URL.Query(), "n", len(items))
	n = max(index+1, min(n, len(items)))
	return lightbox.NewViewer(lightbox.FromItems(items[:n])), index, true
}

// HandleLightbox opens the viewer at the requested index.
func (a *App) HandleLightbox(w http.ResponseWriter, r *http.Request) {
	v, index, ok := a.viewer(r)
	if !ok {
		http.Error(w, ErrInvalidIndex, http.StatusNotFound)
		return
	}
	v.Open(index)
	a.fragment(w, r, "lightbox", views.Lightbox(i18n.FromContext(r.Context()), v))
}

// HandleLightboxKey applies a key press to the open viewer.
func (a *App) HandleLightboxKey(w http.ResponseWriter, r *http.Request) {
	v, index, ok := a.viewer(r)
	if !ok {
		http.Error(w, ErrInvalidIndex, http.StatusNotFound)
		return
	}
	v.Open(index)
	v.HandleKey(r.URL.Query().Get("key"))
	a.fragment(w, r, "lightbox", views.Lightbox(i18n.FromContext(r.Context()), v))
}

// HandleLightboxSwipe applies a horizontal swipe (form values start and end).
func (a *App) HandleLightboxSwipe(w http.ResponseWriter, r *http.Request) {
	v, index, ok := a.viewer(r)
	if !ok {
		http.Error(w, ErrInvalidIndex, http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v.Open(index)
	if start, ok := queryFloat(r.PostForm, "start"); ok {
		if end, ok := queryFloat(r.PostForm, "end"); ok {
			v.Swipe(start, end)
		}
	}
	a.fragment(w, r, "lightbox", views.Lightbox(i18n.FromContext(r.Context()), v))
}

// HandleLightboxClose returns the hidden viewer, remembering which thumbnail regains focus.
func (a *App) HandleLightboxClose(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := a.store.Snapshot().Gallery
	n := min(queryInt(q, "n", len(items)), len(items))
	v := lightbox.NewViewer(lightbox.FromItems(items[:n]))
	v.Open(queryInt(q, "i", 0))
	v.Close()
	a.fragment(w, r, "lightbox", views.Lightbox(i18n.FromContext(r.Context()), v))
}

// HandleMenu applies a menu action to the state the client sent and re-renders the menu.
// Without htmx the page is reloaded with the menu state in the query.
func (a *App) HandleMenu(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidAction, http.StatusBadRequest)
		return
	}
	m := chrome.NewMenu(r.PostForm.Get("open") == "true")
	refocus, ok := m.Apply(r.PostForm.Get("action"), queryInt(r.PostForm, "w", 0))
	if !ok {
		http.Error(w, ErrInvalidAction, http.StatusBadRequest)
		return
	}
	path := safeReturn(r.PostForm.Get("path"))

	if !IsHTMX(r.Context()) {
		target := path
		if m.IsOpen() {
			target += "?menu=open"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	a.fragment(w, r, "menu", views.NewMenuView(i18n.FromContext(r.Context()), path, m, refocus))
}

// HandleSetLanguage persists the chosen language and redirects back.
func (a *App) HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(chi.URLParam(r, "lang"))
	if !a.store.Bundle().IsSupported(lang) {
		http.Error(w, ErrInvalidLanguage, http.StatusBadRequest)
		return
	}
	i18n.Persist(w, lang)
	http.Redirect(w, r, safeReturn(r.URL.Query().Get("return")), http.StatusSeeOther)
}

// HandleToggleLanguage switches between Romanian and English.
func (a *App) HandleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	next := i18n.Toggle(i18n.FromContext(r.Context()))
	i18n.Persist(w, next)
	target := safeReturn(r.PostForm.Get("return"))
	if IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleConfig returns the site configuration for client scripts.
func (a *App) HandleConfig(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Snapshot()
	tiers := map[string]TierSizes{}
	for _, bp := range []gallery.Breakpoint{gallery.Mobile, gallery.Tablet, gallery.Desktop} {
		tiers[string(bp)] = TierSizes{Initial: a.tiers.InitialFor(bp), Batch: a.tiers.BatchFor(bp)}
	}
	writeJSON(w, a.logger, SiteConfig{
		Year:        a.store.Year(),
		Languages:   a.store.Bundle().Supported(),
		Language:    i18n.FromContext(r.Context()),
		Types:       events.Types(snap.Events),
		EventCount:  len(snap.Events),
		GallerySize: len(snap.Gallery),
		Breakpoints: map[string]int{string(gallery.Tablet): gallery.TabletMinWidth, string(gallery.Desktop): gallery.DesktopMinWidth},
		Tiers:       tiers,
		Holidays:    snap.Holidays,
		Chrome:      views.DefaultChrome(),
		LoadedAt:    snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}

// HandleHolidays returns the holidays of ?year= (default: the site year), sorted by date.
func (a *App) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	year := a.store.Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 2099 {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = y
	}
	writeJSON(w, a.logger, HolidayList(GetRomanianHolidays(year)))
}

// ServeData exposes the collaborator files through the configured fetcher.
func (a *App) ServeData(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + chi.URLParam(r, "*"))
	if name == "/" || strings.HasSuffix(name, DefaultAuthFile) {
		http.NotFound(w, r)
		return
	}
	data, err := a.fetcher.Fetch(r.Context(), strings.TrimPrefix(name, "/"))
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		a.logger.Error("failed to serve data file", zap.String("name", name), zap.Error(err))
		http.Error(w, ErrInternalServer, http.StatusBadGateway)
		return
	}
	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	_, _ = w.Write(data)
}

// HandleReload reloads every collaborator.
func (a *App) HandleReload(w http.ResponseWriter, r *http.Request) {
	err := a.store.Load(r.Context())
	snap := a.store.Snapshot()
	res := ReloadResult{
		Status:   "ok",
		Events:   len(snap.Events),
		Gallery:  len(snap.Gallery),
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
	}
	if err != nil {
		a.logger.Error("reload failed", zap.Error(err))
		res.Status = ErrFailedToReload
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
	}
	writeJSON(w, a.logger, res)
}
