package views

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mitropolia-targovistei/calendar-site/internal/chrome"
	"github.com/mitropolia-targovistei/calendar-site/internal/events"
	"github.com/mitropolia-targovistei/calendar-site/internal/gallery"
	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/lightbox"
	"github.com/mitropolia-targovistei/calendar-site/internal/seo"
)

// Layout carries what the base template needs on every page.
type Layout struct {
	Lang     string
	Path     string
	Meta     seo.Meta
	JSONLD   []any
	Crumbs   []chrome.Crumb
	Switcher string
	SwitchTo string
	Menu     MenuView
	Chrome   ChromeConfig
}

// ChromeConfig are the thresholds the client script applies to the header, the
// scroll-to-top button and the mobile menu.
type ChromeConfig struct {
	HeaderShadowAfter int    `json:"headerShadowAfter"`
	HeaderOffset      int    `json:"headerOffset"`
	ScrollTopAfter    int    `json:"scrollTopAfter"`
	MenuCloseWidth    int    `json:"menuCloseWidth"`
	ShadowResting     string `json:"shadowResting"`
	ShadowElevated    string `json:"shadowElevated"`
	ResizeDebounce    int    `json:"resizeDebounceMs"`
}

// DefaultChrome mirrors the chrome package constants.
func DefaultChrome() ChromeConfig {
	return ChromeConfig{
		HeaderShadowAfter: chrome.HeaderShadowAfter,
		HeaderOffset:      chrome.HeaderOffset,
		ScrollTopAfter:    chrome.ScrollTopAfter,
		MenuCloseWidth:    chrome.DesktopMinWidth,
		ShadowResting:     chrome.ShadowResting,
		ShadowElevated:    chrome.ShadowElevated,
		ResizeDebounce:    chrome.ResizeDebounce,
	}
}

// MenuView is the header's menu toggle and navigation drawer. It is part of every page
// and is re-rendered on its own after each menu action.
type MenuView struct {
	Lang         string
	Path         string
	Nav          []chrome.RenderedItem
	Open         bool
	AriaExpanded string
	ScrollLocked bool
	Refocus      bool
}

// NewMenuView renders m for the page at path. refocus puts focus back on the toggle.
func NewMenuView(lang, path string, m *chrome.Menu, refocus bool) MenuView {
	return MenuView{
		Lang:         lang,
		Path:         path,
		Nav:          chrome.Build(path),
		Open:         m.IsOpen(),
		AriaExpanded: m.AriaExpanded(),
		ScrollLocked: m.BodyScrollLocked(),
		Refocus:      refocus,
	}
}

// PageData is a full page: the layout plus the page body.
type PageData struct {
	Layout
	Body any
}

// NewLayout resolves navigation, breadcrumbs and the language switcher for path.
func NewLayout(lang, path string, meta seo.Meta) Layout {
	crumbs := chrome.Breadcrumbs(path)
	return Layout{
		Lang:     lang,
		Path:     path,
		Meta:     meta,
		Crumbs:   crumbs,
		Switcher: i18n.SwitcherLabel(lang),
		SwitchTo: i18n.Toggle(lang),
		Menu:     NewMenuView(lang, path, chrome.NewMenu(false), false),
		Chrome:   DefaultChrome(),
	}
}

// BreadcrumbSchema converts the page breadcrumbs into schema.org items.
func BreadcrumbSchema(b *i18n.Bundle, lang string, crumbs []chrome.Crumb) map[string]any {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = translate(b, lang, c.LabelKey, c.Label)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: seo.SiteURL + c.Href})
	}
	return seo.BreadcrumbList(items)
}

func translate(b *i18n.Bundle, lang, key, fallback string) string {
	if b == nil {
		return fallback
	}
	if v, ok := b.Lookup(lang, key); ok {
		return v
	}
	if v, ok := b.Lookup(b.Fallback(), key); ok {
		return v
	}
	return fallback
}

// Option is one entry of a filter dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

var weekdays = map[string][7]string{
	i18n.Romanian: {"Dum", "Lun", "Mar", "Mie", "Joi", "Vin", "Sâm"},
	i18n.English:  {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// CalendarView is the calendar page body and the source of its fragments.
type CalendarView struct {
	Lang      string
	State     events.State
	IsGrid    bool
	Types     []Option
	Months    []Option
	Count     int
	List      events.List
	Grid      events.Grid
	Weekdays  [7]string
	ListURL   string
	GridURL   string
	PrevURL   string
	NextURL   string
	ExportURL string
	CSVURL    string
	JSONURL   string
	FeedURL   string
}

// Calendar filters the full set with the state's filter and lays out both views.
func Calendar(b *i18n.Bundle, lang string, all []events.Event, st events.State, holidays map[string]string) CalendarView {
	filtered := st.Filter.Apply(all)

	types := []Option{{Value: events.AllTypes, Label: translate(b, lang, "calendar.filter.allTypes", "Toate"), Selected: st.Filter.Type == events.AllTypes}}
	for _, typ := range events.Types(all) {
		types = append(types, Option{
			Value:    typ,
			Label:    translate(b, lang, "calendar.types."+typ, typ),
			Selected: st.Filter.Type == typ,
		})
	}
	months := []Option{{Value: events.AllTypes, Label: translate(b, lang, "calendar.filter.allMonths", "Toate lunile"), Selected: st.Filter.Month == events.AllMonths}}
	for m := 0; m < 12; m++ {
		months = append(months, Option{
			Value:    strconv.Itoa(m),
			Label:    translate(b, lang, fmt.Sprintf("calendar.months.%d", m), events.MonthName(m)),
			Selected: st.Filter.Month == m,
		})
	}

	wd, ok := weekdays[lang]
	if !ok {
		wd = weekdays[i18n.Default]
	}

	exportQuery := url.Values{"type": {st.Filter.Type}, "month": {st.Filter.MonthValue()}}.Encode()

	return CalendarView{
		Lang:      lang,
		State:     st,
		IsGrid:    st.View == events.ViewGrid,
		Types:     types,
		Months:    months,
		Count:     len(filtered),
		List:      events.ListView(filtered),
		Grid:      events.MonthGrid(st.Cursor, filtered).MarkHolidays(holidays),
		Weekdays:  wd,
		ListURL:   "/calendar?" + st.Toggle(events.ViewList).Query().Encode(),
		GridURL:   "/calendar?" + st.Toggle(events.ViewGrid).Query().Encode(),
		PrevURL:   "/calendar?" + st.WithCursor(st.Cursor.Prev()).Query().Encode(),
		NextURL:   "/calendar?" + st.WithCursor(st.Cursor.Next()).Query().Encode(),
		ExportURL: "/calendar/export.ics?" + exportQuery,
		CSVURL:    "/calendar/export.csv?" + exportQuery,
		JSONURL:   "/calendar/export.json?" + exportQuery,
		FeedURL:   "/calendar/feed.ics?" + exportQuery,
	}
}

// DayView is the detail fragment for a has-event grid cell.
type DayView struct {
	Lang    string
	Date    string
	Title   string
	Events  []events.Event
	Message string
}

// Day collects the filtered records on date. heading opens the day message.
func Day(lang, heading string, all []events.Event, f events.Filter, date string) DayView {
	dayEvents := events.DayEvents(f.Apply(all), date)
	return DayView{
		Lang:    lang,
		Date:    date,
		Title:   events.FormatDate(date),
		Events:  dayEvents,
		Message: events.DayMessageTitled(heading, date, dayEvents),
	}
}

// GalleryView is the gallery grid, or one appended batch of it.
type GalleryView struct {
	Lang         string
	Items        []gallery.Indexed
	Labels       gallery.Labels
	Total        int
	Remaining    int
	Done         bool
	MoreURL      string
	NoScriptURL  string
	Announcement string
	Lightbox     LightboxView
	// Width is the viewport width the page was sized for. WidthKnown is false when the
	// request did not carry one and the default was assumed.
	Width      int
	WidthKnown bool
	Loaded     int
}

// Gallery describes the loader's state after a page was shown. announce adds the
// screen-reader message for load-more batches. The "load more" request sends the current
// viewport width itself, so MoreURL only carries the offset.
func Gallery(lang string, l *gallery.Loader, page gallery.Page, width int, announce bool) GalleryView {
	labels := gallery.LabelsFor(lang)
	v := GalleryView{
		Lang:      lang,
		Items:     page.Items,
		Labels:    labels,
		Total:     l.Total(),
		Remaining: l.Remaining(),
		Done:      l.Done(),
		Lightbox:  LightboxView{Lang: lang},
		Width:     width,
		Loaded:    l.Loaded(),
	}
	if !v.Done {
		v.MoreURL = fmt.Sprintf("/gallery/more?offset=%d", l.Loaded())
		v.NoScriptURL = fmt.Sprintf("/gallery?shown=%d", l.Loaded()+l.Batch())
	}
	if announce && page.Len() > 0 {
		v.Announcement = labels.Announcement(page.Len())
	}
	return v
}

// LightboxView is the open viewer.
type LightboxView struct {
	Lang       string
	Open       bool
	Index      int
	Image      lightbox.Image
	Caption    string
	Counter    string
	NavVisible bool
	Count      int
	Focusables int
	PrevURL    string
	NextURL    string
}

// TabTarget is the control that Tab (Shift+Tab when shift is set) moves to from control
// i, in document order, or -1 where the browser's own order applies.
func (v LightboxView) TabTarget(i int, shift bool) int {
	next, handled := lightbox.FocusTrap{Count: v.Focusables}.Move(i, shift)
	if !handled {
		return -1
	}
	return next
}

// Lightbox renders the viewer's current selection. Navigation URLs carry the collection
// size so the next request rebuilds the same collection.
func Lightbox(lang string, v *lightbox.Viewer) LightboxView {
	img, _ := v.Current()
	return LightboxView{
		Lang:       lang,
		Open:       v.IsOpen(),
		Index:      v.Index(),
		Image:      img,
		Caption:    v.Caption(),
		Counter:    v.Counter(),
		NavVisible: v.NavVisible(),
		Count:      v.Len(),
		Focusables: v.Trap().Count,
		PrevURL:    fmt.Sprintf("/gallery/lightbox/%d?n=%d", v.PrevIndex(), v.Len()),
		NextURL:    fmt.Sprintf("/gallery/lightbox/%d?n=%d", v.NextIndex(), v.Len()),
	}
}

// UpcomingLimit caps the events listed on the home page.
const UpcomingLimit = 5

// HomeView is the home page body.
type HomeView struct {
	Lang      string
	List      events.List
	About     *chrome.Expandable
	ExpandURL string
}

// Home lists the next events on or after today and resolves the "about" section state.
func Home(lang string, all []events.Event, today string, open chrome.Expandables) HomeView {
	var upcoming []events.Event
	for _, e := range all {
		if _, ok := e.Time(); ok && e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	list := events.ListView(upcoming)
	if len(list.Entries) > UpcomingLimit {
		list.Entries = list.Entries[:UpcomingLimit]
	}

	about := open.Section("about")
	expanded := chrome.Expandables{}
	for id, ok := range open {
		expanded[id] = ok
	}
	expanded.Expand(about.ID)

	return HomeView{
		Lang:      lang,
		List:      list,
		About:     about,
		ExpandURL: "/?" + url.Values{"open": {expanded.Value()}}.Encode(),
	}
}
