package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

var tables = fstest.MapFS{
	"i18n-ro.json": {Data: []byte(`{"nav":{"home":"Acasă","calendar":"Calendar"},"footer":"Subsol","count":3}`)},
	"i18n-en.json": {Data: []byte(`{"nav":{"home":"Home"}}`)},
}

func loaded(t *testing.T) *Bundle {
	t.Helper()
	b := NewBundle(Default, English)
	require.NoError(t, b.LoadAll(context.Background(), fetch.DirFetcher{FS: tables}))
	return b
}

func TestTableLookup(t *testing.T) {
	t.Parallel()

	b := loaded(t)
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"nav.home", "Acasă", true},
		{"footer", "Subsol", true},
		{"nav", "", false},
		{"nav.home.extra", "", false},
		{"count", "", false},
		{"missing.key", "", false},
	}
	for _, tc := range tests {
		got, ok := b.Lookup(Romanian, tc.key)
		assert.Equal(t, tc.ok, ok, tc.key)
		assert.Equal(t, tc.want, got, tc.key)
	}
}

func TestTFallsBack(t *testing.T) {
	t.Parallel()

	b := loaded(t)
	assert.Equal(t, "Home", b.T(English, "nav.home"))
	assert.Equal(t, "Calendar", b.T(English, "nav.calendar"), "missing in en, found in ro")
	assert.Equal(t, "nav.unknown", b.T(English, "nav.unknown"))
	assert.Equal(t, "Acasă", b.T("de", "nav.home"))
}

func TestLoadFallsBackToDefault(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{"i18n-ro.json": tables["i18n-ro.json"]}
	b := NewBundle(Default, English)

	got, err := b.Load(context.Background(), fetch.DirFetcher{FS: fs}, English)
	require.NoError(t, err)
	assert.Equal(t, Romanian, got)
	assert.True(t, b.Has(Romanian))
	assert.False(t, b.Has(English))
}

func TestLoadDefaultFailure(t *testing.T) {
	t.Parallel()

	b := NewBundle(Default, English)
	_, err := b.Load(context.Background(), fetch.DirFetcher{FS: fstest.MapFS{}}, English)
	assert.ErrorIs(t, err, ErrDefaultUnavailable)

	err = b.LoadAll(context.Background(), fetch.DirFetcher{FS: fstest.MapFS{
		"i18n-ro.json": {Data: []byte(`not json`)},
	}})
	assert.ErrorIs(t, err, ErrDefaultUnavailable)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	b := NewBundle(Default, English)
	tests := []struct {
		header string
		want   string
	}{
		{"en-US,en;q=0.9", English},
		{"ro-RO", Romanian},
		{"ro;q=0.8, en;q=0.9", English},
		{"de-DE", Romanian},
		{"", Romanian},
		{";;;", Romanian},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, b.Match(tc.header), tc.header)
	}
}

func TestResolveOrder(t *testing.T) {
	t.Parallel()

	b := NewBundle(Default, English)
	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{"query wins", "/?lang=en", "ro", "ro", English},
		{"unsupported query ignored", "/?lang=fr", "en", "", English},
		{"cookie before header", "/", "en", "ro", English},
		{"header", "/", "", "en-GB", English},
		{"default", "/", "", "", Romanian},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				r.Header.Set("Accept-Language", tc.accept)
			}
			assert.Equal(t, tc.want, b.Resolve(r))
		})
	}
}

func TestMiddlewarePersistsQueryChoice(t *testing.T) {
	t.Parallel()

	b := NewBundle(Default, English)
	var seen string
	h := Middleware(b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	assert.Equal(t, English, seen)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, English, cookies[0].Value)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, Romanian, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestToggle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, English, Toggle(Romanian))
	assert.Equal(t, Romanian, Toggle(English))
	assert.Equal(t, Romanian, Toggle(Toggle(Romanian)))
	assert.Equal(t, "EN", SwitcherLabel(Romanian))
	assert.Equal(t, "RO", SwitcherLabel(English))
	assert.Equal(t, Default, FromContext(context.Background()))
}
