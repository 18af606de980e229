package i18n

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// CookieName holds the persisted language preference.
const CookieName = "language"

const cookieMaxAge = 365 * 24 * time.Hour

type ctxKey struct{}

// Resolve picks the request language: the "lang" query parameter, then the preference
// cookie, then Accept-Language, then the default. Unsupported values are skipped.
func (b *Bundle) Resolve(r *http.Request) string {
	if q := strings.ToLower(r.URL.Query().Get("lang")); b.IsSupported(q) {
		return q
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if v := strings.ToLower(c.Value); b.IsSupported(v) {
			return v
		}
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		return b.Match(al)
	}
	return b.fallback
}

// Persist stores the preference cookie.
func Persist(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the language once per request, persists an explicit query
// choice, and exposes the result through FromContext.
func Middleware(b *Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := b.Resolve(r)
			if q := strings.ToLower(r.URL.Query().Get("lang")); q == lang {
				Persist(w, lang)
			}
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// WithLang stores lang in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the request language, or Default.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return Default
}
