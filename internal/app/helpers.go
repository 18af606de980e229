package app

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// queryInt reads a non-negative integer query parameter, returning def when it is
// missing or invalid.
func queryInt(q url.Values, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// queryFloat reads a float parameter from a form or query.
func queryFloat(v url.Values, key string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Get(key)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// safeReturn keeps redirects on this site: only absolute paths are accepted.
func safeReturn(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return "/"
	}
	return raw
}

// writeJSON encodes v with the JSON content type and logs encoding failures.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("error encoding response", zap.Error(err))
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

func setHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
