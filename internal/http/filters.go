package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// SortDirAsc represents ascending sort direction.
	SortDirAsc = "asc"
	// SortDirDesc represents descending sort direction.
	SortDirDesc = "desc"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses common pagination params and clamps to sane bounds.
// - defLimit: default limit when not specified
// - maxLimit: maximum allowed limit (values > maxLimit are clamped to maxLimit).
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim := parseIntQuery(r, "limit", defLimit)
	off := parseIntQuery(r, "offset", 0)
	if lim < 1 {
		lim = 1
	}
	if lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

// ParseSortParam extracts the sort field and direction from query parameters.
// It supports ?sort=field:dir as well as ?sort=field&dir=direction; an invalid
// direction comes back as an empty string.
func ParseSortParam(q url.Values, sortKey, dirKey string) (string, string) {
	sortParam := strings.TrimSpace(q.Get(sortKey))
	dirParam := strings.ToLower(strings.TrimSpace(q.Get(dirKey)))

	parts := strings.SplitN(sortParam, ":", 2)
	if len(parts) == 2 {
		fieldPart := strings.TrimSpace(parts[0])
		dirPart := strings.ToLower(strings.TrimSpace(parts[1]))
		if dirPart == SortDirAsc || dirPart == SortDirDesc {
			return fieldPart, dirPart
		}
		return fieldPart, ""
	}

	if dirParam == SortDirAsc || dirParam == SortDirDesc {
		return sortParam, dirParam
	}
	return sortParam, ""
}

// queryStringPtr returns a pointer to a trimmed query value, or nil when absent.
func queryStringPtr(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}
