package http

import (
	"fmt"
	"net/http"
	"strconv"
)

// pathID parses the named path segment as a positive integer id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// searchParams reads q/limit/offset with defaults; out-of-range values are a
// client error rather than being clamped.
func searchParams(r *http.Request) (query string, limit, offset int, err error) {
	values := r.URL.Query()
	query = values.Get("q")

	limit = defaultSearchLimit
	if raw := values.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxSearchLimit {
			return "", 0, 0, fmt.Errorf("limit must be an integer between 1 and %d", maxSearchLimit)
		}
	}

	offset = 0
	if raw := values.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return "", 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return query, limit, offset, nil
}
