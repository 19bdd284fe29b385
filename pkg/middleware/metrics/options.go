package metrics

import (
	"net/http"
	"sync"
)

// UnmatchedPath is the uri label for requests outside the known route set.
const UnmatchedPath = "unmatched"

var (
	normMu         sync.RWMutex
	pathNormalizer = func(r *http.Request) string { return r.URL.Path }
)

// SetPathNormalizer replaces how the uri label is derived from a request.
// By default it returns r.URL.Path unchanged.
func SetPathNormalizer(fn func(*http.Request) string) {
	if fn == nil {
		return
	}
	normMu.Lock()
	pathNormalizer = fn
	normMu.Unlock()
}

// KnownPaths returns a normalizer that keeps the given paths and collapses
// everything else to UnmatchedPath, so scanners cannot grow the label set.
func KnownPaths(paths ...string) func(*http.Request) string {
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	return func(r *http.Request) string {
		if _, ok := known[r.URL.Path]; ok {
			return r.URL.Path
		}
		return UnmatchedPath
	}
}

// the scrape endpoint is never counted
func isSkipPath(r *http.Request) bool {
	return r.URL.Path == "/metrics"
}

func normalizePath(r *http.Request) string {
	normMu.RLock()
	fn := pathNormalizer
	normMu.RUnlock()
	return fn(r)
}
