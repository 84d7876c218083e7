package middleware

import (
	"net/http"
	"path"
	"strings"
)

// TrimSlash redirects any path ending in "/" (other than the root) to its
// cleaned form. GET and HEAD receive 301. Other methods receive 308 so the
// client repeats the method and body against the canonical route.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" || !strings.HasSuffix(r.URL.Path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			// Clean also collapses "//host/" so the Location never reads as
			// a scheme-relative URL.
			canonical := *r.URL
			canonical.Path = path.Clean(r.URL.Path)
			canonical.RawPath = ""

			http.Redirect(w, r, canonical.RequestURI(), redirectStatus(r.Method))
		})
	}
}

func redirectStatus(method string) int {
	switch method {
	case http.MethodGet, http.MethodHead:
		return http.StatusMovedPermanently
	default:
		return http.StatusPermanentRedirect
	}
}
