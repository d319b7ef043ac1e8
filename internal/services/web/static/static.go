// Package static embeds the stylesheet and script served under /static/.
package static

import (
	"embed"
	"net/http"
)

// cacheControl lets browsers reuse assets for an hour before revalidating.
const cacheControl = "public, max-age=3600"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css *.js
var FS embed.FS

// Handler serves FS under prefix. Directory listings are not served.
func Handler(prefix string) http.Handler {
	files := http.FileServer(http.FS(FS))
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	}))
}
