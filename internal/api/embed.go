//go:build !dev

package api

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed dist/*
var frontendFS embed.FS

// StaticHandler serves the embedded frontend build. Requests without a file
// extension fall back to index.html so client-side routes survive a reload.
func (h *Handler) StaticHandler() http.Handler {
	dist, _ := fs.Sub(frontendFS, "dist")
	files := http.FileServer(http.FS(dist))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && path.Ext(r.URL.Path) == "" {
			r.URL.Path = "/"
		}
		files.ServeHTTP(w, r)
	})
}
