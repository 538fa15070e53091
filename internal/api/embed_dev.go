//go:build dev

package api

import (
	"net/http"
	"net/http/httputil"
	"net/url"
)

// viteDevServer is where `npm run dev` serves the frontend during development.
var viteDevServer = &url.URL{Scheme: "http", Host: "localhost:5173"}

// StaticHandler proxies frontend requests to the Vite dev server so the Go
// API and the hot-reloading frontend can share one origin.
func (h *Handler) StaticHandler() http.Handler {
	return httputil.NewSingleHostReverseProxy(viteDevServer)
}
