// Package web serves the static single-page app and stored uploads.
package web

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Handler serves the SPA from the public directory on disk. Unknown paths
// fall back to index.html so client-side routes survive a deep link or a
// page reload.
type Handler struct {
	publicDir  string
	uploadDir  string
	fileServer http.Handler
}

// NewHandler creates a Handler serving publicDir at the root and uploadDir
// under /uploads/.
func NewHandler(publicDir, uploadDir string) *Handler {
	return &Handler{
		publicDir:  publicDir,
		uploadDir:  uploadDir,
		fileServer: http.FileServer(http.Dir(publicDir)),
	}
}

// ServeApp serves a file from the public directory, or index.html when the
// requested path does not resolve to a regular file.
func (h *Handler) ServeApp(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if name == "." || name == "" {
		name = "index.html"
	}

	// ServeMux has already cleaned the path; this rejects anything that
	// still is not a plain relative name.
	if !fs.ValidPath(name) {
		h.serveIndex(w, r)
		return
	}

	full := filepath.Join(h.publicDir, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		h.serveIndex(w, r)
		return
	}

	h.fileServer.ServeHTTP(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, "index.html"))
}
