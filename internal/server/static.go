package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// spaHandler serves a single-page frontend build: real files are served
// directly, everything else falls back to index.html so client-side routes
// survive a refresh.
type spaHandler struct {
	dir string
}

func newSPAHandler(dir string) http.Handler {
	return &spaHandler{dir: dir}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.dir == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	// Cleaning the rooted URL path first keeps ".." from escaping the
	// static directory.
	rel := path.Clean("/" + r.URL.Path)
	file := filepath.Join(h.dir, filepath.FromSlash(rel))

	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		http.ServeFile(w, r, file)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeError(w, http.StatusNotFound, "index.html not found")
		return
	}
	http.ServeFile(w, r, index)
}
