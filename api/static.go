package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend from dir. Paths that do not name a
// file fall back to index.html so client-side routes resolve. Unknown /api
// paths and requests other than GET or HEAD get a JSON 404.
type SPAHandler struct {
	dir string
}

func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{dir: dir}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") ||
		(r.Method != http.MethodGet && r.Method != http.MethodHead) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	info, err := os.Stat(name)
	if err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		loggerFromContext(r.Context()).Error("stat static file", "path", name, "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
