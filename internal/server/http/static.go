package http

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzhttp"

	"github.com/ekisa-team/ttsrelay/internal/xfs"
)

const indexFile = "index.html"

// staticHandler serves the frontend bundle. Paths that do not name a file
// fall back to the entry document so client-side routes resolve.
type staticHandler struct {
	files http.Handler
	dir   string
}

// NewStaticHandler serves files from dir with gzip compression.
func NewStaticHandler(dir string) http.Handler {
	return gzhttp.GzipHandler(&staticHandler{
		files: http.FileServer(http.Dir(dir)),
		dir:   dir,
	})
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)

	if name != "/" && xfs.FileExists(filepath.Join(h.dir, filepath.FromSlash(name))) {
		if path.Base(name) == indexFile {
			w.Header().Set("Cache-Control", "no-cache")
		}
		h.files.ServeHTTP(w, r)
		return
	}

	index := filepath.Join(h.dir, indexFile)
	if !xfs.FileExists(index) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, index)
}
