package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// handleNotFound answers unknown /api/ paths with a JSON 404. Anything else
// is served from the client bundle in dir when one is configured, falling
// back to index.html so client-side routes resolve.
func handleNotFound(dir string) http.HandlerFunc {
	var fileServer http.Handler
	if dir != "" {
		fileServer = http.FileServer(http.Dir(dir))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if fileServer == nil || strings.HasPrefix(r.URL.Path, "/api/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
