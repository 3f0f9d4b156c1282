//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// Dir derives the absolute path to the static directory relative to this
// source file, regardless of where the binary is run from. The dev server
// watches it for changes.
func Dir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler serves static files from the filesystem so edits show up without a rebuild.
func Handler() http.Handler {
	staticDir := Dir()
	slog.Info("static assets served from filesystem", "path", staticDir)

	fileServer := http.FileServer(http.FS(os.DirFS(staticDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.StripPrefix("/static/", fileServer).ServeHTTP(w, r)
	})
}
