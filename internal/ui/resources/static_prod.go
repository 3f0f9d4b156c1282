//go:build !dev

package resources

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed static/*
var staticFS embed.FS

// Dir is empty for embedded assets; there is nothing to watch.
func Dir() string {
	return ""
}

// Handler serves the static files embedded in the binary. Stylesheets and
// scripts are minified once, when the handler is built.
func Handler() http.Handler {
	fsys, _ := fs.Sub(staticFS, "static")
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	minified := minifyAll(fsys)
	built := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		if data, ok := minified[name]; ok {
			w.Header().Set("Content-Type", mime.TypeByExtension(path.Ext(name)))
			http.ServeContent(w, r, name, built, bytes.NewReader(data))
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// minifyAll minifies every eligible file in fsys. Files that fail to minify
// are served as they are.
func minifyAll(fsys fs.FS) map[string][]byte {
	out := make(map[string][]byte)
	_ = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Minifiable(name) {
			return nil
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil
		}
		data, err := Minify(name, src)
		if err != nil {
			slog.Warn("serving unminified asset", "file", name, "error", err)
			return nil
		}
		out[name] = data
		return nil
	})
	return out
}
