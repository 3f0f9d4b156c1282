// Package resources provides static asset handling for the dashboard.
package resources

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}

var minifyLoaders = map[string]api.Loader{
	".css": api.LoaderCSS,
	".js":  api.LoaderJS,
}

// Minifiable reports whether Minify rewrites the named asset.
func Minifiable(name string) bool {
	_, ok := minifyLoaders[strings.ToLower(path.Ext(name))]
	return ok
}

// Minify shrinks a CSS or JavaScript asset with esbuild. Other files are
// returned unchanged.
func Minify(name string, src []byte) ([]byte, error) {
	loader, ok := minifyLoaders[strings.ToLower(path.Ext(name))]
	if !ok {
		return src, nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Text)
		}
		return nil, fmt.Errorf("minify %s: %s", name, strings.Join(msgs, "; "))
	}
	return result.Code, nil
}
