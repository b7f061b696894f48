// Package render executes the viewer's HTML templates. Templates are embedded
// in the binary; a directory on disk can replace them and be reloaded live.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var embedded embed.FS

const (
	layoutFile   = "layout.html"
	partialsFile = "partials.html"
)

// Page is the data every page template receives.
type Page struct {
	Title string
	// Path is the current request path; toggles return to it.
	Path string
	// HideQuickSearch hides the navbar search form.
	HideQuickSearch bool
	ScrollTo        string
	Body            interface{}
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	fsys   fs.FS
	logger *zap.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New parses the embedded templates, or those in dir when dir is non-empty.
func New(dir string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}
		fsys = sub
	}
	r := &Renderer{fsys: fsys, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses every template. On error the previous set stays in use.
func (r *Renderer) Reload() error {
	pages, err := parse(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	r.logger.Debug("templates loaded", zap.Int("pages", len(pages)))
	return nil
}

func parse(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New(layoutFile).Funcs(funcs).ParseFS(fsys, layoutFile, partialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template)
	for _, f := range files {
		if f == layoutFile || f == partialsFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return pages, nil
}

// Render executes the named page inside the layout. Output is buffered so a
// failed execution writes nothing.
func (r *Renderer) Render(w io.Writer, name string, p Page) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutFile, p); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"dict": dict,
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(kv ...interface{}) (map[string]interface{}, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
