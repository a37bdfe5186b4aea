// Package views holds the embedded page templates and the gin renderer that
// serves them. Every page is parsed into its own set together with the
// layouts and partials, so pages can all define "title" and "content"
// without clashing.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/farellandr/fyyur/internal/forms"
)

//go:embed templates
var files embed.FS

const (
	layoutName   = "layout"
	fullFormat   = "Monday January, 2, 2006 at 3:04PM"
	mediumFormat = "Mon 01, 02, 2006 3:04PM"
	inputFormat  = "2006-01-02 15:04:05"
)

// Datetime formats t for display. format is "full", "medium" or a Go layout.
func Datetime(t time.Time, format string) string {
	switch format {
	case "full", "":
		return t.Format(fullFormat)
	case "medium":
		return t.Format(mediumFormat)
	case "input":
		return t.Format(inputFormat)
	}
	return t.Format(format)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": Datetime,
		"has":      forms.Has,
		"checked":  forms.Checked,
		"join":     strings.Join,
		"fieldError": func(errs forms.FieldErrors, name string) string {
			return errs[name]
		},
		"field":  field,
		"choice": choice,
		"multi":  multi,
	}
}

// Field is what the form partials render: one input with its current value
// and validation message.
type Field struct {
	Name     string
	Label    string
	Value    string
	Error    string
	Choices  []string
	Selected []string
}

func field(name, label, value string, errs forms.FieldErrors) Field {
	return Field{Name: name, Label: label, Value: value, Error: errs[name]}
}

func choice(name, label, value string, choices []string, errs forms.FieldErrors) Field {
	f := field(name, label, value, errs)
	f.Choices = choices
	return f
}

func multi(name, label string, selected, choices []string, errs forms.FieldErrors) Field {
	f := field(name, label, "", errs)
	f.Selected = selected
	f.Choices = choices
	return f
}

// Renderer implements gin's render.HTMLRender over the embedded pages.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	return Parse(files)
}

// Parse loads templates/layouts and templates/partials as the shared base
// and every other .html file under templates as a page keyed by its base
// name.
func Parse(fsys fs.FS) (*Renderer, error) {
	base := template.New(layoutName).Funcs(funcs())
	for _, dir := range []string{"templates/layouts", "templates/partials"} {
		matches, err := fs.Glob(fsys, dir+"/*.html")
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}
		if base, err = base.ParseFS(fsys, matches...); err != nil {
			return nil, fmt.Errorf("parse %s: %w", dir, err)
		}
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"templates/pages", "templates/forms", "templates/errors"} {
		matches, err := fs.Glob(fsys, dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range matches {
			name := path.Base(file)
			if _, dup := r.pages[name]; dup {
				return nil, fmt.Errorf("duplicate page %s", name)
			}
			clone, err := base.Clone()
			if err != nil {
				return nil, err
			}
			if r.pages[name], err = clone.ParseFS(fsys, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
		}
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		return missing{name: name}
	}
	return render.HTML{Template: tmpl, Name: layoutName, Data: data}
}

type missing struct{ name string }

func (m missing) Render(http.ResponseWriter) error {
	return fmt.Errorf("views: no template %q", m.name)
}

func (missing) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
