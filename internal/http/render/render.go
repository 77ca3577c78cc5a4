package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/templates"
)

// Renderer executes the embedded page templates. Each page is parsed
// together with layout.html so they can define "content" independently
// of each other.
type Renderer struct {
	log   *slog.Logger
	pages map[string]*template.Template
}

func New(l *slog.Logger) (*Renderer, error) {
	files, err := fs.Glob(templates.Files, "*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, f := range files {
		if f == "layout.html" {
			continue
		}
		t, err := template.ParseFS(templates.Files, "layout.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", f, err)
		}
		pages[strings.TrimSuffix(f, ".html")] = t
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates embedded")
	}
	return &Renderer{log: l, pages: pages}, nil
}

// HTML renders a page into a buffer first so a template failure never
// leaves a half written response behind.
func (r *Renderer) HTML(c *gin.Context, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		middleware.Fail(c, apperr.Wrap(fmt.Errorf("unknown page template %q", page)))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.LogAttrs(c.Request.Context(), slog.LevelError, "template_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("page", page),
			slog.Any("err", err),
		)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
