// Package web serves the server-rendered storefront and dashboard pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	funcMap template.FuncMap
	pages   map[string]*template.Template
	logger  *zap.Logger
}

// RendererOption configures the renderer
type RendererOption func(*Renderer)

// WithFuncs adds template functions, replacing built-in ones of the same name
func WithFuncs(funcs template.FuncMap) RendererOption {
	return func(r *Renderer) {
		for name, fn := range funcs {
			r.funcMap[name] = fn
		}
	}
}

// NewRenderer parses every page template against the layout
func NewRenderer(logger *zap.Logger, opts ...RendererOption) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		pages:  make(map[string]*template.Template),
		logger: logger,
	}

	r.funcMap = template.FuncMap{
		"rupiah":   rupiah,
		"number":   formatNumber,
		"rating":   formatRating,
		"date":     formatDate,
		"title":    titleCase,
		"truncate": truncate,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"seq":      seq,
		"dict":     dict,
		"default":  defaultValue,
		"deref":    deref,
		"sameID":   sameID,
		"queryURL": queryURL,
	}
	for _, opt := range opts {
		opt(r)
	}

	base, err := template.New(path.Base(layoutFile)).Funcs(r.funcMap).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = page
	}
	return r, nil
}

// Render writes page with status. Nothing is written when execution fails.
func (r *Renderer) Render(c *gin.Context, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		r.logger.Error("Unknown page template", zap.String("page", page))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Has reports whether page was parsed
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

func rupiah(v any) string {
	switch n := v.(type) {
	case int64:
		return valueobject.NewMoneyFromInt(n).String()
	case int:
		return valueobject.NewMoneyFromInt(int64(n)).String()
	case valueobject.Money:
		return n.String()
	}
	return fmt.Sprint(v)
}

// Printers and casers keep state, so each call builds its own.

func formatNumber(n int64) string {
	return message.NewPrinter(language.Indonesian).Sprintf("%d", n)
}

func formatRating(f float64) string {
	return message.NewPrinter(language.Indonesian).Sprintf("%.1f", f)
}

func titleCase(s string) string {
	return cases.Title(language.Indonesian).String(s)
}

// formatDate renders t as "2 Januari 2006"
func formatDate(t any) string {
	var tm time.Time
	switch v := t.(type) {
	case time.Time:
		tm = v
	case *time.Time:
		if v == nil {
			return ""
		}
		tm = *v
	default:
		return ""
	}
	if tm.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", tm.Day(), indonesianMonths[tm.Month()-1], tm.Year())
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return strings.TrimSpace(string(runes[:length-3])) + "..."
}

// seq returns the integers from start to end inclusive
func seq(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func defaultValue(def, v any) any {
	switch x := v.(type) {
	case nil:
		return def
	case string:
		if x == "" {
			return def
		}
	case *string:
		if x == nil || *x == "" {
			return def
		}
		return *x
	case *float64:
		if x == nil {
			return def
		}
		return *x
	}
	return v
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func sameID(a *uuid.UUID, b uuid.UUID) bool {
	return a != nil && *a == b
}

// queryURL returns base with q where key is replaced by value. An empty
// value removes the key. Changing any filter resets the page.
func queryURL(base string, q url.Values, key string, value any) string {
	next := url.Values{}
	for k, vs := range q {
		next[k] = append([]string(nil), vs...)
	}
	if key != "page" {
		next.Del("page")
	}

	s := ""
	if value != nil {
		s = fmt.Sprint(value)
	}
	if s == "" {
		next.Del(key)
	} else {
		next.Set(key, s)
	}

	if encoded := next.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}
