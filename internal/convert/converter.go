package convert

import (
	"context"
	"path/filepath"
	"strings"
)

// Converter produces the HTML text of a source document.
type Converter interface {
	Name() string
	Convert(ctx context.Context, path string) (string, error)
}

// Auto dispatches HTML sources to Passthrough and everything else to the
// office converter.
type Auto struct {
	Office Converter
	HTML   Converter
}

// NewAuto returns an Auto converter using office for non-HTML sources.
func NewAuto(office Converter) *Auto {
	return &Auto{Office: office, HTML: Passthrough{}}
}

func (a *Auto) Name() string { return "auto" }

// Convert implements Converter.
func (a *Auto) Convert(ctx context.Context, path string) (string, error) {
	return a.For(path).Convert(ctx, path)
}

// For reports which converter handles path.
func (a *Auto) For(path string) Converter {
	if IsHTML(path) {
		return a.HTML
	}
	return a.Office
}

// IsHTML reports whether path has an HTML extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}
