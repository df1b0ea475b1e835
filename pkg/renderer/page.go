package renderer

import (
	"context"
	"html"
	"strings"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// RenderPage wraps Render in a standalone HTML document with the minimal
// stylesheet the preview endpoint serves.
func (r *Renderer) RenderPage(ctx context.Context, s schema.Schema) ([]byte, error) {
	body, err := r.Render(ctx, s)
	if err != nil {
		return nil, err
	}
	title := s.Title
	if title == "" {
		title = "Form Preview"
	}
	var b strings.Builder
	b.Grow(len(body) + len(pageCSS) + 256)
	b.WriteString("<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title><style>")
	b.WriteString(pageCSS)
	b.WriteString("</style></head><body>")
	b.Write(body)
	b.WriteString("</body></html>")
	return []byte(b.String()), nil
}

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 56rem; color: #1a1a1a; }
.pf-form-preview { border: 1px solid #ddd; border-radius: 8px; padding: 1.5rem; }
.pf-title { margin: 0 0 .25rem; }
.pf-subtitle, .pf-description, .pf-options-hint { color: #666; font-size: .875rem; }
.pf-options-error { color: #b00020; font-size: .875rem; }
.pf-grid { display: grid; grid-template-columns: repeat(12, 1fr); gap: 1rem; }
.pf-field label { display: block; font-weight: 500; margin-bottom: .25rem; }
.pf-field input[type=text], .pf-field input[type=email], .pf-field input[type=number],
.pf-field input[type=date], .pf-field select, .pf-field textarea, .pf-combobox-input {
  width: 100%; padding: .5rem; border: 1px solid #ccc; border-radius: 6px; box-sizing: border-box; }
.pf-required { color: #b00020; margin-left: .2rem; }
.pf-toggle, .pf-radio-item { display: flex; align-items: center; gap: .5rem; }
.pf-toggle label, .pf-radio-item label { margin: 0; font-weight: 400; }
.pf-combobox { position: relative; }
.pf-combobox-list { list-style: none; margin: .25rem 0 0; padding: 0; border: 1px solid #ccc; border-radius: 6px; max-height: 12rem; overflow-y: auto; }
.pf-combobox-list li { padding: .4rem .6rem; cursor: pointer; }
.pf-combobox-list li:hover { background: #f2f2f2; }
.pf-actions { display: flex; }
.pf-align-left { justify-content: flex-start; }
.pf-align-center { justify-content: center; }
.pf-align-right { justify-content: flex-end; }
.pf-btn { padding: .5rem 1.25rem; border-radius: 6px; border: 1px solid #1a1a1a; background: #1a1a1a; color: #fff; cursor: pointer; }
.pf-btn-outline, .pf-btn-ghost { background: transparent; color: #1a1a1a; }
.pf-btn-ghost { border-color: transparent; }
.pf-btn-secondary { background: #f2f2f2; color: #1a1a1a; border-color: #ccc; }
.pf-btn-destructive { background: #b00020; border-color: #b00020; }
`
