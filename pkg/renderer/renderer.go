package renderer

import (
	"context"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// Renderer interprets a form schema into HTML. It never mutates the schema
// and never fails because of a data source: a broken option endpoint
// degrades that one field to an empty list with an error affordance.
type Renderer struct {
	resolver *Resolver
	policy   *bluemonday.Policy
	log      *slog.Logger

	// deferOptions leaves dynamic fields in a disabled loading state with
	// the data source exposed as data attributes, instead of resolving the
	// options while rendering.
	deferOptions bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithResolver injects a shared option resolver.
func WithResolver(r *Resolver) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.resolver = r
		}
	}
}

// WithDeferredOptions renders dynamic fields in their loading state and
// leaves resolution to the embedding page.
func WithDeferredOptions() Option {
	return func(rd *Renderer) { rd.deferOptions = true }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(rd *Renderer) {
		if l != nil {
			rd.log = l
		}
	}
}

// New returns a renderer with its own resolver and a UGC sanitizer for
// description text.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		resolver: NewResolver(),
		policy:   bluemonday.UGCPolicy(),
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// fieldState is the per-field resolution outcome for option-bearing types.
type fieldState struct {
	options []schema.Option
	loading bool
	failed  bool
	dynamic bool
}

// Render produces the form fragment for the schema: header, 12-column grid
// of fields, and the behavior script when any field needs it.
func (r *Renderer) Render(ctx context.Context, s schema.Schema) ([]byte, error) {
	var b strings.Builder
	b.Grow(1024)

	b.WriteString(`<div class="pf-form-preview">`)
	r.writeHeader(&b, s)

	b.WriteString(`<form class="pf-form"><div class="pf-grid">`)
	needScript := false
	for _, f := range s.Fields {
		r.renderField(ctx, &b, f)
		if f.Type == schema.TypeButton || (f.Type == schema.TypeSelect && f.Searchable) {
			needScript = true
		}
	}
	b.WriteString(`</div></form>`)
	if needScript {
		b.WriteString(behaviorScript)
	}
	b.WriteString(`</div>`)
	return []byte(b.String()), nil
}

func (r *Renderer) writeHeader(b *strings.Builder, s schema.Schema) {
	title := s.Title
	if title == "" {
		title = "Form Preview"
	}
	b.WriteString(`<h3 class="pf-title">`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</h3>`)
	if s.Description != "" {
		b.WriteString(`<p class="pf-subtitle">`)
		b.WriteString(r.policy.Sanitize(s.Description))
		b.WriteString(`</p>`)
	}
}

func (r *Renderer) renderField(ctx context.Context, b *strings.Builder, f schema.Field) {
	span := schema.ClampColSpan(f.ColSpan)

	b.WriteString(`<div class="pf-field" data-field-id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`" style="grid-column: span `)
	b.WriteString(strconv.Itoa(span))
	b.WriteString(`"`)
	if f.Hidden {
		b.WriteString(` hidden`)
	}
	b.WriteString(`>`)

	switch f.Type {
	case schema.TypeText, schema.TypeEmail, schema.TypeNumber, schema.TypeDate:
		r.renderInput(b, f)
	case schema.TypeTextarea:
		r.renderTextarea(b, f)
	case schema.TypeSelect:
		st := r.resolveOptions(ctx, f)
		if f.Searchable {
			r.renderCombobox(b, f, st)
		} else {
			r.renderSelect(b, f, st)
		}
	case schema.TypeRadio:
		r.renderRadio(b, f, r.resolveOptions(ctx, f))
	case schema.TypeCheckbox:
		r.renderToggle(b, f, false)
	case schema.TypeSwitch:
		r.renderToggle(b, f, true)
	case schema.TypeButton:
		r.renderButton(b, f)
	}

	b.WriteString(`</div>`)
}

// resolveOptions applies the precedence rule: a configured data source URL
// wins over static options whether or not the fetch succeeds.
func (r *Renderer) resolveOptions(ctx context.Context, f schema.Field) fieldState {
	ds := f.DataSource
	if ds == nil || ds.URL == "" {
		return fieldState{options: f.Options}
	}
	if r.deferOptions {
		return fieldState{dynamic: true, loading: true}
	}
	opts, err := r.resolver.Load(ctx, f)
	if err != nil {
		r.log.Warn("load field options", "field", f.ID, "url", ds.URL, "err", err)
		return fieldState{dynamic: true, failed: true}
	}
	return fieldState{dynamic: true, options: opts}
}

func (r *Renderer) writeLabel(b *strings.Builder, f schema.Field) {
	if f.Label == "" && !f.Required {
		return
	}
	b.WriteString(`<label for="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(f.Label))
	if f.Required {
		b.WriteString(`<span class="pf-required">*</span>`)
	}
	b.WriteString(`</label>`)
}

func (r *Renderer) writeDescription(b *strings.Builder, f schema.Field) {
	if f.Description == "" {
		return
	}
	b.WriteString(`<p class="pf-description">`)
	b.WriteString(r.policy.Sanitize(f.Description))
	b.WriteString(`</p>`)
}

func (r *Renderer) renderInput(b *strings.Builder, f schema.Field) {
	r.writeLabel(b, f)
	b.WriteString(`<input type="`)
	b.WriteString(string(f.Type))
	b.WriteString(`" id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`"`)
	writeNameAttr(b, f)
	if f.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(f.Placeholder))
		b.WriteString(`"`)
	}
	if v := f.Validation; v != nil {
		if v.Min != nil {
			b.WriteString(` min="`)
			b.WriteString(formatNumber(*v.Min))
			b.WriteString(`"`)
		}
		if v.Max != nil {
			b.WriteString(` max="`)
			b.WriteString(formatNumber(*v.Max))
			b.WriteString(`"`)
		}
		if v.Pattern != "" {
			b.WriteString(` pattern="`)
			b.WriteString(html.EscapeString(v.Pattern))
			b.WriteString(`"`)
		}
	}
	if f.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`>`)
	r.writeDescription(b, f)
}

func (r *Renderer) renderTextarea(b *strings.Builder, f schema.Field) {
	r.writeLabel(b, f)
	b.WriteString(`<textarea id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`" rows="4"`)
	writeNameAttr(b, f)
	if f.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(f.Placeholder))
		b.WriteString(`"`)
	}
	if f.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`></textarea>`)
	r.writeDescription(b, f)
}

func (r *Renderer) renderSelect(b *strings.Builder, f schema.Field, st fieldState) {
	r.writeLabel(b, f)
	b.WriteString(`<select id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`"`)
	writeNameAttr(b, f)
	if f.Required {
		b.WriteString(` required`)
	}
	if st.loading {
		b.WriteString(` disabled data-loading="true"`)
		writeDataSourceAttrs(b, f)
	}
	b.WriteString(`>`)

	placeholder := f.Placeholder
	if placeholder == "" {
		placeholder = "Select an option"
	}
	if st.loading {
		placeholder = "Loading..."
	}
	b.WriteString(`<option value="" disabled selected>`)
	b.WriteString(html.EscapeString(placeholder))
	b.WriteString(`</option>`)

	for _, o := range st.options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(o.Value))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(o.Label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	r.writeOptionAffordance(b, st)
	r.writeDescription(b, f)
}

func (r *Renderer) renderCombobox(b *strings.Builder, f schema.Field, st fieldState) {
	r.writeLabel(b, f)
	b.WriteString(`<div class="pf-combobox" data-searchable="true">`)
	b.WriteString(`<input type="text" class="pf-combobox-input" id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`"`)
	writeNameAttr(b, f)
	placeholder := f.Placeholder
	if placeholder == "" {
		placeholder = "Search..."
	}
	if st.loading {
		placeholder = "Loading..."
		b.WriteString(` disabled data-loading="true"`)
		writeDataSourceAttrs(b, f)
	}
	b.WriteString(` placeholder="`)
	b.WriteString(html.EscapeString(placeholder))
	b.WriteString(`" autocomplete="off">`)

	b.WriteString(`<ul class="pf-combobox-list" hidden>`)
	for _, o := range st.options {
		b.WriteString(`<li data-value="`)
		b.WriteString(html.EscapeString(o.Value))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(o.Label))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	r.writeOptionAffordance(b, st)
	r.writeDescription(b, f)
}

func (r *Renderer) renderRadio(b *strings.Builder, f schema.Field, st fieldState) {
	r.writeLabel(b, f)
	switch {
	case st.loading:
		b.WriteString(`<p class="pf-options-loading">Loading options...</p>`)
	case len(st.options) == 0:
		r.writeOptionAffordance(b, st)
	default:
		b.WriteString(`<div class="pf-radio-group" role="radiogroup">`)
		for i, o := range st.options {
			id := f.ID + "-" + strconv.Itoa(i)
			b.WriteString(`<div class="pf-radio-item"><input type="radio" id="`)
			b.WriteString(html.EscapeString(id))
			b.WriteString(`" value="`)
			b.WriteString(html.EscapeString(o.Value))
			b.WriteString(`"`)
			writeNameAttr(b, f)
			if f.Required {
				b.WriteString(` required`)
			}
			b.WriteString(`><label for="`)
			b.WriteString(html.EscapeString(id))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(o.Label))
			b.WriteString(`</label></div>`)
		}
		b.WriteString(`</div>`)
		r.writeOptionAffordance(b, st)
	}
	r.writeDescription(b, f)
}

func (r *Renderer) renderToggle(b *strings.Builder, f schema.Field, isSwitch bool) {
	b.WriteString(`<div class="pf-toggle"><input type="checkbox" id="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`"`)
	writeNameAttr(b, f)
	if isSwitch {
		b.WriteString(` role="switch" class="pf-switch"`)
	}
	if f.Required {
		b.WriteString(` required`)
	}
	b.WriteString(`><label for="`)
	b.WriteString(html.EscapeString(f.ID))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(f.Label))
	if f.Required {
		b.WriteString(`<span class="pf-required">*</span>`)
	}
	b.WriteString(`</label></div>`)
	r.writeDescription(b, f)
}

func (r *Renderer) renderButton(b *strings.Builder, f schema.Field) {
	align := f.ButtonAlign
	if align == "" {
		align = schema.AlignCenter
	}
	variant := f.ButtonVariant
	if variant == "" {
		variant = "default"
	}
	action := f.ButtonAction
	if action == "" {
		action = schema.ActionSubmit
	}
	// submit and reset are native; back and redirect are wired by the
	// behavior script through data attributes.
	btnType := "button"
	if action == schema.ActionSubmit || action == schema.ActionReset {
		btnType = action
	}

	b.WriteString(`<div class="pf-actions pf-align-`)
	b.WriteString(align)
	b.WriteString(`"><button type="`)
	b.WriteString(btnType)
	b.WriteString(`" class="pf-btn pf-btn-`)
	b.WriteString(html.EscapeString(variant))
	b.WriteString(`" data-action="`)
	b.WriteString(action)
	b.WriteString(`"`)
	if action == schema.ActionRedirect && f.ButtonRedirectURL != "" {
		b.WriteString(` data-redirect-url="`)
		b.WriteString(html.EscapeString(f.ButtonRedirectURL))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	label := f.Label
	if label == "" {
		label = "Button"
	}
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</button></div>`)
}

func (r *Renderer) writeOptionAffordance(b *strings.Builder, st fieldState) {
	if !st.dynamic || st.loading {
		return
	}
	if st.failed {
		b.WriteString(`<p class="pf-options-error">Error loading options</p>`)
		return
	}
	b.WriteString(`<p class="pf-options-hint">`)
	b.WriteString(strconv.Itoa(len(st.options)))
	b.WriteString(` options from API</p>`)
}

// writeDataSourceAttrs exposes a deferred data source so the embedding page
// can resolve the options itself.
func writeDataSourceAttrs(b *strings.Builder, f schema.Field) {
	ds := f.DataSource
	if ds == nil {
		return
	}
	b.WriteString(` data-source-url="`)
	b.WriteString(html.EscapeString(ds.URL))
	b.WriteString(`"`)
	if ds.Method != "" {
		b.WriteString(` data-source-method="`)
		b.WriteString(html.EscapeString(ds.Method))
		b.WriteString(`"`)
	}
	if ds.LabelPath != "" {
		b.WriteString(` data-source-label-path="`)
		b.WriteString(html.EscapeString(ds.LabelPath))
		b.WriteString(`"`)
	}
	if ds.ValuePath != "" {
		b.WriteString(` data-source-value-path="`)
		b.WriteString(html.EscapeString(ds.ValuePath))
		b.WriteString(`"`)
	}
}

func writeNameAttr(b *strings.Builder, f schema.Field) {
	name := f.Name
	if name == "" {
		name = f.ID
	}
	b.WriteString(` name="`)
	b.WriteString(html.EscapeString(name))
	b.WriteString(`"`)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// behaviorScript wires the non-native widget behavior: history/redirect
// buttons and substring filtering for searchable comboboxes. Redirect URLs
// with a scheme prefix navigate absolutely, anything else is an in-app path.
const behaviorScript = `<script>
(function () {
  document.querySelectorAll('.pf-form [data-action]').forEach(function (btn) {
    var action = btn.getAttribute('data-action');
    if (action === 'back') {
      btn.addEventListener('click', function (e) {
        e.preventDefault();
        window.history.back();
      });
    } else if (action === 'redirect') {
      btn.addEventListener('click', function (e) {
        e.preventDefault();
        var url = btn.getAttribute('data-redirect-url') || '';
        if (!url) return;
        if (/^[a-zA-Z][a-zA-Z0-9+.-]*:/.test(url)) {
          window.location.href = url;
        } else {
          window.location.pathname = url;
        }
      });
    }
  });
  document.querySelectorAll('.pf-combobox').forEach(function (box) {
    var input = box.querySelector('.pf-combobox-input');
    var list = box.querySelector('.pf-combobox-list');
    if (!input || !list) return;
    input.addEventListener('focus', function () { list.hidden = false; });
    input.addEventListener('input', function () {
      var q = input.value.toLowerCase();
      list.hidden = false;
      list.querySelectorAll('li').forEach(function (li) {
        li.hidden = q !== '' && li.textContent.toLowerCase().indexOf(q) === -1;
      });
    });
    list.addEventListener('click', function (e) {
      var li = e.target.closest('li');
      if (!li) return;
      input.value = li.textContent;
      input.setAttribute('data-value', li.getAttribute('data-value') || '');
      list.hidden = true;
    });
  });
})();
</script>`
