package builder

import (
	"errors"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// Editor holds the draft of a single field while its settings panel is
// open. Edits apply to the draft only; Save hands the result back.
type Editor struct {
	draft   schema.Field
	editing bool
}

// Edit begins editing the given field, replacing any draft in progress.
func (e *Editor) Edit(f schema.Field) {
	e.draft = f.Clone()
	e.editing = true
}

// Editing reports whether a draft is open.
func (e *Editor) Editing() bool { return e.editing }

// Draft returns a copy of the current draft.
func (e *Editor) Draft() schema.Field {
	return e.draft.Clone()
}

// SetLabel updates the draft label.
func (e *Editor) SetLabel(label string) { e.draft.Label = label }

// SetName updates the draft submission name.
func (e *Editor) SetName(name string) { e.draft.Name = name }

// SetRequired toggles the required flag.
func (e *Editor) SetRequired(req bool) { e.draft.Required = req }

// SetColSpan updates the draft column span, clamped to the grid.
func (e *Editor) SetColSpan(n int) { e.draft.ColSpan = schema.ClampColSpan(n) }

// SetPlaceholder updates the draft placeholder text.
func (e *Editor) SetPlaceholder(p string) { e.draft.Placeholder = p }

// SetDescription updates the draft helper text.
func (e *Editor) SetDescription(d string) { e.draft.Description = d }

// SetButtonVariant updates the draft button style.
func (e *Editor) SetButtonVariant(v string) { e.draft.ButtonVariant = v }

// SetButtonAction updates what the draft button does on click.
func (e *Editor) SetButtonAction(a string) { e.draft.ButtonAction = a }

// SetButtonAlign updates the draft button alignment.
func (e *Editor) SetButtonAlign(a string) { e.draft.ButtonAlign = a }

// SetButtonRedirectURL updates the redirect target. Only meaningful when the
// action is redirect; kept on the draft regardless so switching actions back
// and forth loses nothing.
func (e *Editor) SetButtonRedirectURL(u string) { e.draft.ButtonRedirectURL = u }

// SetValidationRange updates the numeric min/max constraints. Nil clears a
// bound; clearing both removes the validation block when nothing else is set.
func (e *Editor) SetValidationRange(min, max *float64) {
	if min == nil && max == nil {
		if e.draft.Validation != nil && e.draft.Validation.Pattern == "" && e.draft.Validation.Message == "" {
			e.draft.Validation = nil
		} else if e.draft.Validation != nil {
			e.draft.Validation.Min = nil
			e.draft.Validation.Max = nil
		}
		return
	}
	if e.draft.Validation == nil {
		e.draft.Validation = &schema.Validation{}
	}
	e.draft.Validation.Min = copyBound(min)
	e.draft.Validation.Max = copyBound(max)
}

func copyBound(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// AddOption appends an empty manual option row for the user to fill in.
func (e *Editor) AddOption() {
	e.draft.Options = append(e.draft.Options, schema.Option{})
}

// RemoveOption deletes the option row at i. Out-of-range indexes are
// ignored.
func (e *Editor) RemoveOption(i int) {
	if i < 0 || i >= len(e.draft.Options) {
		return
	}
	e.draft.Options = append(e.draft.Options[:i], e.draft.Options[i+1:]...)
}

// UpdateOption rewrites the option row at i. Out-of-range indexes are
// ignored.
func (e *Editor) UpdateOption(i int, label, value string) {
	if i < 0 || i >= len(e.draft.Options) {
		return
	}
	e.draft.Options[i] = schema.Option{Label: label, Value: value}
}

// UseAPISource switches the draft to fetch its options dynamically,
// installing the default data source settings. Manual options are kept so
// switching back loses nothing.
func (e *Editor) UseAPISource() {
	if e.draft.DataSource != nil {
		return
	}
	e.draft.DataSource = &schema.DataSource{
		Method:    "GET",
		LabelPath: "label",
		ValuePath: "value",
	}
}

// UseManualSource switches the draft back to its static option list.
func (e *Editor) UseManualSource() {
	e.draft.DataSource = nil
}

// SetDataSourceURL updates the fetch URL; a no-op unless the draft uses an
// API source.
func (e *Editor) SetDataSourceURL(url string) {
	if e.draft.DataSource != nil {
		e.draft.DataSource.URL = url
	}
}

// SetDataSourcePaths updates the label/value extraction paths.
func (e *Editor) SetDataSourcePaths(labelPath, valuePath string) {
	if e.draft.DataSource != nil {
		e.draft.DataSource.LabelPath = labelPath
		e.draft.DataSource.ValuePath = valuePath
	}
}

// Save validates the draft and closes the editor, returning the finished
// field.
func (e *Editor) Save() (schema.Field, error) {
	if e.draft.Label == "" {
		return schema.Field{}, errors.New("label is required")
	}
	if e.draft.Name == "" {
		return schema.Field{}, errors.New("name is required")
	}
	if err := e.draft.Validate(); err != nil {
		return schema.Field{}, err
	}
	e.editing = false
	return e.draft.Clone(), nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() {
	e.editing = false
	e.draft = schema.Field{}
}
