package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// FieldType identifies one of the supported input kinds.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeNumber   FieldType = "number"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
	TypeDate     FieldType = "date"
	TypeSwitch   FieldType = "switch"
	TypeButton   FieldType = "button"
)

// Types lists every supported field type in catalog order.
var Types = []FieldType{
	TypeText, TypeEmail, TypeNumber, TypeTextarea, TypeSelect,
	TypeCheckbox, TypeRadio, TypeDate, TypeSwitch, TypeButton,
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	for _, k := range Types {
		if t == k {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == TypeSelect || t == TypeRadio
}

// Button actions.
const (
	ActionSubmit   = "submit"
	ActionReset    = "reset"
	ActionBack     = "back"
	ActionRedirect = "redirect"
)

// Button alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// DefaultColSpan is the full width of the 12-unit layout grid.
const DefaultColSpan = 12

// Option is one selectable label/value pair for select and radio fields.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DataSource configures an external endpoint that supplies the option list
// at render time. When URL is set it takes precedence over static options.
type DataSource struct {
	URL       string `json:"url,omitempty"`
	Method    string `json:"method,omitempty" enum:"GET,POST"`
	LabelPath string `json:"labelPath,omitempty"`
	ValuePath string `json:"valuePath,omitempty"`
}

// Validation holds optional client-side constraints. They are carried and
// rendered, not enforced by the engine itself.
type Validation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Field is one entry in a form schema. The position of a field inside
// Schema.Fields is both its render order and its persistence order; there is
// no separate position attribute.
type Field struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Label       string    `json:"label,omitempty"`
	Type        FieldType `json:"type" enum:"text,email,number,textarea,select,checkbox,radio,date,switch,button"`
	Required    bool      `json:"required"`
	Hidden      bool      `json:"hidden"`
	Placeholder string    `json:"placeholder,omitempty"`

	// ColSpan is the width on the 12-unit grid. Out-of-range values render
	// at full width.
	ColSpan int `json:"colSpan,omitempty"`

	Options    []Option    `json:"options,omitempty"`
	DataSource *DataSource `json:"dataSource,omitempty"`
	Searchable bool        `json:"searchable,omitempty"`

	ButtonVariant     string `json:"buttonVariant,omitempty"`
	ButtonAction      string `json:"buttonAction,omitempty" enum:"submit,reset,back,redirect"`
	ButtonRedirectURL string `json:"buttonRedirectUrl,omitempty"`
	ButtonAlign       string `json:"buttonAlign,omitempty" enum:"left,center,right"`

	Description string      `json:"description,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// Schema is a complete form definition. Field order is authoritative.
type Schema struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// NewField returns a freshly identified field of the given type with the
// defaults a palette drop produces: select and radio get two placeholder
// options, button gets submit/center defaults, everything else starts empty
// at full width.
func NewField(t FieldType) Field {
	f := Field{
		ID:      uuid.NewString(),
		Type:    t,
		ColSpan: DefaultColSpan,
	}
	if entry, ok := CatalogEntry(t); ok {
		f.Label = "New " + entry.Label
	}
	switch {
	case t.HasOptions():
		f.Options = []Option{
			{Label: "Option 1", Value: "option1"},
			{Label: "Option 2", Value: "option2"},
		}
	case t == TypeButton:
		f.Label = "Submit"
		f.ButtonVariant = "default"
		f.ButtonAction = ActionSubmit
		f.ButtonAlign = AlignCenter
	}
	return f
}

// ClampColSpan normalizes a span to the valid [1,12] range. Zero, negative
// and oversized values fall back to full width.
func ClampColSpan(n int) int {
	if n < 1 || n > DefaultColSpan {
		return DefaultColSpan
	}
	return n
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	c := f
	if f.Options != nil {
		c.Options = append([]Option(nil), f.Options...)
	}
	if f.DataSource != nil {
		ds := *f.DataSource
		c.DataSource = &ds
	}
	if f.Validation != nil {
		v := *f.Validation
		if f.Validation.Min != nil {
			m := *f.Validation.Min
			v.Min = &m
		}
		if f.Validation.Max != nil {
			m := *f.Validation.Max
			v.Max = &m
		}
		c.Validation = &v
	}
	return c
}

// Clone returns a deep copy of the schema, fields included.
func (s Schema) Clone() Schema {
	c := s
	c.Fields = CloneFields(s.Fields)
	return c
}

// CloneFields deep-copies a field sequence preserving order.
func CloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// Validate checks the closed enumerations of a field definition.
func (f Field) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	if f.DataSource != nil && f.DataSource.Method != "" &&
		f.DataSource.Method != "GET" && f.DataSource.Method != "POST" {
		return fmt.Errorf("unsupported data source method %q", f.DataSource.Method)
	}
	switch f.ButtonAction {
	case "", ActionSubmit, ActionReset, ActionBack, ActionRedirect:
	default:
		return fmt.Errorf("unknown button action %q", f.ButtonAction)
	}
	switch f.ButtonAlign {
	case "", AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("unknown button alignment %q", f.ButtonAlign)
	}
	return nil
}
