package schema

// FieldPatch is a partial field update as carried by the wire contract. Nil
// members leave the stored value untouched; the field's id and type are
// immutable and cannot be patched. Clearing options or dataSource entirely
// is done by replacing the whole schema, not by patching a single field.
type FieldPatch struct {
	Name        *string `json:"name,omitempty"`
	Label       *string `json:"label,omitempty"`
	Required    *bool   `json:"required,omitempty"`
	Hidden      *bool   `json:"hidden,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
	ColSpan     *int    `json:"colSpan,omitempty"`

	Options    *[]Option   `json:"options,omitempty"`
	DataSource *DataSource `json:"dataSource,omitempty"`
	Searchable *bool       `json:"searchable,omitempty"`

	ButtonVariant     *string `json:"buttonVariant,omitempty"`
	ButtonAction      *string `json:"buttonAction,omitempty" enum:"submit,reset,back,redirect"`
	ButtonRedirectURL *string `json:"buttonRedirectUrl,omitempty"`
	ButtonAlign       *string `json:"buttonAlign,omitempty" enum:"left,center,right"`

	Description *string     `json:"description,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// Apply merges the patch into the field. ColSpan is clamped to the grid.
func (p FieldPatch) Apply(f *Field) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	if p.Hidden != nil {
		f.Hidden = *p.Hidden
	}
	if p.Placeholder != nil {
		f.Placeholder = *p.Placeholder
	}
	if p.ColSpan != nil {
		f.ColSpan = ClampColSpan(*p.ColSpan)
	}
	if p.Options != nil {
		f.Options = append([]Option(nil), (*p.Options)...)
	}
	if p.DataSource != nil {
		ds := *p.DataSource
		f.DataSource = &ds
	}
	if p.Searchable != nil {
		f.Searchable = *p.Searchable
	}
	if p.ButtonVariant != nil {
		f.ButtonVariant = *p.ButtonVariant
	}
	if p.ButtonAction != nil {
		f.ButtonAction = *p.ButtonAction
	}
	if p.ButtonRedirectURL != nil {
		f.ButtonRedirectURL = *p.ButtonRedirectURL
	}
	if p.ButtonAlign != nil {
		f.ButtonAlign = *p.ButtonAlign
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Validation != nil {
		v := *p.Validation
		f.Validation = &v
	}
}
