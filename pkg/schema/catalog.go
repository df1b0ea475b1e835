package schema

// ComponentType describes a palette entry offered to the builder. The
// catalog is static and never mutated at runtime.
type ComponentType struct {
	ID    string    `json:"id"`
	Type  FieldType `json:"type"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
}

var catalog = []ComponentType{
	{ID: "text", Type: TypeText, Label: "Text", Icon: "Type"},
	{ID: "email", Type: TypeEmail, Label: "Email", Icon: "Mail"},
	{ID: "number", Type: TypeNumber, Label: "Number", Icon: "Hash"},
	{ID: "textarea", Type: TypeTextarea, Label: "Text Area", Icon: "AlignLeft"},
	{ID: "select", Type: TypeSelect, Label: "Select", Icon: "ChevronDown"},
	{ID: "checkbox", Type: TypeCheckbox, Label: "Checkbox", Icon: "CheckSquare"},
	{ID: "radio", Type: TypeRadio, Label: "Radio", Icon: "Circle"},
	{ID: "date", Type: TypeDate, Label: "Date", Icon: "Calendar"},
	{ID: "switch", Type: TypeSwitch, Label: "Switch", Icon: "Toggle"},
	{ID: "button", Type: TypeButton, Label: "Button", Icon: "MousePointerClick"},
}

// Catalog returns the fixed set of palette entries in display order.
func Catalog() []ComponentType {
	out := make([]ComponentType, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogEntry looks up the palette entry for a field type.
func CatalogEntry(t FieldType) (ComponentType, bool) {
	for _, c := range catalog {
		if c.Type == t {
			return c, true
		}
	}
	return ComponentType{}, false
}
