package schema

import "github.com/projectflow-dev/projectflow/pkg/schema"

// CreateForm is the request body for creating a form.
type CreateForm struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateForm is the request body for patching form metadata. Empty members
// keep the stored value.
type UpdateForm struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SchemaPut is the request body for replacing a form's whole schema.
type SchemaPut struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Fields      []schema.Field `json:"fields"`
}

// Reorder is the request body for a full reorder of a form's fields.
type Reorder struct {
	Order []string `json:"order" minItems:"0"`
}

// CreateProject is the request body for creating a project.
type CreateProject struct {
	Name        string         `json:"name"`
	Code        string         `json:"code,omitempty"`
	Description string         `json:"description,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// UpdateProject patches project metadata; nil members keep the stored value
// and a nil attribute value deletes the key.
type UpdateProject struct {
	Name        *string        `json:"name,omitempty"`
	Code        *string        `json:"code,omitempty"`
	Description *string        `json:"description,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// CreateUser is the request body for creating a user.
type CreateUser struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
