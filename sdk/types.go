package sdk

import (
	"time"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// FormSummary is the list-page projection of a form.
type FormSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FormDetails is the full stored representation: summary plus the ordered
// field sequence.
type FormDetails struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Fields      []schema.Field `json:"fields"`
}

// Schema projects the details back to a schema document.
func (d FormDetails) Schema() schema.Schema {
	return schema.Schema{Title: d.Title, Description: d.Description, Fields: schema.CloneFields(d.Fields)}
}

// Clone deep-copies the details, fields included.
func (d FormDetails) Clone() FormDetails {
	c := d
	c.Fields = schema.CloneFields(d.Fields)
	return c
}
