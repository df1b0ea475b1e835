package formstore

import (
	"time"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// Seed installs the demo forms used when the store starts empty.
func Seed(s *Store) {
	if len(s.List()) > 0 {
		return
	}
	now := time.Now().UTC()
	s.Put(Form{
		ID:          "f-1",
		Title:       "User Registration",
		Description: "Basic registration form",
		UpdatedAt:   now,
		Fields: []schema.Field{
			{ID: "fld-name", Name: "full_name", Label: "Full name", Type: schema.TypeText, Required: true, ColSpan: 6},
			{ID: "fld-email", Name: "email", Label: "Email", Type: schema.TypeEmail, Required: true, ColSpan: 6},
			{ID: "fld-role", Name: "role", Label: "Role", Type: schema.TypeSelect, ColSpan: 12, Options: []schema.Option{
				{Label: "Manager", Value: "manager"},
				{Label: "Member", Value: "member"},
			}},
			{ID: "fld-submit", Label: "Submit", Type: schema.TypeButton, ButtonVariant: "default", ButtonAction: schema.ActionSubmit, ButtonAlign: schema.AlignCenter, ColSpan: 12},
		},
	})
	s.Put(Form{
		ID:        "f-2",
		Title:     "Satisfaction Survey",
		UpdatedAt: now,
		Fields:    []schema.Field{},
	})
}
