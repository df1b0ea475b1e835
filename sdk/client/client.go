package client

import (
	"context"
	"errors"

	sdk "github.com/projectflow-dev/projectflow/sdk"
	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// ErrNotFound reports that the requested form or field does not exist. It is
// a distinct condition, not a generic failure, so callers can offer "create
// new" instead of "retry".
var ErrNotFound = errors.New("not found")

// Client provides access to the Project Flow form service.
type Client interface {
	ListForms(ctx context.Context) ([]sdk.FormSummary, error)
	CreateForm(ctx context.Context, title, description string) (*sdk.FormSummary, error)
	DeleteForm(ctx context.Context, id string) error

	GetSchema(ctx context.Context, id string) (*sdk.FormDetails, error)
	ReplaceSchema(ctx context.Context, id string, s schema.Schema) (*sdk.FormDetails, error)

	ListFields(ctx context.Context, formID string) ([]schema.Field, error)
	AddField(ctx context.Context, formID string, f schema.Field) (*schema.Field, error)
	UpdateField(ctx context.Context, formID, fieldID string, patch schema.FieldPatch) (*schema.Field, error)
	RemoveField(ctx context.Context, formID, fieldID string) error
	ReorderFields(ctx context.Context, formID string, order []string) ([]schema.Field, error)

	Mode() string
}
