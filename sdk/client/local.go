package client

import (
	"context"
	"errors"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	sdk "github.com/projectflow-dev/projectflow/sdk"
)

// FormService is the store surface the local client binds to. It matches
// the in-process form store so tests and offline tooling can skip HTTP.
type FormService interface {
	List() []LocalForm
	Get(id string) (LocalForm, error)
	Create(title, description string) LocalForm
	Delete(id string) error
	ReplaceSchema(id string, s schema.Schema) (LocalForm, error)
	Fields(id string) ([]schema.Field, error)
	AddField(id string, f schema.Field) (schema.Field, error)
	UpdateField(id, fieldID string, patch schema.FieldPatch) (schema.Field, error)
	RemoveField(id, fieldID string) error
	Reorder(id string, order []string) ([]schema.Field, error)
}

// LocalForm mirrors the stored form shape without depending on the store
// package.
type LocalForm = sdk.FormDetails

// NotFoundReporter lets a service mark its sentinel errors as not-found so
// the local client can translate them to ErrNotFound.
type NotFoundReporter interface {
	IsNotFound(err error) bool
}

type localClient struct {
	svc FormService
	nf  NotFoundReporter
}

// NewLocal returns a Client bound directly to an in-process form service.
func NewLocal(svc FormService) Client {
	c := &localClient{svc: svc}
	if nf, ok := svc.(NotFoundReporter); ok {
		c.nf = nf
	}
	return c
}

func (c *localClient) translate(err error) error {
	if err == nil {
		return nil
	}
	if c.nf != nil && c.nf.IsNotFound(err) {
		return errors.Join(ErrNotFound, err)
	}
	return err
}

func (c *localClient) ListForms(_ context.Context) ([]sdk.FormSummary, error) {
	forms := c.svc.List()
	out := make([]sdk.FormSummary, len(forms))
	for i, f := range forms {
		out[i] = sdk.FormSummary{ID: f.ID, Title: f.Title, Description: f.Description, UpdatedAt: f.UpdatedAt}
	}
	return out, nil
}

func (c *localClient) CreateForm(_ context.Context, title, description string) (*sdk.FormSummary, error) {
	f := c.svc.Create(title, description)
	return &sdk.FormSummary{ID: f.ID, Title: f.Title, Description: f.Description, UpdatedAt: f.UpdatedAt}, nil
}

func (c *localClient) DeleteForm(_ context.Context, id string) error {
	return c.translate(c.svc.Delete(id))
}

func (c *localClient) GetSchema(_ context.Context, id string) (*sdk.FormDetails, error) {
	f, err := c.svc.Get(id)
	if err != nil {
		return nil, c.translate(err)
	}
	d := f.Clone()
	return &d, nil
}

func (c *localClient) ReplaceSchema(_ context.Context, id string, s schema.Schema) (*sdk.FormDetails, error) {
	f, err := c.svc.ReplaceSchema(id, s)
	if err != nil {
		return nil, c.translate(err)
	}
	d := f.Clone()
	return &d, nil
}

func (c *localClient) ListFields(_ context.Context, formID string) ([]schema.Field, error) {
	fields, err := c.svc.Fields(formID)
	if err != nil {
		return nil, c.translate(err)
	}
	return fields, nil
}

func (c *localClient) AddField(_ context.Context, formID string, f schema.Field) (*schema.Field, error) {
	created, err := c.svc.AddField(formID, f)
	if err != nil {
		return nil, c.translate(err)
	}
	return &created, nil
}

func (c *localClient) UpdateField(_ context.Context, formID, fieldID string, patch schema.FieldPatch) (*schema.Field, error) {
	updated, err := c.svc.UpdateField(formID, fieldID, patch)
	if err != nil {
		return nil, c.translate(err)
	}
	return &updated, nil
}

func (c *localClient) RemoveField(_ context.Context, formID, fieldID string) error {
	return c.translate(c.svc.RemoveField(formID, fieldID))
}

func (c *localClient) ReorderFields(_ context.Context, formID string, order []string) ([]schema.Field, error) {
	fields, err := c.svc.Reorder(formID, order)
	if err != nil {
		return nil, c.translate(err)
	}
	return fields, nil
}

func (c *localClient) Mode() string { return "local" }
