package formstore

import (
	"errors"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	"github.com/projectflow-dev/projectflow/sdk/client"
)

// LocalService adapts the store to the SDK's local client surface, so tests
// and offline tooling can drive the same contract without HTTP.
func (s *Store) LocalService() client.FormService {
	return localService{s: s}
}

type localService struct {
	s *Store
}

func toDetails(f Form) client.LocalForm {
	return client.LocalForm{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		UpdatedAt:   f.UpdatedAt,
		Fields:      f.Fields,
	}
}

func (l localService) List() []client.LocalForm {
	forms := l.s.List()
	out := make([]client.LocalForm, len(forms))
	for i, f := range forms {
		out[i] = toDetails(f)
	}
	return out
}

func (l localService) Get(id string) (client.LocalForm, error) {
	f, err := l.s.Get(id)
	if err != nil {
		return client.LocalForm{}, err
	}
	return toDetails(f), nil
}

func (l localService) Create(title, description string) client.LocalForm {
	return toDetails(l.s.Create(title, description))
}

func (l localService) Delete(id string) error {
	return l.s.Delete(id)
}

func (l localService) ReplaceSchema(id string, sc schema.Schema) (client.LocalForm, error) {
	f, err := l.s.ReplaceSchema(id, sc)
	if err != nil {
		return client.LocalForm{}, err
	}
	return toDetails(f), nil
}

func (l localService) Fields(id string) ([]schema.Field, error) {
	return l.s.Fields(id)
}

func (l localService) AddField(id string, f schema.Field) (schema.Field, error) {
	return l.s.AddField(id, f)
}

func (l localService) UpdateField(id, fieldID string, patch schema.FieldPatch) (schema.Field, error) {
	return l.s.UpdateField(id, fieldID, patch)
}

func (l localService) RemoveField(id, fieldID string) error {
	return l.s.RemoveField(id, fieldID)
}

func (l localService) Reorder(id string, order []string) ([]schema.Field, error) {
	return l.s.Reorder(id, order)
}

// IsNotFound reports whether err is one of the store's not-found sentinels.
func (l localService) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrFieldNotFound)
}
