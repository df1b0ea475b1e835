// Package builder holds the client-side state of the form builder: the
// form being edited, the in-progress field edit, and the drag/drop logic
// that rearranges the canvas.
package builder

import (
	"context"
	"errors"
	"sync"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	"github.com/projectflow-dev/projectflow/sdk"
	"github.com/projectflow-dev/projectflow/sdk/client"
)

// Session tracks the form currently open in the builder. All methods are
// safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	client   client.Client
	current  *sdk.FormDetails
	loading  bool
	errMsg   string
	notFound bool
	dirty    bool
}

// NewSession returns a session bound to the given API client.
func NewSession(c client.Client) *Session {
	return &Session{client: c}
}

// LoadForm fetches the form and makes it current. Switching forms discards
// any unsaved local edits; callers that care should check Dirty first.
func (s *Session) LoadForm(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.notFound = false
	s.mu.Unlock()

	details, err := s.client.GetSchema(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.current = nil
			s.dirty = false
			s.notFound = true
			return err
		}
		// transient failure: keep whatever form was already loaded
		s.errMsg = err.Error()
		return err
	}
	s.current = details
	s.dirty = false
	return nil
}

// Current returns a deep copy of the loaded form, or nil when none is loaded.
func (s *Session) Current() *sdk.FormDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := s.current.Clone()
	return &c
}

// Loading reports whether a load is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last load error message, empty when the load succeeded.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// NotFound reports whether the last load failed because the form is gone.
func (s *Session) NotFound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notFound
}

// Dirty reports whether local edits have not been saved to the server.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SetLocalFields replaces the working copy's fields without contacting the
// server, marking the session dirty.
func (s *Session) SetLocalFields(fields []schema.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return errors.New("no form loaded")
	}
	s.current.Fields = schema.CloneFields(fields)
	s.dirty = true
	return nil
}

// ApplyFieldSave merges a saved field back into the working copy. A save
// whose field id no longer exists is a no-op: the field was removed while
// the editor was open.
func (s *Session) ApplyFieldSave(f schema.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	for i := range s.current.Fields {
		if s.current.Fields[i].ID == f.ID {
			s.current.Fields[i] = f.Clone()
			s.dirty = true
			return
		}
	}
}

// Save pushes the working copy's schema to the server and refreshes the
// session from the stored result.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errors.New("no form loaded")
	}
	id := s.current.ID
	doc := s.current.Schema()
	s.mu.Unlock()

	details, err := s.client.ReplaceSchema(ctx, id, doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.errMsg = ""
	s.current = details
	s.dirty = false
	return nil
}
