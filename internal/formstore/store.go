package formstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectflow-dev/projectflow/internal/logger"
	"github.com/projectflow-dev/projectflow/pkg/schema"
)

var (
	// ErrNotFound is returned when the requested form id does not exist.
	ErrNotFound = errors.New("form not found")
	// ErrFieldNotFound is returned when the requested field id does not exist.
	ErrFieldNotFound = errors.New("field not found")
	// ErrOrderMismatch is returned when a reorder request does not name
	// exactly the existing field ids.
	ErrOrderMismatch = errors.New("order does not match existing field ids")
)

// Form is the stored representation of a form: schema plus identity and a
// server-maintained timestamp.
type Form struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Fields      []schema.Field `json:"fields"`
}

// Schema projects the stored form back to its schema document.
func (f Form) Schema() schema.Schema {
	return schema.Schema{Title: f.Title, Description: f.Description, Fields: schema.CloneFields(f.Fields)}
}

func (f Form) clone() Form {
	c := f
	c.Fields = schema.CloneFields(f.Fields)
	return c
}

// Store holds every form in memory, guarded by a single lock. Mutations
// bump the owning form's UpdatedAt and, when a snapshotter is attached,
// write a snapshot after the lock is released.
type Store struct {
	mu    sync.RWMutex
	forms map[string]*Form
	snap  *Snapshotter
}

// New returns an empty store.
func New() *Store {
	return &Store{forms: make(map[string]*Form)}
}

// AttachSnapshotter makes the store persist itself after every mutation.
func (s *Store) AttachSnapshotter(sn *Snapshotter) {
	s.mu.Lock()
	s.snap = sn
	s.mu.Unlock()
}

func (s *Store) persist() {
	s.mu.RLock()
	sn := s.snap
	var forms []Form
	if sn != nil {
		forms = s.listLocked()
	}
	s.mu.RUnlock()
	if sn == nil {
		return
	}
	if err := sn.Write(forms); err != nil {
		logger.L.Error("write store snapshot", "err", err)
	}
}

func (s *Store) listLocked() []Form {
	out := make([]Form, 0, len(s.forms))
	for _, f := range s.forms {
		out = append(out, f.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns every form sorted by id.
func (s *Store) List() []Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

// Get returns a copy of the form with the given id.
func (s *Store) Get(id string) (Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	if !ok {
		return Form{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return f.clone(), nil
}

// Create adds a new form. A blank title defaults to "Untitled".
func (s *Store) Create(title, description string) Form {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}
	f := Form{
		ID:          "f-" + uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		UpdatedAt:   time.Now().UTC(),
		Fields:      []schema.Field{},
	}
	s.mu.Lock()
	s.forms[f.ID] = &f
	s.mu.Unlock()
	s.persist()
	return f.clone()
}

// Put inserts or replaces a form verbatim. Used by the seed loader and the
// snapshot hydrator; unlike Create it preserves the given id and timestamp.
func (s *Store) Put(f Form) {
	if f.ID == "" {
		f.ID = "f-" + uuid.NewString()
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now().UTC()
	}
	c := f.clone()
	s.mu.Lock()
	s.forms[c.ID] = &c
	s.mu.Unlock()
	s.persist()
}

// UpdateMeta updates title and/or description. Blank values keep the
// previous ones; a nil pointer leaves the attribute untouched.
func (s *Store) UpdateMeta(id string, title, description *string) (Form, error) {
	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return Form{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if title != nil {
		if t := strings.TrimSpace(*title); t != "" {
			f.Title = t
		}
	}
	if description != nil {
		f.Description = strings.TrimSpace(*description)
	}
	f.UpdatedAt = time.Now().UTC()
	out := f.clone()
	s.mu.Unlock()
	s.persist()
	return out, nil
}

// Delete removes a form.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.forms[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.forms, id)
	s.mu.Unlock()
	s.persist()
	return nil
}

// ReplaceSchema swaps the whole schema of a form in one operation and
// returns the stored representation. Blank title or description keep the
// previous values; the field sequence is adopted as given.
func (s *Store) ReplaceSchema(id string, sc schema.Schema) (Form, error) {
	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return Form{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if t := strings.TrimSpace(sc.Title); t != "" {
		f.Title = t
	}
	if d := strings.TrimSpace(sc.Description); d != "" {
		f.Description = d
	}
	f.Fields = schema.CloneFields(sc.Fields)
	if f.Fields == nil {
		f.Fields = []schema.Field{}
	}
	f.UpdatedAt = time.Now().UTC()
	out := f.clone()
	s.mu.Unlock()
	s.persist()
	return out, nil
}

// Fields returns the ordered field list of a form.
func (s *Store) Fields(id string) ([]schema.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return schema.CloneFields(f.Fields), nil
}

// AddField appends a field to the form. The store assigns the id; any id in
// the input is ignored. Zero colSpan normalizes to full width.
func (s *Store) AddField(id string, fld schema.Field) (schema.Field, error) {
	if err := fld.Validate(); err != nil {
		return schema.Field{}, err
	}
	fld = fld.Clone()
	fld.ID = "fld-" + uuid.NewString()
	fld.ColSpan = schema.ClampColSpan(fld.ColSpan)

	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return schema.Field{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	f.Fields = append(f.Fields, fld)
	f.UpdatedAt = time.Now().UTC()
	out := fld.Clone()
	s.mu.Unlock()
	s.persist()
	return out, nil
}

// UpdateField applies a partial update to one field and returns the result.
func (s *Store) UpdateField(id, fieldID string, patch schema.FieldPatch) (schema.Field, error) {
	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return schema.Field{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	idx := -1
	for i := range f.Fields {
		if f.Fields[i].ID == fieldID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return schema.Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}
	// patch a clone so a rejected update leaves the stored field untouched
	patched := f.Fields[idx].Clone()
	patch.Apply(&patched)
	if err := patched.Validate(); err != nil {
		s.mu.Unlock()
		return schema.Field{}, err
	}
	f.Fields[idx] = patched
	f.UpdatedAt = time.Now().UTC()
	out := patched.Clone()
	s.mu.Unlock()
	s.persist()
	return out, nil
}

// RemoveField deletes one field from the form.
func (s *Store) RemoveField(id, fieldID string) error {
	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	kept := f.Fields[:0]
	removed := false
	for _, fld := range f.Fields {
		if fld.ID == fieldID {
			removed = true
			continue
		}
		kept = append(kept, fld)
	}
	if !removed {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}
	f.Fields = kept
	f.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	s.persist()
	return nil
}

// Reorder permutes the field sequence to match order. The id set must equal
// the existing field ids exactly, otherwise ErrOrderMismatch is returned and
// the stored sequence is left unchanged.
func (s *Store) Reorder(id string, order []string) ([]schema.Field, error) {
	s.mu.Lock()
	f, ok := s.forms[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(order) != len(f.Fields) {
		s.mu.Unlock()
		return nil, ErrOrderMismatch
	}
	byID := make(map[string]schema.Field, len(f.Fields))
	for _, fld := range f.Fields {
		byID[fld.ID] = fld
	}
	next := make([]schema.Field, 0, len(order))
	for _, fid := range order {
		fld, ok := byID[fid]
		if !ok {
			s.mu.Unlock()
			return nil, ErrOrderMismatch
		}
		delete(byID, fid)
		next = append(next, fld)
	}
	f.Fields = next
	f.UpdatedAt = time.Now().UTC()
	out := schema.CloneFields(next)
	s.mu.Unlock()
	s.persist()
	return out, nil
}

// CountFields returns the number of fields per form title, for the metrics
// gauge.
func (s *Store) CountFields() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(s.forms))
	for _, f := range s.forms {
		counts[f.Title] = len(f.Fields)
	}
	return counts
}
