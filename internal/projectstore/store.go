package projectstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the requested project id does not exist.
var ErrNotFound = errors.New("project not found")

// Project is one project record. Attributes carry the values captured by a
// rendered form, keyed by field name.
type Project struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Code        string         `json:"code,omitempty"`
	Description string         `json:"description,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

func (p Project) clone() Project {
	c := p
	if p.Attributes != nil {
		c.Attributes = make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// Store keeps projects in memory.
type Store struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

// New returns an empty project store.
func New() *Store {
	return &Store{projects: make(map[string]*Project)}
}

// List returns all projects sorted by name.
func (s *Store) List() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns one project by id.
func (s *Store) Get(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.clone(), nil
}

// Create adds a project. Name is required by the API layer.
func (s *Store) Create(name, code, description string, attrs map[string]any) Project {
	p := Project{
		ID:          "p-" + uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Code:        strings.TrimSpace(code),
		Description: strings.TrimSpace(description),
		UpdatedAt:   time.Now().UTC(),
		Attributes:  attrs,
	}
	// detach from the caller's map before storing
	p = p.clone()
	c := p.clone()
	s.mu.Lock()
	s.projects[p.ID] = &p
	s.mu.Unlock()
	return c
}

// Update merges the non-nil parts of the patch into the project.
func (s *Store) Update(id string, name, code, description *string, attrs map[string]any) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if name != nil {
		if n := strings.TrimSpace(*name); n != "" {
			p.Name = n
		}
	}
	if code != nil {
		p.Code = strings.TrimSpace(*code)
	}
	if description != nil {
		p.Description = strings.TrimSpace(*description)
	}
	if attrs != nil {
		if p.Attributes == nil {
			p.Attributes = make(map[string]any, len(attrs))
		}
		for k, v := range attrs {
			if v == nil {
				delete(p.Attributes, k)
				continue
			}
			p.Attributes[k] = v
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return p.clone(), nil
}

// Delete removes a project.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.projects, id)
	return nil
}
