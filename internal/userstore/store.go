package userstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User is a minimal directory entry, enough for assignment pickers.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store keeps users in memory, seeded with demo entries.
type Store struct {
	mu    sync.RWMutex
	users map[string]User
}

// New returns a store preloaded with the demo users.
func New() *Store {
	s := &Store{users: make(map[string]User)}
	s.users["u-1"] = User{ID: "u-1", Name: "Alice", Email: "alice@example.com"}
	s.users["u-2"] = User{ID: "u-2", Name: "Bob", Email: "bob@example.com"}
	return s
}

// List returns all users sorted by id.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create adds a user. A blank name becomes "No Name".
func (s *Store) Create(name, email string) User {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "No Name"
	}
	u := User{ID: "u-" + uuid.NewString(), Name: name, Email: strings.TrimSpace(email)}
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return u
}
