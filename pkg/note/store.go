package note

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no note has the requested identifier.
var ErrNotFound = errors.New("note not found")

// Store is an in-memory, ordered note collection. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	notes    []*Note
	selected string

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides identifier allocation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithNotes seeds the store in the given order and selects the first note.
func WithNotes(notes ...Note) Option {
	return func(s *Store) {
		for _, n := range notes {
			c := n.clone()
			s.notes = append(s.notes, &c)
		}
		if len(s.notes) > 0 {
			s.selected = s.notes[0].ID
		}
	}
}

// NewStore creates a new Store
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates an empty note at the front of the list and selects it.
func (s *Store) Create() Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := &Note{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]*Note{n}, s.notes...)
	s.selected = n.ID
	return n.clone()
}

// Insert adds a fully formed note at the front of the list and selects it.
// A missing ID or timestamp is filled in.
func (s *Store) Insert(n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = s.newID()
	}
	if s.indexOf(n.ID) >= 0 {
		return Note{}, fmt.Errorf("note %s already exists", n.ID)
	}
	now := s.now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}

	c := n.clone()
	s.notes = append([]*Note{&c}, s.notes...)
	s.selected = c.ID
	return c.clone(), nil
}

// Update merges the patch into the note and bumps UpdatedAt. The timestamp
// never moves backwards, even if the clock does.
func (s *Store) Update(id string, p Patch) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	n := s.notes[i]
	p.apply(n)
	if now := s.now(); now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
	return n.clone(), nil
}

// Delete removes the note. If it was selected, the preceding note becomes
// selected (the new first note when the deleted one was first), or nothing
// when the store is empty.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)

	if s.selected == id {
		s.selected = ""
		if len(s.notes) > 0 {
			s.selected = s.notes[max(0, i-1)].ID
		}
	}
	return nil
}

// Select makes the note the active selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.selected = id
	return nil
}

// Selected returns the active note, if any.
func (s *Store) Selected() (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(s.selected)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i].clone(), true
}

// Get returns a copy of the note.
func (s *Store) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.notes[i].clone(), nil
}

// List returns copies of all notes in store order.
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.clone())
	}
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
