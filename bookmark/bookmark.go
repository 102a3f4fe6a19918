// Package bookmark stores saved searches and supports portable
// export/import of the whole collection.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound indicates an unknown bookmark ID.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is one saved search: a name plus the filter JSON and column
// selection that reproduce it.
type Bookmark struct {
	ID        uuid.UUID       `json:"id" msgpack:"id"`
	Name      string          `json:"name" msgpack:"name"`
	Filters   json.RawMessage `json:"filters,omitempty" msgpack:"filters,omitempty"`
	Columns   []string        `json:"columns,omitempty" msgpack:"columns,omitempty"`
	CreatedAt time.Time       `json:"created_at" msgpack:"created_at"`
}

// Store is a goroutine-safe in-memory bookmark collection, ordered by
// creation.
type Store struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Bookmark
	order []uuid.UUID
}

// NewStore creates an empty bookmark store.
func NewStore() *Store {
	return &Store{items: make(map[uuid.UUID]Bookmark)}
}

// Add stores a new bookmark and returns it with ID and creation time set.
func (s *Store) Add(name string, filters json.RawMessage, columns []string) Bookmark {
	b := Bookmark{
		ID:        uuid.New(),
		Name:      name,
		Filters:   filters,
		Columns:   columns,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[b.ID] = b
	s.order = append(s.order, b.ID)
	return b
}

// Get returns the bookmark with the given ID.
func (s *Store) Get(id uuid.UUID) (Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.items[id]
	if !ok {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// List returns all bookmarks in creation order.
func (s *Store) List() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Bookmark, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Delete removes the bookmark with the given ID.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Export writes the whole collection to w as zstd-compressed MessagePack.
func (s *Store) Export(w io.Writer) error {
	data, err := msgpack.Marshal(s.List())
	if err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("failed to write bookmarks: %w", err)
	}
	return zw.Close()
}

// Import merges an exported collection from r into the store. Bookmarks
// whose ID already exists are overwritten. Returns the number of
// bookmarks read.
func (s *Store) Import(r io.Reader) (int, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return 0, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	var imported []Bookmark
	if err := msgpack.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("failed to decode bookmarks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range imported {
		if _, exists := s.items[b.ID]; !exists {
			s.order = append(s.order, b.ID)
		}
		s.items[b.ID] = b
	}
	return len(imported), nil
}
