package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// Collection names one of the three annotation collections
type Collection string

const (
	Favorites Collection = "favorites"
	Watched   Collection = "watched"
	Notes     Collection = "notes"
)

// keyPrefix namespaces annotation keys in the local store
const keyPrefix = "reel_"

// Key returns the store key holding the collection
func (c Collection) Key() string {
	return keyPrefix + string(c)
}

// ParseCollection parses a collection name
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(strings.ToLower(strings.TrimSpace(s))); c {
	case Favorites, Watched, Notes:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCollection, s)
	}
}

// CollectionFor returns the collection backing a local view
func CollectionFor(view domain.ViewKind) (Collection, bool) {
	switch view {
	case domain.ViewFavorites:
		return Favorites, true
	case domain.ViewWatched:
		return Watched, true
	default:
		return "", false
	}
}

// AnnotationService keeps favorites, watched and notes in the local store.
// Every mutation reads the whole collection, changes it and writes it back
// before returning, so nothing is lost if the process dies afterwards.
type AnnotationService struct {
	store  domain.KeyValueStore
	logger *slog.Logger
	mu     sync.Mutex
}

// NewAnnotationService creates a new annotation service
func NewAnnotationService(store domain.KeyValueStore, logger *slog.Logger) *AnnotationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationService{
		store:  store,
		logger: logger,
	}
}

// Has reports membership of id in the collection
func (s *AnnotationService) Has(c Collection, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.Itoa(id)
	switch c {
	case Favorites, Watched:
		items, err := s.loadItems(c)
		if err != nil {
			s.logger.Warn("failed to read annotations", "collection", c, "error", err)
			return false
		}
		_, ok := items.Get(key)
		return ok
	case Notes:
		notes, err := s.loadNotes()
		if err != nil {
			s.logger.Warn("failed to read annotations", "collection", c, "error", err)
			return false
		}
		_, ok := notes.Get(key)
		return ok
	default:
		return false
	}
}

// Toggle flips membership of item in favorites or watched and returns the new state.
// Removal deletes the entry; insertion stores the trimmed projection.
func (s *AnnotationService) Toggle(c Collection, item domain.CatalogItem) (bool, error) {
	if c != Favorites && c != Watched {
		return false, fmt.Errorf("%w: %q cannot be toggled", domain.ErrUnknownCollection, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadItems(c)
	if err != nil {
		return false, err
	}

	key := strconv.Itoa(item.ID)
	_, present := items.Get(key)
	if present {
		items.Delete(key)
	} else {
		items.Set(key, item.Projection())
	}

	if err := s.save(c, items); err != nil {
		return present, err
	}

	s.logger.Debug("annotation toggled", "collection", c, "id", item.ID, "member", !present)
	return !present, nil
}

// SetNote stores text for id; blank text removes the note
func (s *AnnotationService) SetNote(id int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadNotes()
	if err != nil {
		return err
	}

	key := strconv.Itoa(id)
	if strings.TrimSpace(text) == "" {
		notes.Delete(key)
	} else {
		notes.Set(key, text)
	}
	return s.save(Notes, notes)
}

// Note returns the stored note for id, or ""
func (s *AnnotationService) Note(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadNotes()
	if err != nil {
		s.logger.Warn("failed to read notes", "error", err)
		return ""
	}
	note, _ := notes.Get(strconv.Itoa(id))
	return note
}

// List returns the items of favorites or watched in insertion order
func (s *AnnotationService) List(c Collection) ([]domain.CatalogItem, error) {
	if c != Favorites && c != Watched {
		return nil, fmt.Errorf("%w: %q is not an item list", domain.ErrUnknownCollection, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadItems(c)
	if err != nil {
		return nil, err
	}
	return items.Values(), nil
}

// IDs returns the set of ids in favorites or watched. Unreadable collections
// give an empty set.
func (s *AnnotationService) IDs(c Collection) map[int]bool {
	ids := make(map[int]bool)
	if c != Favorites && c != Watched {
		return ids
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadItems(c)
	if err != nil {
		s.logger.Warn("failed to read annotations", "collection", c, "error", err)
		return ids
	}
	for _, k := range items.Keys() {
		if id, err := strconv.Atoi(k); err == nil {
			ids[id] = true
		}
	}
	return ids
}

// NoteIDs returns the ids that carry a note, in insertion order
func (s *AnnotationService) NoteIDs() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadNotes()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, notes.Len())
	for _, k := range notes.Keys() {
		if id, err := strconv.Atoi(k); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *AnnotationService) loadItems(c Collection) (*orderedMap[domain.CatalogItem], error) {
	return loadCollection[domain.CatalogItem](s, c)
}

func (s *AnnotationService) loadNotes() (*orderedMap[string], error) {
	return loadCollection[string](s, Notes)
}

// loadCollection decodes a collection. A missing key is an empty collection;
// an undecodable value is logged and treated as empty so it gets rewritten.
func loadCollection[V any](s *AnnotationService, c Collection) (*orderedMap[V], error) {
	raw, ok, err := s.store.Get(c.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	m := newOrderedMap[V]()
	if !ok || raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), m); err != nil {
		s.logger.Warn("discarding corrupt annotation collection", "collection", c, "error", err)
		return newOrderedMap[V](), nil
	}
	return m, nil
}

func (s *AnnotationService) save(c Collection, v json.Marshaler) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}
	if err := s.store.Set(c.Key(), string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	return nil
}
