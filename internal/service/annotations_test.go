package service

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

func newTestAnnotations(t *testing.T) (*AnnotationService, *store.LocalStore) {
	t.Helper()
	kv, err := store.NewLocalStore(filepath.Join(t.TempDir(), "reel.db"))
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return NewAnnotationService(kv, discardLogger()), kv
}

func movie(id int) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          id,
		Title:       "Movie " + strconv.Itoa(id),
		Kind:        domain.KindMovie,
		ReleaseYear: "2021",
		PosterPath:  "/p" + strconv.Itoa(id) + ".jpg",
		Overview:    "long text that is not persisted",
		VoteAverage: 7.5,
		GenreIDs:    []int{28},
	}
}

func persistedKeys(t *testing.T, kv *store.LocalStore, c Collection) []string {
	t.Helper()
	raw, ok, err := kv.Get(c.Key())
	if err != nil {
		t.Fatalf("Get(%s): %v", c.Key(), err)
	}
	if !ok {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("persisted %s is not a JSON object: %v", c, err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestToggleParity(t *testing.T) {
	s, kv := newTestAnnotations(t)

	toggles := map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}
	for id, n := range toggles {
		for i := 0; i < n; i++ {
			member, err := s.Toggle(Favorites, movie(id))
			if err != nil {
				t.Fatalf("Toggle(%d): %v", id, err)
			}
			if want := i%2 == 0; member != want {
				t.Fatalf("Toggle(%d) call %d = %v, want %v", id, i+1, member, want)
			}
		}
	}

	var want []string
	for id, n := range toggles {
		if got := s.Has(Favorites, id); got != (n%2 == 1) {
			t.Errorf("Has(%d) = %v after %d toggles", id, got, n)
		}
		if n%2 == 1 {
			want = append(want, strconv.Itoa(id))
		}
	}
	sort.Strings(want)

	got := persistedKeys(t, kv, Favorites)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("persisted keys = %v, want %v", got, want)
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	s, _ := newTestAnnotations(t)

	if _, err := s.Toggle(Favorites, movie(1)); err != nil {
		t.Fatal(err)
	}
	if s.Has(Watched, 1) {
		t.Error("favorite leaked into watched")
	}
	if _, err := s.Toggle(Watched, movie(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Toggle(Favorites, movie(1)); err != nil {
		t.Fatal(err)
	}
	if s.Has(Favorites, 1) || !s.Has(Watched, 1) {
		t.Errorf("Has(favorites)=%v Has(watched)=%v", s.Has(Favorites, 1), s.Has(Watched, 1))
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s, kv := newTestAnnotations(t)

	for _, id := range []int{30, 4, 200, 17} {
		if _, err := s.Toggle(Watched, movie(id)); err != nil {
			t.Fatal(err)
		}
	}
	// Remove one from the middle and re-add it at the end
	s.Toggle(Watched, movie(4))
	s.Toggle(Watched, movie(4))

	// A fresh service over the same store sees the persisted order
	reloaded := NewAnnotationService(kv, discardLogger())
	items, err := reloaded.List(Watched)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var ids []int
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	want := []int{30, 200, 17, 4}
	if len(ids) != len(want) {
		t.Fatalf("List ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("List ids = %v, want %v", ids, want)
		}
	}

	raw, _, _ := kv.Get(Watched.Key())
	if !strings.HasPrefix(raw, `{"30":`) {
		t.Errorf("persisted encoding = %s, want insertion order", raw)
	}
}

func TestToggleStoresProjection(t *testing.T) {
	s, _ := newTestAnnotations(t)

	if _, err := s.Toggle(Favorites, movie(9)); err != nil {
		t.Fatal(err)
	}
	items, _ := s.List(Favorites)
	if len(items) != 1 {
		t.Fatalf("List = %v", items)
	}
	got := items[0]
	if got.Overview != "" || got.GenreIDs != nil {
		t.Errorf("stored extended fields: %+v", got)
	}
	if got.Title != "Movie 9" || got.Kind != domain.KindMovie || got.PosterPath != "/p9.jpg" ||
		got.ReleaseYear != "2021" || got.VoteAverage != 7.5 {
		t.Errorf("stored projection = %+v", got)
	}
}

func TestSetNoteBlankRemoves(t *testing.T) {
	s, kv := newTestAnnotations(t)

	if err := s.SetNote(42, "rewatch with friends"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	if !s.Has(Notes, 42) || s.Note(42) != "rewatch with friends" {
		t.Fatalf("Note = %q", s.Note(42))
	}

	for _, blank := range []string{"", "   ", "\n\t"} {
		s.SetNote(42, "something")
		if err := s.SetNote(42, blank); err != nil {
			t.Fatalf("SetNote(%q): %v", blank, err)
		}
		if s.Has(Notes, 42) || s.Note(42) != "" {
			t.Errorf("note survived SetNote(%q)", blank)
		}
	}

	if keys := persistedKeys(t, kv, Notes); len(keys) != 0 {
		t.Errorf("persisted notes = %v, want none", keys)
	}
}

func TestUnknownCollection(t *testing.T) {
	s, _ := newTestAnnotations(t)

	if _, err := s.Toggle(Notes, movie(1)); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Errorf("Toggle(notes) error = %v", err)
	}
	if _, err := s.List(Collection("queue")); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Errorf("List(queue) error = %v", err)
	}
	if _, err := ParseCollection("bogus"); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Errorf("ParseCollection error = %v", err)
	}
	if c, err := ParseCollection(" Watched "); err != nil || c != Watched {
		t.Errorf("ParseCollection = %q, %v", c, err)
	}
}

func TestCorruptCollectionIsRewritten(t *testing.T) {
	s, kv := newTestAnnotations(t)
	kv.Set(Favorites.Key(), `{"1": not json`)

	if s.Has(Favorites, 1) {
		t.Error("corrupt entry reported as present")
	}
	if _, err := s.Toggle(Favorites, movie(2)); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if keys := persistedKeys(t, kv, Favorites); len(keys) != 1 || keys[0] != "2" {
		t.Errorf("persisted keys = %v", keys)
	}
}

func TestNoteIDs(t *testing.T) {
	s, _ := newTestAnnotations(t)
	s.SetNote(5, "a")
	s.SetNote(3, "b")
	s.SetNote(5, "c")

	ids, err := s.NoteIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 3 {
		t.Errorf("NoteIDs = %v, want [5 3]", ids)
	}
}

func TestIDs(t *testing.T) {
	s, _ := newTestAnnotations(t)
	s.Toggle(Favorites, movie(1))
	s.Toggle(Favorites, movie(2))
	s.Toggle(Watched, movie(3))
	s.Toggle(Favorites, movie(1))

	favorites := s.IDs(Favorites)
	if len(favorites) != 1 || !favorites[2] {
		t.Errorf("favorites = %v, want {2}", favorites)
	}
	if watched := s.IDs(Watched); len(watched) != 1 || !watched[3] {
		t.Errorf("watched = %v, want {3}", watched)
	}
	if notes := s.IDs(Notes); len(notes) != 0 {
		t.Errorf("notes = %v, want an empty set", notes)
	}
}
