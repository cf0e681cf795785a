package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/models"
	"floorplan/internal/floorplan/repository"
)

type memRepo struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
	fail   error
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string][]byte)}
}

func (r *memRepo) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *memRepo) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.writes++
	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *memRepo) saved(t *testing.T) []models.Project {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	list, err := codec.DecodeProjects(r.data[SavedProjectsKey])
	if err != nil {
		t.Fatalf("saved list unreadable: %v", err)
	}
	return list
}

func TestManager_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	m := NewManager(ctx, repo, export.Options{})

	a := m.CreateProject(ctx, "First")
	b := m.CreateProject(ctx, "Second")

	if got := len(m.Projects()); got != 2 {
		t.Fatalf("Projects() = %d", got)
	}
	cur, ok := m.Current()
	if !ok || cur.ID != b.ID {
		t.Errorf("current = %v, want the last created project", cur.ID)
	}
	if got := repo.saved(t); len(got) != 2 || got[0].ID != a.ID {
		t.Errorf("saved list = %+v", got)
	}

	if err := m.DeleteProject(ctx, b.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Error("deleting the current project should clear it")
	}
	if _, err := m.Project(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Project after delete: %v", err)
	}
	if got := repo.saved(t); len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("saved list after delete = %+v", got)
	}

	if err := m.DeleteProject(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteProject(missing) = %v", err)
	}
}

func TestManager_DeleteOtherKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, newMemRepo(), export.Options{})

	a := m.CreateProject(ctx, "A")
	b := m.CreateProject(ctx, "B")
	if err := m.SetCurrent(a.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	m.DeleteProject(ctx, b.ID)

	if cur, ok := m.Current(); !ok || cur.ID != a.ID {
		t.Error("current project lost after deleting another one")
	}
}

func TestManager_SessionEditsArePersisted(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	m := NewManager(ctx, repo, export.Options{})
	p := m.CreateProject(ctx, "Test")

	s, err := m.Session(p.ID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if again, _ := m.Session(p.ID); again != s {
		t.Error("Session should return the same editor")
	}

	if _, err := s.AddRoom(models.RoomDraft{Name: "A", Width: 12, Length: 12, Height: 9}); err != nil {
		t.Fatalf("AddRoom: %v", err)
	}
	if _, err := s.AddRoom(models.RoomDraft{Name: "B", X: 14, Width: 14, Length: 10, Height: 9}); err != nil {
		t.Fatalf("AddRoom: %v", err)
	}

	got, _ := m.Project(p.ID)
	if got.TotalArea() != 284 {
		t.Errorf("manager copy total area = %v", got.TotalArea())
	}
	cur, _ := m.Current()
	if len(cur.Rooms) != 2 {
		t.Error("current project not kept in sync")
	}
	if saved := repo.saved(t); saved[0].TotalArea() != 284 {
		t.Errorf("persisted total area = %v", saved[0].TotalArea())
	}
}

func TestManager_ConcurrentSessionEditsKeepLatest(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	m := NewManager(ctx, repo, export.Options{})
	p := m.CreateProject(ctx, "Busy")

	s, err := m.Session(p.ID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddRoom(models.RoomDraft{Name: "R", Width: 5, Length: 5, Height: 9})
		}()
	}
	wg.Wait()

	if got, _ := m.Project(p.ID); len(got.Rooms) != 20 {
		t.Errorf("manager copy has %d rooms, want 20", len(got.Rooms))
	}
	if saved := repo.saved(t); len(saved[0].Rooms) != 20 {
		t.Errorf("persisted %d rooms, want 20", len(saved[0].Rooms))
	}
}

func TestManager_ReloadFromRepository(t *testing.T) {
	ctx := context.Background()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "floorplan.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	kv := repository.New(db)
	if err := kv.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	first := NewManager(ctx, kv, export.Options{})
	p := first.CreateProject(ctx, "Saved Plan")
	s, _ := first.Session(p.ID)
	s.AddRoom(models.RoomDraft{Name: "Den", Width: 10, Length: 11, Height: 8})

	second := NewManager(ctx, kv, export.Options{})
	list := second.Projects()
	if len(list) != 1 {
		t.Fatalf("reloaded %d projects", len(list))
	}
	want, _ := first.Project(p.ID)
	if !models.Equal(list[0], want) {
		t.Errorf("reloaded project differs:\n got %+v\nwant %+v", list[0], want)
	}
}

func TestManager_CorruptListStartsEmpty(t *testing.T) {
	repo := newMemRepo()
	repo.data[SavedProjectsKey] = []byte(`{not json`)

	m := NewManager(context.Background(), repo, export.Options{})
	if got := len(m.Projects()); got != 0 {
		t.Errorf("Projects() = %d, want 0", got)
	}
}

func TestManager_PersistFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.fail = errors.New("disk full")
	m := NewManager(ctx, repo, export.Options{})

	p := m.CreateProject(ctx, "Unsaved")
	if _, err := m.Project(p.ID); err != nil {
		t.Errorf("project should stay in memory: %v", err)
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d", repo.writes)
	}

	perr := &PersistError{Err: repo.fail}
	if !errors.Is(perr, repo.fail) {
		t.Error("PersistError should unwrap to the cause")
	}
}

func TestManager_Import(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, newMemRepo(), export.Options{})
	existing := m.CreateProject(ctx, "Existing")

	// Unknown id: appended and made current.
	fresh := models.NewProject("From Backup")
	fresh.AddRoom(models.Room{ID: "r", Name: "Hall", Width: 4, Length: 20, Height: 9, Color: "#e8f4f8"})
	data, _ := codec.EncodeJSON(*fresh)

	got, err := m.ImportProject(ctx, data)
	if err != nil {
		t.Fatalf("ImportProject: %v", err)
	}
	if !models.Equal(got, *fresh) {
		t.Error("imported project differs from the file")
	}
	if len(m.Projects()) != 2 {
		t.Errorf("Projects() = %d, want 2", len(m.Projects()))
	}
	if cur, _ := m.Current(); cur.ID != fresh.ID {
		t.Error("imported project should become current")
	}

	// Known id: replaces the saved plan and keeps undo available.
	replacement := existing
	replacement.Name = "Existing (restored)"
	replacement.Rooms = []models.Room{{ID: "k", Name: "Kitchen", Width: 10, Length: 10, Height: 9, Color: "#f8f4e8"}}
	data, _ = codec.EncodeJSON(replacement)

	if _, err := m.ImportProject(ctx, data); err != nil {
		t.Fatalf("ImportProject replace: %v", err)
	}
	saved, _ := m.Project(existing.ID)
	if saved.Name != "Existing (restored)" || len(saved.Rooms) != 1 {
		t.Errorf("saved project = %+v", saved)
	}
	s, _ := m.Session(existing.ID)
	if !s.CanUndo() {
		t.Error("replacing through import should be undoable")
	}
	if len(m.Projects()) != 2 {
		t.Error("replacing should not add a project")
	}

	if _, err := m.ImportProject(ctx, []byte(`[]`)); !errors.Is(err, codec.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestManager_ConcurrentImportOfNewID(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	m := NewManager(ctx, repo, export.Options{})

	p := models.NewProject("Shared")
	data, err := codec.EncodeJSON(*p)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.ImportProject(ctx, data); err != nil {
				t.Errorf("ImportProject: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(m.Projects()); got != 1 {
		t.Errorf("Projects() = %d, want 1", got)
	}
	if saved := repo.saved(t); len(saved) != 1 || saved[0].ID != p.ID {
		t.Errorf("saved list = %+v", saved)
	}
}

func TestManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, newMemRepo(), export.Options{})

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	p := m.CreateProject(ctx, "Watched")
	m.SetCurrent(p.ID)
	m.DeleteProject(ctx, p.ID)

	want := []EventKind{EventCreated, EventCurrentChanged, EventDeleted}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i, kind := range want {
		if events[i].Kind != kind || events[i].ProjectID != p.ID {
			t.Errorf("event %d = %+v, want %s", i, events[i], kind)
		}
	}
}
