package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/editor"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/models"
)

// SavedProjectsKey is the key the project list is persisted under.
const SavedProjectsKey = "SavedProjects"

// ErrNotFound is returned for an unknown project id.
var ErrNotFound = errors.New("project not found")

// PersistError wraps a failed write of the project list.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist projects: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Repository is the key-value storage the manager persists to.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ============================================================
// Events
// ============================================================

type EventKind string

const (
	EventCreated        EventKind = "created"
	EventUpdated        EventKind = "updated"
	EventDeleted        EventKind = "deleted"
	EventImported       EventKind = "imported"
	EventCurrentChanged EventKind = "current"
)

type Event struct {
	Kind      EventKind
	ProjectID string
}

// ============================================================
// Manager
// ============================================================

// Manager owns the saved project list, the current project and one editor
// session per opened project. It is created once and passed to whoever
// needs it.
type Manager struct {
	mu        sync.Mutex
	repo      Repository
	opts      export.Options
	projects  []models.Project
	sessions  map[string]*editor.Session
	current   string
	listeners []func(Event)
}

// NewManager loads the saved list from repo. A missing or unreadable list
// starts the manager empty.
func NewManager(ctx context.Context, repo Repository, opts export.Options) *Manager {
	m := &Manager{
		repo:     repo,
		opts:     opts,
		projects: []models.Project{},
		sessions: make(map[string]*editor.Session),
	}

	data, ok, err := repo.Get(ctx, SavedProjectsKey)
	switch {
	case err != nil:
		log.Printf("[STORE] Load failed: %v", err)
	case !ok:
		log.Printf("[STORE] No saved projects")
	default:
		projects, err := codec.DecodeProjects(data)
		if err != nil {
			log.Printf("[STORE] Saved projects unreadable, starting empty: %v", err)
			break
		}
		m.projects = projects
		log.Printf("[STORE] Loaded %d projects", len(projects))
	}

	return m
}

// Subscribe registers fn for list and current-project changes.
func (m *Manager) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) emit(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}

// Projects returns copies of the saved projects in list order.
func (m *Manager) Projects() []models.Project {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p.Clone())
	}
	return out
}

func (m *Manager) Project(id string) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Project{}, ErrNotFound
	}
	return m.projects[i].Clone(), nil
}

func (m *Manager) indexOf(id string) int {
	for i := range m.projects {
		if m.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateProject appends a new empty project and makes it current.
func (m *Manager) CreateProject(ctx context.Context, name string) models.Project {
	p := models.NewProject(name)

	m.mu.Lock()
	m.projects = append(m.projects, *p)
	m.current = p.ID
	m.save(ctx)
	listeners := append([]func(Event){}, m.listeners...)
	m.mu.Unlock()

	log.Printf("[STORE] Project created: %s (%s)", p.Name, p.ID)
	m.emit(listeners, Event{Kind: EventCreated, ProjectID: p.ID})
	return p.Clone()
}

// DeleteProject removes the project and clears the current reference when
// it pointed at it.
func (m *Manager) DeleteProject(ctx context.Context, id string) error {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.projects = append(m.projects[:i], m.projects[i+1:]...)
	delete(m.sessions, id)
	if m.current == id {
		m.current = ""
	}
	m.save(ctx)
	listeners := append([]func(Event){}, m.listeners...)
	m.mu.Unlock()

	log.Printf("[STORE] Project deleted: %s", id)
	m.emit(listeners, Event{Kind: EventDeleted, ProjectID: id})
	return nil
}

// UpdateProject replaces the saved copy of p.
func (m *Manager) UpdateProject(ctx context.Context, p models.Project) error {
	m.mu.Lock()
	i := m.indexOf(p.ID)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.projects[i] = p.Clone()
	m.save(ctx)
	listeners := append([]func(Event){}, m.listeners...)
	m.mu.Unlock()

	m.emit(listeners, Event{Kind: EventUpdated, ProjectID: p.ID})
	return nil
}

// Current returns the current project. ok is false when none is set.
func (m *Manager) Current() (models.Project, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(m.current)
	if m.current == "" || i < 0 {
		return models.Project{}, false
	}
	return m.projects[i].Clone(), true
}

func (m *Manager) SetCurrent(id string) error {
	m.mu.Lock()
	if m.indexOf(id) < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.current = id
	listeners := append([]func(Event){}, m.listeners...)
	m.mu.Unlock()

	m.emit(listeners, Event{Kind: EventCurrentChanged, ProjectID: id})
	return nil
}

// Session returns the editor session for a saved project, opening it on
// first use. Edits made through the session are saved back to the list.
func (m *Manager) Session(id string) (*editor.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	s, err := editor.NewSession(m.projects[i], m.opts)
	if err != nil {
		return nil, err
	}
	var (
		seqMu   sync.Mutex
		lastSeq uint64
	)
	s.Subscribe(func(ev editor.Event) {
		seqMu.Lock()
		defer seqMu.Unlock()
		if ev.Seq <= lastSeq {
			return
		}
		lastSeq = ev.Seq
		if err := m.UpdateProject(context.Background(), ev.Project); err != nil {
			log.Printf("[STORE] Session change for %s not saved: %v", ev.Project.ID, err)
		}
	})
	m.sessions[id] = s
	return s, nil
}

// ImportProject decodes data. A project whose id is already saved replaces
// the live plan of that project; otherwise it is appended. The imported
// project becomes current.
func (m *Manager) ImportProject(ctx context.Context, data []byte) (models.Project, error) {
	p, err := codec.DecodeJSON(data)
	if err != nil {
		return models.Project{}, err
	}

	m.mu.Lock()
	exists := m.indexOf(p.ID) >= 0
	if !exists {
		m.projects = append(m.projects, p.Clone())
		m.save(ctx)
	}
	m.mu.Unlock()

	if exists {
		s, err := m.Session(p.ID)
		if err != nil {
			return models.Project{}, err
		}
		if p, err = s.Replace(p); err != nil {
			return models.Project{}, err
		}
	}

	m.mu.Lock()
	m.current = p.ID
	listeners := append([]func(Event){}, m.listeners...)
	m.mu.Unlock()

	log.Printf("[STORE] Project imported: %s (%s)", p.Name, p.ID)
	m.emit(listeners, Event{Kind: EventImported, ProjectID: p.ID})
	return p, nil
}

// save writes the list. Failures are logged and not retried. Callers hold mu.
func (m *Manager) save(ctx context.Context) {
	if err := m.persist(ctx); err != nil {
		log.Printf("[STORE] %v", err)
	}
}

func (m *Manager) persist(ctx context.Context) error {
	data, err := codec.EncodeProjects(m.projects)
	if err != nil {
		return &PersistError{Err: err}
	}
	if err := m.repo.Set(ctx, SavedProjectsKey, data); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}
