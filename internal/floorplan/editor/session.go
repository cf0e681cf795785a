package editor

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"floorplan/internal/floorplan/capture"
	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/history"
	"floorplan/internal/floorplan/models"
)

// ErrNotFound is returned when an edit targets an id the plan does not hold.
var ErrNotFound = errors.New("entity not found")

// ============================================================
// Events
// ============================================================

type EventKind string

const (
	EventEdited   EventKind = "edited"
	EventUndo     EventKind = "undo"
	EventRedo     EventKind = "redo"
	EventReset    EventKind = "reset"
	EventImported EventKind = "imported"
	EventScanned  EventKind = "scanned"
)

// Event carries the plan as it is after a change. Seq increases by one
// with every committed change, so a listener can drop an event that
// arrives after a newer one.
type Event struct {
	Kind    EventKind
	Seq     uint64
	Project models.Project
}

// ============================================================
// Session
// ============================================================

// Session owns one live plan and its undo history. All methods are safe
// for concurrent use; edits are applied one at a time.
type Session struct {
	mu        sync.Mutex
	project   models.Project
	history   *history.History
	opts      export.Options
	listeners map[int]func(Event)
	nextID    int
	seq       uint64
}

// NewSession starts editing p with a history holding only p.
func NewSession(p models.Project, opts export.Options) (*Session, error) {
	snap, err := codec.EncodeJSON(p)
	if err != nil {
		return nil, fmt.Errorf("snapshot project: %w", err)
	}
	return &Session{
		project:   p.Clone(),
		history:   history.New(snap),
		opts:      opts,
		listeners: make(map[int]func(Event)),
	}, nil
}

// Subscribe registers fn for every change and returns a function that
// removes it. Listeners run after the session lock is released.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Project returns a copy of the live plan.
func (s *Session) Project() models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// apply runs fn on a working copy and commits it with a new history entry.
// Nothing changes when fn fails.
func (s *Session) apply(kind EventKind, fn func(p *models.Project) error) (models.Project, error) {
	s.mu.Lock()

	next := s.project.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return models.Project{}, err
	}
	snap, err := codec.EncodeJSON(next)
	if err != nil {
		s.mu.Unlock()
		return models.Project{}, fmt.Errorf("snapshot project: %w", err)
	}

	s.project = next
	if kind == EventReset {
		s.history.Reset(snap)
	} else {
		s.history.Record(snap)
	}

	out := s.project.Clone()
	s.seq++
	ev := Event{Kind: kind, Seq: s.seq, Project: out}
	listeners := s.collectListeners()
	s.mu.Unlock()

	notify(listeners, ev)
	return out, nil
}

func (s *Session) collectListeners() []func(Event) {
	out := make([]func(Event), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(Event{Kind: ev.Kind, Seq: ev.Seq, Project: ev.Project.Clone()})
	}
}

// ============================================================
// Rooms
// ============================================================

// AddRoom validates d and appends it as a new room. A draft without a
// color takes the palette color for its position in the plan.
func (s *Session) AddRoom(d models.RoomDraft) (models.Room, error) {
	if err := d.Validate(); err != nil {
		return models.Room{}, err
	}

	var room models.Room
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if d.Color == "" {
			d.Color = models.ColorFor(len(p.Rooms))
		}
		room = d.Room(models.NewID())
		p.AddRoom(room)
		return nil
	})
	if err != nil {
		return models.Room{}, err
	}
	log.Printf("[EDITOR] Room added: %s (%s)", room.Name, room.ID)
	return room, nil
}

// UpdateRoom replaces the room's fields with d. A draft without a color
// keeps the room's current color.
func (s *Session) UpdateRoom(id string, d models.RoomDraft) (models.Room, error) {
	if err := d.Validate(); err != nil {
		return models.Room{}, err
	}

	var room models.Room
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		current, ok := p.FindRoom(id)
		if !ok {
			return fmt.Errorf("room %s: %w", id, ErrNotFound)
		}
		if d.Color == "" {
			d.Color = current.Color
		}
		room = d.Room(id)
		if !p.UpdateRoom(room) {
			return fmt.Errorf("room %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (s *Session) DeleteRoom(id string) error {
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if p.DeleteRoom(id) == 0 {
			return fmt.Errorf("room %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err == nil {
		log.Printf("[EDITOR] Room deleted: %s", id)
	}
	return err
}

// ============================================================
// Doors
// ============================================================

func (s *Session) AddDoor(d models.DoorDraft) (models.Door, error) {
	if err := d.Validate(); err != nil {
		return models.Door{}, err
	}

	door := d.Door(models.NewID())
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		p.AddDoor(door)
		return nil
	})
	if err != nil {
		return models.Door{}, err
	}
	return door, nil
}

func (s *Session) UpdateDoor(id string, d models.DoorDraft) (models.Door, error) {
	if err := d.Validate(); err != nil {
		return models.Door{}, err
	}

	door := d.Door(id)
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if !p.UpdateDoor(door) {
			return fmt.Errorf("door %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return models.Door{}, err
	}
	return door, nil
}

func (s *Session) DeleteDoor(id string) error {
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if p.DeleteDoor(id) == 0 {
			return fmt.Errorf("door %s: %w", id, ErrNotFound)
		}
		return nil
	})
	return err
}

// ============================================================
// Windows
// ============================================================

func (s *Session) AddWindow(d models.WindowDraft) (models.Window, error) {
	if err := d.Validate(); err != nil {
		return models.Window{}, err
	}

	window := d.Window(models.NewID())
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		p.AddWindow(window)
		return nil
	})
	if err != nil {
		return models.Window{}, err
	}
	return window, nil
}

func (s *Session) UpdateWindow(id string, d models.WindowDraft) (models.Window, error) {
	if err := d.Validate(); err != nil {
		return models.Window{}, err
	}

	window := d.Window(id)
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if !p.UpdateWindow(window) {
			return fmt.Errorf("window %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return models.Window{}, err
	}
	return window, nil
}

func (s *Session) DeleteWindow(id string) error {
	_, err := s.apply(EventEdited, func(p *models.Project) error {
		if p.DeleteWindow(id) == 0 {
			return fmt.Errorf("window %s: %w", id, ErrNotFound)
		}
		return nil
	})
	return err
}

// ============================================================
// History
// ============================================================

// Undo restores the previous snapshot. ok is false at the oldest entry.
func (s *Session) Undo() (models.Project, bool, error) {
	return s.restore(EventUndo, s.history.Undo)
}

// Redo restores the next snapshot. ok is false at the newest entry.
func (s *Session) Redo() (models.Project, bool, error) {
	return s.restore(EventRedo, s.history.Redo)
}

func (s *Session) restore(kind EventKind, step func() ([]byte, bool)) (models.Project, bool, error) {
	s.mu.Lock()

	snap, ok := step()
	if !ok {
		out := s.project.Clone()
		s.mu.Unlock()
		return out, false, nil
	}
	p, err := codec.DecodeJSON(snap)
	if err != nil {
		s.mu.Unlock()
		return models.Project{}, false, fmt.Errorf("restore snapshot: %w", err)
	}
	s.project = p

	out := s.project.Clone()
	s.seq++
	ev := Event{Kind: kind, Seq: s.seq, Project: out}
	listeners := s.collectListeners()
	s.mu.Unlock()

	notify(listeners, ev)
	return out, true, nil
}

// Reset replaces the plan with an empty one named name and clears the
// history. The project id is kept.
func (s *Session) Reset(name string) (models.Project, error) {
	return s.apply(EventReset, func(p *models.Project) error {
		fresh := models.NewProject(name)
		fresh.ID = p.ID
		*p = *fresh
		return nil
	})
}

// ============================================================
// Import / scans
// ============================================================

// Import decodes data and makes it the live plan. On a decode error the
// plan is left unchanged.
func (s *Session) Import(data []byte) (models.Project, error) {
	p, err := codec.DecodeJSON(data)
	if err != nil {
		return models.Project{}, err
	}
	return s.Replace(p)
}

// Replace makes p the live plan and records it in the history.
func (s *Session) Replace(p models.Project) (models.Project, error) {
	out, err := s.apply(EventImported, func(cur *models.Project) error {
		*cur = p.Clone()
		return nil
	})
	if err == nil {
		log.Printf("[EDITOR] Plan replaced: %s (%d rooms)", out.Name, len(out.Rooms))
	}
	return out, err
}

// ApplyScan places a converted capture to the right of the existing rooms
// and moves its doors and windows along with it.
func (s *Session) ApplyScan(res capture.Result) (models.Room, error) {
	var room models.Room
	_, err := s.apply(EventScanned, func(p *models.Project) error {
		room = res.Room
		room.ID = models.NewID()
		room.X, room.Z = capture.NextPlacement(p.Rooms)
		room.Color = models.ColorFor(len(p.Rooms))

		dx := room.X - res.Origin.X()
		dz := room.Z - res.Origin.Y()

		p.AddRoom(room)
		for _, d := range res.Doors {
			d.ID = models.NewID()
			d.X += dx
			d.Z += dz
			d.ConnectsRooms = []string{room.ID}
			p.AddDoor(d)
		}
		for _, w := range res.Windows {
			w.ID = models.NewID()
			w.X += dx
			w.Z += dz
			w.RoomID = room.ID
			p.AddWindow(w)
		}
		return nil
	})
	if err != nil {
		return models.Room{}, err
	}
	log.Printf("[CAPTURE] Room placed: %s %gx%g at (%g, %g)", room.Name, room.Width, room.Length, room.X, room.Z)
	return room, nil
}

// ============================================================
// Export
// ============================================================

// Export encodes the live plan in format f.
func (s *Session) Export(f export.Format) ([]byte, error) {
	p := s.Project()
	data, err := export.Encode(f, p, s.opts)
	if err != nil {
		log.Printf("[EXPORT] %s failed for %s: %v", f, p.Name, err)
		return nil, err
	}
	return data, nil
}

// ExportResult is delivered once by ExportAsync.
type ExportResult struct {
	Format   export.Format
	FileName string
	Data     []byte
	Err      error
}

// ExportAsync copies the plan now and encodes it in the background.
// Edits made after the call do not affect the result.
func (s *Session) ExportAsync(f export.Format) <-chan ExportResult {
	p := s.Project()
	out := make(chan ExportResult, 1)

	go func() {
		defer close(out)
		data, err := export.Encode(f, p, s.opts)
		if err != nil {
			log.Printf("[EXPORT] %s failed for %s: %v", f, p.Name, err)
		}
		out <- ExportResult{
			Format:   f,
			FileName: export.FileName(p.Name, f),
			Data:     data,
			Err:      err,
		}
	}()

	return out
}
