package models

import (
	"time"

	"github.com/google/uuid"
)

// now is the clock used for creation and modification timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// NewProject creates an empty project stamped with the current time.
func NewProject(name string) *Project {
	ts := now()
	return &Project{
		ID:           NewID(),
		Name:         name,
		DateCreated:  ts,
		DateModified: ts,
		Rooms:        []Room{},
		Doors:        []Door{},
		Windows:      []Window{},
	}
}

// touch moves DateModified strictly forward, even when the clock has not
// advanced since the previous mutation.
func (p *Project) touch() {
	ts := now()
	if !ts.After(p.DateModified) {
		ts = p.DateModified.Add(time.Nanosecond)
	}
	p.DateModified = ts
}

// ============================================================
// Rooms
// ============================================================

// AddRoom appends room. Ids are not checked for collisions.
func (p *Project) AddRoom(room Room) {
	p.Rooms = append(p.Rooms, room)
	p.touch()
}

// UpdateRoom replaces the first room with a matching id in place.
// It reports false and leaves the project untouched when none matches.
func (p *Project) UpdateRoom(room Room) bool {
	for i := range p.Rooms {
		if p.Rooms[i].ID == room.ID {
			p.Rooms[i] = room
			p.touch()
			return true
		}
	}
	return false
}

// DeleteRoom removes every room with the given id and reports how many
// were removed. The modification time is updated either way.
func (p *Project) DeleteRoom(id string) int {
	kept := p.Rooms[:0]
	removed := 0
	for _, r := range p.Rooms {
		if r.ID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	p.Rooms = kept
	p.touch()
	return removed
}

// FindRoom returns the first room with the given id.
func (p *Project) FindRoom(id string) (Room, bool) {
	for _, r := range p.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// ============================================================
// Doors
// ============================================================

func (p *Project) AddDoor(door Door) {
	p.Doors = append(p.Doors, door)
	p.touch()
}

func (p *Project) UpdateDoor(door Door) bool {
	for i := range p.Doors {
		if p.Doors[i].ID == door.ID {
			p.Doors[i] = door
			p.touch()
			return true
		}
	}
	return false
}

func (p *Project) DeleteDoor(id string) int {
	kept := p.Doors[:0]
	removed := 0
	for _, d := range p.Doors {
		if d.ID == id {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	p.Doors = kept
	p.touch()
	return removed
}

// ============================================================
// Windows
// ============================================================

func (p *Project) AddWindow(window Window) {
	p.Windows = append(p.Windows, window)
	p.touch()
}

func (p *Project) UpdateWindow(window Window) bool {
	for i := range p.Windows {
		if p.Windows[i].ID == window.ID {
			p.Windows[i] = window
			p.touch()
			return true
		}
	}
	return false
}

func (p *Project) DeleteWindow(id string) int {
	kept := p.Windows[:0]
	removed := 0
	for _, w := range p.Windows {
		if w.ID == id {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	p.Windows = kept
	p.touch()
	return removed
}
