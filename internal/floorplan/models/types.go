package models

import "time"

// ============================================================
// Floor Plan Entities
// ============================================================

// Project is a named floor plan document. It exclusively owns its rooms,
// doors and windows.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
	Rooms        []Room    `json:"rooms"`
	Doors        []Door    `json:"doors"`
	Windows      []Window  `json:"windows"`
}

// Room is an axis-aligned rectangle. (X, Z) is the top-left corner in feet,
// Width runs along x and Length along z.
type Room struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

// Door is centered at (X, Z). ConnectsRooms holds zero, one or two room ids.
type Door struct {
	ID            string   `json:"id"`
	X             float64  `json:"x"`
	Z             float64  `json:"z"`
	Width         float64  `json:"width"`
	IsExterior    bool     `json:"isExterior"`
	Label         string   `json:"label,omitempty"`
	ConnectsRooms []string `json:"connectsRooms"`
}

// Window is centered at (X, Z); FromFloor is the sill height.
type Window struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FromFloor float64 `json:"fromFloor"`
	RoomID    string  `json:"roomId,omitempty"`
}

// ============================================================
// Derived metrics
// ============================================================

func (r Room) Area() float64 {
	return r.Width * r.Length
}

func (r Room) Volume() float64 {
	return r.Width * r.Length * r.Height
}

func (r Room) Perimeter() float64 {
	return 2 * (r.Width + r.Length)
}

// Center returns the plan point in the middle of the room.
func (r Room) Center() (float64, float64) {
	return r.X + r.Width/2, r.Z + r.Length/2
}

// TotalArea sums the area of every room.
func (p *Project) TotalArea() float64 {
	var total float64
	for _, r := range p.Rooms {
		total += r.Area()
	}
	return total
}

// Extent returns the far corner of the plan (max x+width, max z+length).
// ok is false when the project has no rooms.
func (p *Project) Extent() (maxX, maxZ float64, ok bool) {
	for i, r := range p.Rooms {
		if i == 0 || r.X+r.Width > maxX {
			maxX = r.X + r.Width
		}
		if i == 0 || r.Z+r.Length > maxZ {
			maxZ = r.Z + r.Length
		}
	}
	return maxX, maxZ, len(p.Rooms) > 0
}

// Clone returns a deep copy that shares no slices with p.
func (p *Project) Clone() Project {
	out := *p
	out.Rooms = append([]Room{}, p.Rooms...)
	out.Doors = make([]Door, len(p.Doors))
	for i, d := range p.Doors {
		d.ConnectsRooms = append([]string{}, d.ConnectsRooms...)
		out.Doors[i] = d
	}
	out.Windows = append([]Window{}, p.Windows...)
	return out
}
