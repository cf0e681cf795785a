package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"floorplan/internal/floorplan/models"
)

// ============================================================
// Encoding
// ============================================================

// EncodeJSON writes p as pretty printed JSON with keys sorted at every level
// and ISO-8601 timestamps. The output is the canonical interchange format.
func EncodeJSON(p models.Project) ([]byte, error) {
	return canonical(normalize(p), "  ")
}

// EncodeProjects writes the persisted project list as one JSON array.
func EncodeProjects(projects []models.Project) ([]byte, error) {
	list := make([]models.Project, len(projects))
	for i, p := range projects {
		list[i] = normalize(p)
	}
	return canonical(list, "")
}

// normalize makes every collection encode as an array, never null.
func normalize(p models.Project) models.Project {
	return p.Clone()
}

// canonical marshals v, then re-encodes it through generic maps so object
// keys come out sorted. Numbers keep their exact text.
func canonical(v any, indent string) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("reparse: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ============================================================
// Decoding
// ============================================================

type projectDoc struct {
	ID           *string     `json:"id"`
	Name         *string     `json:"name"`
	DateCreated  *time.Time  `json:"dateCreated"`
	DateModified *time.Time  `json:"dateModified"`
	Rooms        *[]roomDoc  `json:"rooms"`
	Doors        []doorDoc   `json:"doors"`
	Windows      []windowDoc `json:"windows"`
}

type roomDoc struct {
	ID     *string `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

type doorDoc struct {
	ID            *string  `json:"id"`
	X             float64  `json:"x"`
	Z             float64  `json:"z"`
	Width         float64  `json:"width"`
	IsExterior    bool     `json:"isExterior"`
	Label         string   `json:"label"`
	ConnectsRooms []string `json:"connectsRooms"`
}

type windowDoc struct {
	ID        *string `json:"id"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FromFloor float64 `json:"fromFloor"`
	RoomID    string  `json:"roomId"`
}

// DecodeJSON parses an exported project. It fails with *DecodeError when
// data is not JSON or id, name or rooms are missing or mistyped.
func DecodeJSON(data []byte) (models.Project, error) {
	var doc projectDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Project{}, &DecodeError{Reason: "malformed JSON", Err: err}
	}
	return doc.project()
}

// DecodeProjects parses the persisted project list.
func DecodeProjects(data []byte) ([]models.Project, error) {
	var docs []projectDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, &DecodeError{Reason: "malformed project list", Err: err}
	}
	out := make([]models.Project, 0, len(docs))
	for i, doc := range docs {
		p, err := doc.project()
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (doc projectDoc) project() (models.Project, error) {
	if doc.ID == nil || *doc.ID == "" {
		return models.Project{}, &DecodeError{Reason: "missing project id"}
	}
	if doc.Name == nil {
		return models.Project{}, &DecodeError{Reason: "missing project name"}
	}
	if doc.Rooms == nil {
		return models.Project{}, &DecodeError{Reason: "missing rooms array"}
	}

	p := models.Project{
		ID:      *doc.ID,
		Name:    *doc.Name,
		Rooms:   make([]models.Room, 0, len(*doc.Rooms)),
		Doors:   make([]models.Door, 0, len(doc.Doors)),
		Windows: make([]models.Window, 0, len(doc.Windows)),
	}

	ts := time.Now().UTC()
	p.DateCreated, p.DateModified = ts, ts
	if doc.DateCreated != nil {
		p.DateCreated = *doc.DateCreated
	}
	if doc.DateModified != nil {
		p.DateModified = *doc.DateModified
	}
	if p.DateModified.Before(p.DateCreated) {
		p.DateModified = p.DateCreated
	}

	for i, r := range *doc.Rooms {
		if r.ID == nil || *r.ID == "" {
			return models.Project{}, &DecodeError{Reason: fmt.Sprintf("room %d: missing id", i)}
		}
		p.Rooms = append(p.Rooms, models.Room{
			ID:     *r.ID,
			Name:   r.Name,
			X:      r.X,
			Z:      r.Z,
			Width:  r.Width,
			Length: r.Length,
			Height: r.Height,
			Color:  r.Color,
		})
	}

	for i, d := range doc.Doors {
		if d.ID == nil || *d.ID == "" {
			return models.Project{}, &DecodeError{Reason: fmt.Sprintf("door %d: missing id", i)}
		}
		if len(d.ConnectsRooms) > models.MaxConnectedRooms {
			return models.Project{}, &DecodeError{Reason: fmt.Sprintf("door %d: connects more than two rooms", i)}
		}
		p.Doors = append(p.Doors, models.Door{
			ID:            *d.ID,
			X:             d.X,
			Z:             d.Z,
			Width:         d.Width,
			IsExterior:    d.IsExterior,
			Label:         d.Label,
			ConnectsRooms: append([]string{}, d.ConnectsRooms...),
		})
	}

	for i, w := range doc.Windows {
		if w.ID == nil || *w.ID == "" {
			return models.Project{}, &DecodeError{Reason: fmt.Sprintf("window %d: missing id", i)}
		}
		p.Windows = append(p.Windows, models.Window{
			ID:        *w.ID,
			X:         w.X,
			Z:         w.Z,
			Width:     w.Width,
			Height:    w.Height,
			FromFloor: w.FromFloor,
			RoomID:    w.RoomID,
		})
	}

	return p, nil
}
