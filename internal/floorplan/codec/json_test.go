package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"floorplan/internal/floorplan/models"
)

func sampleProject() models.Project {
	created := time.Date(2024, 12, 15, 9, 30, 0, 0, time.UTC)
	return models.Project{
		ID:           "8f0c3a52-3e0b-4c59-9a55-0d7b0c6f7b11",
		Name:         "First Floor <Scan> & \"notes\"",
		DateCreated:  created,
		DateModified: created.Add(90*time.Minute + 123456789*time.Nanosecond),
		Rooms: []models.Room{
			{ID: "living-room", Name: "Living Room", X: 0, Z: 0, Width: 18, Length: 24, Height: 9, Color: "#e8f4f8"},
			{ID: "kitchen", Name: "Kitchen", X: 18, Z: 0, Width: 14.5, Length: 12, Height: 9.5, Color: "#f8f4e8"},
		},
		Doors: []models.Door{
			{ID: "d1", X: 18, Z: 6, Width: 3, ConnectsRooms: []string{"living-room", "kitchen"}},
			{ID: "d2", X: 0, Z: 10, Width: 6, IsExterior: true, Label: "Front Entry", ConnectsRooms: []string{"living-room"}},
			{ID: "d3", X: 5, Z: 24, Width: 2.5},
		},
		Windows: []models.Window{
			{ID: "w1", X: 3, Z: 0, Width: 4, Height: 5, FromFloor: 3, RoomID: "living-room"},
			{ID: "w2", X: 46, Z: 15, Width: 6, Height: 4.25, FromFloor: 2.75},
		},
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		project models.Project
	}{
		{"full plan", sampleProject()},
		{"empty plan", models.Project{ID: "p", Name: "", DateCreated: time.Unix(0, 0).UTC(), DateModified: time.Unix(0, 0).UTC()}},
		{"fresh project", *models.NewProject("Test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeJSON(tt.project)
			if err != nil {
				t.Fatalf("EncodeJSON: %v", err)
			}
			got, err := DecodeJSON(data)
			if err != nil {
				t.Fatalf("DecodeJSON: %v", err)
			}
			if !models.Equal(got, tt.project) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tt.project)
			}
		})
	}
}

func TestEncodeJSON_Shape(t *testing.T) {
	data, err := EncodeJSON(sampleProject())
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	text := string(data)

	order := []string{`"dateCreated"`, `"dateModified"`, `"doors"`, `"id"`, `"name"`, `"rooms"`, `"windows"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, "\n  "+key)
		if idx < 0 {
			t.Fatalf("top-level key %s missing", key)
		}
		if idx < last {
			t.Errorf("key %s out of order", key)
		}
		last = idx
	}

	if !strings.Contains(text, `"dateCreated": "2024-12-15T09:30:00Z"`) {
		t.Errorf("timestamp not ISO-8601: %s", text)
	}
	if !strings.Contains(text, `"connectsRooms": []`) {
		t.Error("empty connectsRooms should encode as an array")
	}
	if !strings.Contains(text, `<Scan> &`) {
		t.Error("HTML characters should not be escaped")
	}
	if !strings.HasPrefix(text, "{\n  ") {
		t.Error("output is not indented with two spaces")
	}
}

func TestEncodeJSON_Deterministic(t *testing.T) {
	a, _ := EncodeJSON(sampleProject())
	b, _ := EncodeJSON(sampleProject())
	if !bytes.Equal(a, b) {
		t.Error("two encodings of the same project differ")
	}
}

func TestEncodeJSON_EmptyCollections(t *testing.T) {
	data, err := EncodeJSON(models.Project{ID: "p", Name: "n"})
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	for _, key := range []string{`"rooms": []`, `"doors": []`, `"windows": []`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("missing %s in %s", key, data)
		}
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `this is not json`},
		{"truncated", `{"id": "p", "name": "n", "rooms": [`},
		{"array instead of object", `[]`},
		{"missing id", `{"name": "n", "rooms": []}`},
		{"empty id", `{"id": "", "name": "n", "rooms": []}`},
		{"numeric id", `{"id": 7, "name": "n", "rooms": []}`},
		{"missing name", `{"id": "p", "rooms": []}`},
		{"name wrong type", `{"id": "p", "name": ["n"], "rooms": []}`},
		{"missing rooms", `{"id": "p", "name": "n"}`},
		{"null rooms", `{"id": "p", "name": "n", "rooms": null}`},
		{"rooms wrong type", `{"id": "p", "name": "n", "rooms": {}}`},
		{"room without id", `{"id": "p", "name": "n", "rooms": [{"name": "A"}]}`},
		{"room width wrong type", `{"id": "p", "name": "n", "rooms": [{"id": "a", "width": "wide"}]}`},
		{"door with three rooms", `{"id": "p", "name": "n", "rooms": [], "doors": [{"id": "d", "connectsRooms": ["a", "b", "c"]}]}`},
		{"bad timestamp", `{"id": "p", "name": "n", "rooms": [], "dateCreated": "yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if !errors.Is(err, ErrDecode) {
				t.Error("error does not match ErrDecode")
			}
		})
	}
}

func TestDecodeJSON_Defaults(t *testing.T) {
	p, err := DecodeJSON([]byte(`{"id": "p", "name": "Imported", "rooms": [{"id": "a", "name": "A", "width": 10, "length": 12, "height": 9}]}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if p.DateCreated.IsZero() || p.DateModified.Before(p.DateCreated) {
		t.Errorf("timestamps not defaulted: %v %v", p.DateCreated, p.DateModified)
	}
	if p.Doors == nil || p.Windows == nil {
		t.Error("missing doors/windows should decode as empty lists")
	}
	if p.TotalArea() != 120 {
		t.Errorf("TotalArea() = %v", p.TotalArea())
	}
}

func TestProjectsList_RoundTrip(t *testing.T) {
	list := []models.Project{sampleProject(), *models.NewProject("Second")}

	data, err := EncodeProjects(list)
	if err != nil {
		t.Fatalf("EncodeProjects: %v", err)
	}
	got, err := DecodeProjects(data)
	if err != nil {
		t.Fatalf("DecodeProjects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d projects", len(got))
	}
	for i := range list {
		if !models.Equal(got[i], list[i]) {
			t.Errorf("project %d mismatch", i)
		}
	}

	if _, err := DecodeProjects([]byte(`[{"name": "no id", "rooms": []}]`)); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
