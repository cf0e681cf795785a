package models

import (
	"math"
	"regexp"
	"strings"
)

// ============================================================
// Drafts
// ============================================================
//
// Drafts are the editable form of an entity. They are validated and turned
// into canonical entities only when the edit is confirmed.

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// MaxConnectedRooms bounds Door.ConnectsRooms.
const MaxConnectedRooms = 2

type RoomDraft struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

// DraftFromRoom prefills a draft for editing an existing room.
func DraftFromRoom(r Room) RoomDraft {
	return RoomDraft{
		Name:   r.Name,
		X:      r.X,
		Z:      r.Z,
		Width:  r.Width,
		Length: r.Length,
		Height: r.Height,
		Color:  r.Color,
	}
}

func (d RoomDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := finite("x", d.X); err != nil {
		return err
	}
	if err := finite("z", d.Z); err != nil {
		return err
	}
	if err := positive("width", d.Width); err != nil {
		return err
	}
	if err := positive("length", d.Length); err != nil {
		return err
	}
	if err := positive("height", d.Height); err != nil {
		return err
	}
	if d.Color != "" && !hexColor.MatchString(d.Color) {
		return &ValidationError{Field: "color", Message: "expected 6 hex digits"}
	}
	return nil
}

// Room converts a validated draft into a room with the given id.
func (d RoomDraft) Room(id string) Room {
	color := d.Color
	if color == "" {
		color = DefaultRoomColor
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return Room{
		ID:     id,
		Name:   strings.TrimSpace(d.Name),
		X:      d.X,
		Z:      d.Z,
		Width:  d.Width,
		Length: d.Length,
		Height: d.Height,
		Color:  color,
	}
}

type DoorDraft struct {
	X             float64  `json:"x"`
	Z             float64  `json:"z"`
	Width         float64  `json:"width"`
	IsExterior    bool     `json:"isExterior"`
	Label         string   `json:"label"`
	ConnectsRooms []string `json:"connectsRooms"`
}

func (d DoorDraft) Validate() error {
	if err := finite("x", d.X); err != nil {
		return err
	}
	if err := finite("z", d.Z); err != nil {
		return err
	}
	if err := positive("width", d.Width); err != nil {
		return err
	}
	if len(d.ConnectsRooms) > MaxConnectedRooms {
		return &ValidationError{Field: "connectsRooms", Message: "a door connects at most two rooms"}
	}
	for _, id := range d.ConnectsRooms {
		if id == "" {
			return &ValidationError{Field: "connectsRooms", Message: "room id must not be empty"}
		}
	}
	return nil
}

func (d DoorDraft) Door(id string) Door {
	return Door{
		ID:            id,
		X:             d.X,
		Z:             d.Z,
		Width:         d.Width,
		IsExterior:    d.IsExterior,
		Label:         strings.TrimSpace(d.Label),
		ConnectsRooms: append([]string{}, d.ConnectsRooms...),
	}
}

type WindowDraft struct {
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FromFloor float64 `json:"fromFloor"`
	RoomID    string  `json:"roomId"`
}

func (d WindowDraft) Validate() error {
	if err := finite("x", d.X); err != nil {
		return err
	}
	if err := finite("z", d.Z); err != nil {
		return err
	}
	if err := positive("width", d.Width); err != nil {
		return err
	}
	if err := positive("height", d.Height); err != nil {
		return err
	}
	if d.FromFloor < 0 || math.IsNaN(d.FromFloor) || math.IsInf(d.FromFloor, 0) {
		return &ValidationError{Field: "fromFloor", Message: "must be a non-negative number"}
	}
	return nil
}

func (d WindowDraft) Window(id string) Window {
	return Window{
		ID:        id,
		X:         d.X,
		Z:         d.Z,
		Width:     d.Width,
		Height:    d.Height,
		FromFloor: d.FromFloor,
		RoomID:    d.RoomID,
	}
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Message: "must be a finite number"}
	}
	return nil
}
