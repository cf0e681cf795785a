package models

// Palette is the fixed set of pastel room fills.
var Palette = [10]string{
	"#e8f4f8", "#f8f4e8", "#f4f8e8", "#e8e8f8", "#f8e8f4",
	"#f8e8e8", "#e8f8e8", "#e8f8f4", "#f4e8f8", "#f8f8e8",
}

// ColorFor returns the palette entry for the room inserted at index.
func ColorFor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// DefaultRoomColor is used when a draft leaves the color empty.
const DefaultRoomColor = "#e8f4f8"
