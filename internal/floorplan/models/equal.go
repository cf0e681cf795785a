package models

import "slices"

// Equal reports whether a and b describe the same plan field for field.
// Nil and empty collections compare equal and timestamps compare by instant.
func Equal(a, b Project) bool {
	if a.ID != b.ID || a.Name != b.Name {
		return false
	}
	if !a.DateCreated.Equal(b.DateCreated) || !a.DateModified.Equal(b.DateModified) {
		return false
	}
	if !slices.Equal(a.Rooms, b.Rooms) || !slices.Equal(a.Windows, b.Windows) {
		return false
	}
	return slices.EqualFunc(a.Doors, b.Doors, func(x, y Door) bool {
		return x.ID == y.ID &&
			x.X == y.X &&
			x.Z == y.Z &&
			x.Width == y.Width &&
			x.IsExterior == y.IsExterior &&
			x.Label == y.Label &&
			slices.Equal(x.ConnectsRooms, y.ConnectsRooms)
	})
}
