package history

// MaxEntries bounds the number of retained snapshots.
const MaxEntries = 50

// History is a linear undo/redo stack of serialized plan snapshots.
// Snapshots are copied on the way in and out, so callers never share
// memory with a recorded entry.
type History struct {
	entries [][]byte
	cursor  int
	limit   int
}

// New starts a history holding only initial, at cursor 0.
func New(initial []byte) *History {
	h := &History{limit: MaxEntries}
	h.Reset(initial)
	return h
}

// Reset drops every entry and starts over from snapshot.
func (h *History) Reset(snapshot []byte) {
	h.entries = [][]byte{clone(snapshot)}
	h.cursor = 0
}

// Record discards any redo entries, appends snapshot and moves the cursor
// to it. The oldest entry is evicted once the limit is exceeded.
func (h *History) Record(snapshot []byte) {
	h.entries = append(h.entries[:h.cursor+1], clone(snapshot))
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([][]byte(nil), h.entries[over:]...)
	}
	h.cursor = len(h.entries) - 1
}

func (h *History) CanUndo() bool {
	return h.cursor > 0
}

func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Undo steps back one entry and returns it.
func (h *History) Undo() ([]byte, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return clone(h.entries[h.cursor]), true
}

// Redo steps forward one entry and returns it.
func (h *History) Redo() ([]byte, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return clone(h.entries[h.cursor]), true
}

// Current returns the entry under the cursor.
func (h *History) Current() []byte {
	return clone(h.entries[h.cursor])
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Cursor() int {
	return h.cursor
}

// Snapshots returns copies of every entry, oldest first.
func (h *History) Snapshots() [][]byte {
	out := make([][]byte, len(h.entries))
	for i, e := range h.entries {
		out[i] = clone(e)
	}
	return out
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
