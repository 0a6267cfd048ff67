package history

import (
	"github.com/goliatone/go-pagebuilder/internal/sections"
)

// History is a linear undo/redo log of whole-page snapshots. Entry 0 is the
// state the session opened with; the cursor points at the current state.
// Snapshots are deep copies in both directions.
//
// History is not safe for concurrent use.
type History struct {
	entries [][]sections.Section
	cursor  int
	limit   int
}

// New returns a history seeded with initial. A limit of zero or less keeps
// every entry; otherwise the oldest entries are dropped once the log holds
// more than limit snapshots.
func New(initial []sections.Section, limit int) *History {
	return &History{
		entries: [][]sections.Section{sections.CloneAll(initial)},
		limit:   limit,
	}
}

// Push records snapshot as the new current state and discards any redo
// entries ahead of the cursor.
func (h *History) Push(snapshot []sections.Section) {
	h.entries = append(h.entries[:h.cursor+1], sections.CloneAll(snapshot))
	h.cursor = len(h.entries) - 1

	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([][]sections.Section(nil), h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo moves the cursor back and returns the snapshot there.
func (h *History) Undo() ([]sections.Section, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return sections.CloneAll(h.entries[h.cursor]), true
}

// Redo moves the cursor forward and returns the snapshot there.
func (h *History) Redo() ([]sections.Section, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return sections.CloneAll(h.entries[h.cursor]), true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of stored snapshots, including the initial one.
func (h *History) Len() int { return len(h.entries) }

// Current returns a copy of the snapshot at the cursor.
func (h *History) Current() []sections.Section {
	return sections.CloneAll(h.entries[h.cursor])
}
