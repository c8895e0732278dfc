// ABOUTME: In-memory, append-only journal of entries.
// ABOUTME: Enumerates entries in insertion order and hands out copies only.
package journal

import (
	"github.com/google/uuid"

	"github.com/2389-research/diary/internal/models"
)

// Journal holds entries in the order they were added. It does no locking;
// callers that share a Journal across goroutines must synchronize.
type Journal struct {
	ID      uuid.UUID
	entries []models.Entry
}

// New creates an empty journal with a fresh session ID.
func New() *Journal {
	return &Journal{ID: uuid.New()}
}

// Add appends an entry. Its content is captured at this point, so later
// changes to a mutable entry (such as a JournalEntry's sections) are not seen.
func (j *Journal) Add(entry models.Entry) {
	j.entries = append(j.entries, models.NewTextEntry(entry.Content()))
}

// AddText appends a plain text entry.
func (j *Journal) AddText(content string) {
	j.Add(models.NewTextEntry(content))
}

// Entries returns a copy of all entries in insertion order.
func (j *Journal) Entries() []models.Entry {
	out := make([]models.Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Snapshot is a frozen copy of a journal's entries. It satisfies the same
// read-only Entries contract as Journal, so a caller holding a lock can copy
// once and release.
type Snapshot []models.Entry

// Snapshot copies the current entries.
func (j *Journal) Snapshot() Snapshot {
	return Snapshot(j.Entries())
}

// Entries returns a copy of the snapshot's entries.
func (s Snapshot) Entries() []models.Entry {
	out := make([]models.Entry, len(s))
	copy(out, s)
	return out
}
