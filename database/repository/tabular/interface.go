package tabularRepo

import (
	"context"
	"time"

	"slotboard/models"
)

// Snapshot is one full read of the three tables. FetchedAt is the store
// read time, not the cache hit time.
type Snapshot struct {
	Slots     []models.Slot
	People    []models.Person
	Notes     []models.Note
	FetchedAt time.Time
}

// Repository is the key-indexed adapter over the flat row store. The store
// itself only supports whole-table reads and positional writes; every
// by-key operation here is a scan followed by a positional write, which is
// not transactional (see the package doc on repository.go).
type Repository interface {
	// LoadAll reads all three tables, served from a short-TTL snapshot
	// cache when fresh. The returned snapshot must be treated as read-only.
	LoadAll(ctx context.Context) (*Snapshot, error)

	UpsertSlot(ctx context.Context, slot models.Slot) error
	DeleteSlotByID(ctx context.Context, id string) error

	UpsertPerson(ctx context.Context, person models.Person) error

	UpsertNote(ctx context.Context, note models.Note) error
	DeleteNoteByDate(ctx context.Context, date string) error

	// Invalidate drops the cached snapshot so the next LoadAll hits the store.
	Invalidate()
}
