package board

import (
	"context"

	"slotboard/models"
	"slotboard/services/schedule"
)

// SyncState tracks a mutation through the optimistic protocol: applied to
// local state, then either persisted or reverted by a full refetch.
type SyncState string

const (
	SyncApplied   SyncState = "applied"
	SyncPersisted SyncState = "persisted"
	SyncReverted  SyncState = "reverted"
)

// MutationEvent reports one state transition of one mutation.
type MutationEvent struct {
	Op    string // "createSlot", "rebookSlot", "deleteSlot", "upsertNote", ...
	Key   string // slot id, person id or note date
	State SyncState
	Err   error // set when State is SyncReverted
}

// Service is the client-side consistency contract over the canonical
// Slot/Person/Note collections. Mutations apply to local state synchronously
// and persist asynchronously; a failed persist surfaces the error and
// replaces all local state with the backing store's current contents.
type Service interface {
	// Refresh discards local state in favor of a fresh store read.
	Refresh(ctx context.Context) error

	CreateSlot(ctx context.Context, req schedule.CreateRequest) (models.Slot, error)
	RebookSlot(ctx context.Context, id string, req schedule.RebookRequest) (schedule.SplitResult, error)
	DeleteSlotRange(ctx context.Context, id string, target *schedule.DeleteTarget) (schedule.DeleteResult, error)

	// EnsurePerson resolves a display name to a Person, creating one on
	// first reference. Matching is case-insensitive.
	EnsurePerson(ctx context.Context, displayName string) (models.Person, error)
	UpdatePersonDisplay(ctx context.Context, id, displayName, color string) (models.Person, error)

	UpsertNote(ctx context.Context, note models.Note) error
	DeleteNote(ctx context.Context, date string) error

	SlotsForDate(date string) []models.Slot
	People() []models.Person
	Notes() []models.Note
	Snapshot() models.ExportBundle

	// Events streams mutation state transitions; slow consumers miss events
	// rather than blocking mutations.
	Events() <-chan MutationEvent

	// Syncing reports the number of persistence calls still in flight.
	Syncing() int
}
