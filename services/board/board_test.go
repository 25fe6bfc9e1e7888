package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tabularRepo "slotboard/database/repository/tabular"
	"slotboard/database/rowstore"
	"slotboard/models"
	"slotboard/services/schedule"
)

// faultyStore wraps the memory store and fails every write while tripped.
type faultyStore struct {
	*rowstore.MemoryStore
	failWrites bool
}

func (s *faultyStore) AppendRow(ctx context.Context, table rowstore.Table, row []string) error {
	if s.failWrites {
		return &models.PersistenceError{Op: "append", Table: string(table), Err: fmt.Errorf("injected failure")}
	}
	return s.MemoryStore.AppendRow(ctx, table, row)
}

func (s *faultyStore) UpdateRow(ctx context.Context, table rowstore.Table, index int, row []string) error {
	if s.failWrites {
		return &models.PersistenceError{Op: "update", Table: string(table), Err: fmt.Errorf("injected failure")}
	}
	return s.MemoryStore.UpdateRow(ctx, table, index, row)
}

func (s *faultyStore) DeleteRow(ctx context.Context, table rowstore.Table, index int) error {
	if s.failWrites {
		return &models.PersistenceError{Op: "delete", Table: string(table), Err: fmt.Errorf("injected failure")}
	}
	return s.MemoryStore.DeleteRow(ctx, table, index)
}

func newTestBoard(t *testing.T, store rowstore.RowStore) *DefaultService {
	t.Helper()
	// Nanosecond TTL keeps every load a real store read; cache behavior has
	// its own tests in the repository package.
	repo := tabularRepo.NewRepository(store, time.Nanosecond)
	b := NewService(repo)
	require.NoError(t, b.Refresh(context.Background()))
	return b
}

func drainEvents(b *DefaultService) []MutationEvent {
	var out []MutationEvent
	for {
		select {
		case ev := <-b.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestCreateSlotAppliesThenPersists(t *testing.T) {
	store := rowstore.NewMemoryStore()
	b := newTestBoard(t, store)
	ctx := context.Background()

	slot, err := b.CreateSlot(ctx, schedule.CreateRequest{
		OwnerID: "p1", Date: "2025-03-10", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	// Visible synchronously, before persistence settles.
	got := b.SlotsForDate("2025-03-10")
	require.Len(t, got, 1)
	assert.Equal(t, slot.ID, got[0].ID)

	b.Wait()

	rows, err := store.ReadTable(ctx, rowstore.TableSlots)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	events := drainEvents(b)
	require.Len(t, events, 2)
	assert.Equal(t, SyncApplied, events[0].State)
	assert.Equal(t, SyncPersisted, events[1].State)
	assert.Equal(t, "createSlot", events[1].Op)
}

func TestFailedPersistRevertsToStoreTruth(t *testing.T) {
	store := &faultyStore{MemoryStore: rowstore.NewMemoryStore()}
	b := newTestBoard(t, store)
	ctx := context.Background()

	store.failWrites = true
	_, err := b.CreateSlot(ctx, schedule.CreateRequest{
		OwnerID: "p1", Date: "2025-03-10", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err, "the optimistic apply itself succeeds")
	require.Len(t, b.SlotsForDate("2025-03-10"), 1)

	b.Wait()
	store.failWrites = false

	// The optimistic edit is gone: local state now mirrors the store, which
	// never saw the write.
	assert.Empty(t, b.SlotsForDate("2025-03-10"))

	events := drainEvents(b)
	require.Len(t, events, 2)
	assert.Equal(t, SyncApplied, events[0].State)
	assert.Equal(t, SyncReverted, events[1].State)
	assert.Error(t, events[1].Err)
}

func TestRebookThroughBoardKeepsDisjointState(t *testing.T) {
	store := rowstore.NewMemoryStore()
	b := newTestBoard(t, store)
	ctx := context.Background()

	slot, err := b.CreateSlot(ctx, schedule.CreateRequest{
		OwnerID: "p1", Date: "2025-03-10", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	b.Wait()

	res, err := b.RebookSlot(ctx, slot.ID, schedule.RebookRequest{
		StartTime: "10:00", EndTime: "10:30", Booked: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Remainders, 2)

	local := b.SlotsForDate("2025-03-10")
	require.Len(t, local, 3)
	assert.Equal(t, "09:00", local[0].StartTime)
	assert.Equal(t, "10:00", local[1].StartTime)
	assert.Equal(t, "10:30", local[2].StartTime)

	b.Wait()
	rows, err := store.ReadTable(ctx, rowstore.TableSlots)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDeleteThroughBoard(t *testing.T) {
	store := rowstore.NewMemoryStore()
	b := newTestBoard(t, store)
	ctx := context.Background()

	slot, err := b.CreateSlot(ctx, schedule.CreateRequest{
		OwnerID: "p1", Date: "2025-03-10", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	b.Wait()

	res, err := b.DeleteSlotRange(ctx, slot.ID, nil)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Empty(t, b.SlotsForDate("2025-03-10"))

	b.Wait()
	rows, err := store.ReadTable(ctx, rowstore.TableSlots)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEnsurePersonIsCaseInsensitive(t *testing.T) {
	b := newTestBoard(t, rowstore.NewMemoryStore())
	ctx := context.Background()

	alice, err := b.EnsurePerson(ctx, "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	assert.NotEmpty(t, alice.Color)

	same, err := b.EnsurePerson(ctx, "  ALICE ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, same.ID)

	bob, err := b.EnsurePerson(ctx, "Bob")
	require.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)

	b.Wait()
	require.Len(t, b.People(), 2)
}

func TestUpdatePersonDisplayKeepsIdentity(t *testing.T) {
	b := newTestBoard(t, rowstore.NewMemoryStore())
	ctx := context.Background()

	alice, err := b.EnsurePerson(ctx, "Alice")
	require.NoError(t, err)

	updated, err := b.UpdatePersonDisplay(ctx, alice.ID, "", "#123456")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, "Alice", updated.DisplayName)
	assert.Equal(t, "#123456", updated.Color)

	_, err = b.UpdatePersonDisplay(ctx, "missing", "x", "")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	b.Wait()
}

func TestNotesUpsertAndDelete(t *testing.T) {
	store := rowstore.NewMemoryStore()
	b := newTestBoard(t, store)
	ctx := context.Background()

	require.NoError(t, b.UpsertNote(ctx, models.Note{Date: "2025-03-10", Content: "onsite day", Color: "#eee"}))
	require.NoError(t, b.UpsertNote(ctx, models.Note{Date: "2025-03-10", Content: "remote day", Color: "#eee"}))

	notes := b.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "remote day", notes[0].Content)

	b.Wait()
	rows, err := store.ReadTable(ctx, rowstore.TableNotes)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, b.DeleteNote(ctx, "2025-03-10"))
	assert.Empty(t, b.Notes())
	b.Wait()

	rows, err = store.ReadTable(ctx, rowstore.TableNotes)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFailedEngineOpMutatesNothing(t *testing.T) {
	store := rowstore.NewMemoryStore()
	b := newTestBoard(t, store)
	ctx := context.Background()

	slot, err := b.CreateSlot(ctx, schedule.CreateRequest{
		OwnerID: "p1", Date: "2025-03-10", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	b.Wait()
	drainEvents(b)

	_, err = b.RebookSlot(ctx, slot.ID, schedule.RebookRequest{StartTime: "08:00", EndTime: "13:00"})
	var outOfBounds *models.OutOfBoundsError
	require.ErrorAs(t, err, &outOfBounds)

	b.Wait()
	assert.Empty(t, drainEvents(b), "a rejected precondition fires no persistence")
	local := b.SlotsForDate("2025-03-10")
	require.Len(t, local, 1)
	assert.Equal(t, "09:00", local[0].StartTime)
	assert.Equal(t, "12:00", local[0].EndTime)
}
