// Package tabularRepo adapts the flat positional row store into key-indexed
// tables. Every by-key write is a whole-table scan followed by a positional
// write; the two round trips are not transactional, so a concurrent writer
// can invalidate the scanned position. Callers that need strict correctness
// serialize writes to a table externally.
package tabularRepo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"slotboard/database/rowstore"
	"slotboard/models"
	"slotboard/utils"
)

type DefaultRepository struct {
	store rowstore.RowStore
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex // guards the snapshot cache
	cached   *Snapshot
	cachedAt time.Time
}

// NewRepository wraps a row store with key-indexed access and a snapshot
// cache of the given TTL.
func NewRepository(store rowstore.RowStore, ttl time.Duration) *DefaultRepository {
	return &DefaultRepository{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// LoadAll reads all three tables. A snapshot younger than the TTL is served
// as-is without touching the store.
func (r *DefaultRepository) LoadAll(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	if r.cached != nil && r.now().Sub(r.cachedAt) < r.ttl {
		snap := r.cached
		r.mu.Unlock()
		return snap, nil
	}
	r.mu.Unlock()

	logger := utils.GetLogger()

	slotRows, err := r.store.ReadTable(ctx, rowstore.TableSlots)
	if err != nil {
		return nil, err
	}
	peopleRows, err := r.store.ReadTable(ctx, rowstore.TablePeople)
	if err != nil {
		return nil, err
	}
	noteRows, err := r.store.ReadTable(ctx, rowstore.TableNotes)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{FetchedAt: r.now()}
	for i, row := range slotRows {
		s, err := decodeSlotRow(row)
		if err != nil {
			logger.Warn("skipping malformed slot row", zap.Int("row", i), zap.Error(err))
			continue
		}
		snap.Slots = append(snap.Slots, s)
	}
	for i, row := range peopleRows {
		p, err := decodePersonRow(row)
		if err != nil {
			logger.Warn("skipping malformed person row", zap.Int("row", i), zap.Error(err))
			continue
		}
		snap.People = append(snap.People, p)
	}
	for i, row := range noteRows {
		n, err := decodeNoteRow(row)
		if err != nil {
			logger.Warn("skipping malformed note row", zap.Int("row", i), zap.Error(err))
			continue
		}
		snap.Notes = append(snap.Notes, n)
	}

	r.mu.Lock()
	r.cached = snap
	r.cachedAt = snap.FetchedAt
	r.mu.Unlock()
	return snap, nil
}

// Invalidate drops the snapshot unconditionally. Every write path calls it
// regardless of which table was touched: the cache is a latency shortcut,
// never a consistency decision.
func (r *DefaultRepository) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}

// findRowIndex scans the key column (column 0) for the first row matching
// the normalized key. Returns -1 when no row matches.
func (r *DefaultRepository) findRowIndex(ctx context.Context, table rowstore.Table, key string) (int, error) {
	rows, err := r.store.ReadTable(ctx, table)
	if err != nil {
		return -1, err
	}
	want := normalizeKey(key)
	for i, row := range rows {
		if len(row) > 0 && normalizeKey(row[0]) == want {
			return i, nil
		}
	}
	return -1, nil
}

// upsert appends when the key is absent, updates in place when present.
func (r *DefaultRepository) upsert(ctx context.Context, table rowstore.Table, key string, row []string) error {
	defer r.Invalidate()

	idx, err := r.findRowIndex(ctx, table, key)
	if err != nil {
		return err
	}
	if idx < 0 {
		return r.store.AppendRow(ctx, table, row)
	}
	return r.store.UpdateRow(ctx, table, idx, row)
}

// deleteByKey removes every row matching the key, re-scanning after each
// delete until no match remains. Duplicate keys can exist after a failed
// partial delete was retried; a single-pass delete would leave strays
// behind, so the loop is load-bearing.
func (r *DefaultRepository) deleteByKey(ctx context.Context, table rowstore.Table, key string) error {
	defer r.Invalidate()

	for {
		idx, err := r.findRowIndex(ctx, table, key)
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}
		if err := r.store.DeleteRow(ctx, table, idx); err != nil {
			return err
		}
	}
}

func (r *DefaultRepository) UpsertSlot(ctx context.Context, slot models.Slot) error {
	return r.upsert(ctx, rowstore.TableSlots, slot.ID, encodeSlotRow(slot))
}

func (r *DefaultRepository) DeleteSlotByID(ctx context.Context, id string) error {
	return r.deleteByKey(ctx, rowstore.TableSlots, id)
}

func (r *DefaultRepository) UpsertPerson(ctx context.Context, person models.Person) error {
	return r.upsert(ctx, rowstore.TablePeople, person.ID, encodePersonRow(person))
}

func (r *DefaultRepository) UpsertNote(ctx context.Context, note models.Note) error {
	return r.upsert(ctx, rowstore.TableNotes, note.Date, encodeNoteRow(note))
}

func (r *DefaultRepository) DeleteNoteByDate(ctx context.Context, date string) error {
	return r.deleteByKey(ctx, rowstore.TableNotes, date)
}
