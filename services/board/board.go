// Package board holds the in-memory canonical state and the reconciliation
// protocol around it: optimistic synchronous mutation, fire-and-forget
// persistence, and recovery-by-refetch when a persist fails. There is no
// cross-client locking or conflict detection; concurrent editors are
// last-writer-wins at the store (accepted limitation).
package board

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	tabularRepo "slotboard/database/repository/tabular"
	"slotboard/models"
	"slotboard/services/schedule"
	"slotboard/utils"
)

// personPalette cycles through display colors for newly created people.
var personPalette = []string{
	"#7bd389", "#6fa8dc", "#f6b26b", "#c27ba0", "#ffd966", "#76a5af", "#b4a7d6",
}

type DefaultService struct {
	Repo tabularRepo.Repository

	mu     sync.RWMutex
	slots  map[string]models.Slot
	people map[string]models.Person
	notes  map[string]models.Note

	events   chan MutationEvent
	inflight sync.WaitGroup
	pending  int32
}

func NewService(repo tabularRepo.Repository) *DefaultService {
	return &DefaultService{
		Repo:   repo,
		slots:  make(map[string]models.Slot),
		people: make(map[string]models.Person),
		notes:  make(map[string]models.Note),
		events: make(chan MutationEvent, 64),
	}
}

// Refresh replaces all local state with the store's current contents. The
// cache is invalidated first: recovery must see store truth, not a snapshot
// that may predate the failed write.
func (b *DefaultService) Refresh(ctx context.Context) error {
	b.Repo.Invalidate()
	snap, err := b.Repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	slots := make(map[string]models.Slot, len(snap.Slots))
	for _, s := range snap.Slots {
		slots[s.ID] = s
	}
	people := make(map[string]models.Person, len(snap.People))
	for _, p := range snap.People {
		people[p.ID] = p
	}
	notes := make(map[string]models.Note, len(snap.Notes))
	for _, n := range snap.Notes {
		notes[n.Date] = n
	}

	b.mu.Lock()
	b.slots = slots
	b.people = people
	b.notes = notes
	b.mu.Unlock()
	return nil
}

func (b *DefaultService) CreateSlot(ctx context.Context, req schedule.CreateRequest) (models.Slot, error) {
	b.mu.Lock()
	slot, err := schedule.Create(b.slotList(), req)
	if err != nil {
		b.mu.Unlock()
		return models.Slot{}, err
	}
	b.slots[slot.ID] = slot
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "createSlot", Key: slot.ID, State: SyncApplied})
	b.persist("createSlot", slot.ID, func(ctx context.Context) error {
		return b.Repo.UpsertSlot(ctx, slot)
	})
	return slot, nil
}

func (b *DefaultService) RebookSlot(ctx context.Context, id string, req schedule.RebookRequest) (schedule.SplitResult, error) {
	b.mu.Lock()
	res, err := schedule.Rebook(b.slotList(), id, req)
	if err != nil {
		b.mu.Unlock()
		return schedule.SplitResult{}, err
	}
	b.slots[res.Updated.ID] = res.Updated
	for _, r := range res.Remainders {
		b.slots[r.ID] = r
	}
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "rebookSlot", Key: id, State: SyncApplied})
	rows := append([]models.Slot{res.Updated}, res.Remainders...)
	b.persist("rebookSlot", id, func(ctx context.Context) error {
		for _, row := range rows {
			if err := b.Repo.UpsertSlot(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	return res, nil
}

func (b *DefaultService) DeleteSlotRange(ctx context.Context, id string, target *schedule.DeleteTarget) (schedule.DeleteResult, error) {
	b.mu.Lock()
	res, err := schedule.DeleteRange(b.slotList(), id, target)
	if err != nil {
		b.mu.Unlock()
		return schedule.DeleteResult{}, err
	}
	if res.Removed {
		delete(b.slots, id)
	}
	if res.Updated != nil {
		b.slots[res.Updated.ID] = *res.Updated
	}
	if res.Remainder != nil {
		b.slots[res.Remainder.ID] = *res.Remainder
	}
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "deleteSlot", Key: id, State: SyncApplied})
	b.persist("deleteSlot", id, func(ctx context.Context) error {
		if res.Removed {
			return b.Repo.DeleteSlotByID(ctx, id)
		}
		if err := b.Repo.UpsertSlot(ctx, *res.Updated); err != nil {
			return err
		}
		if res.Remainder != nil {
			return b.Repo.UpsertSlot(ctx, *res.Remainder)
		}
		return nil
	})
	return res, nil
}

func (b *DefaultService) EnsurePerson(ctx context.Context, displayName string) (models.Person, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return models.Person{}, &models.NotFoundError{Kind: "person", Key: displayName}
	}

	b.mu.Lock()
	for _, p := range b.people {
		if strings.EqualFold(p.DisplayName, name) {
			b.mu.Unlock()
			return p, nil
		}
	}
	person := models.Person{
		ID:          uuid.New().String(),
		DisplayName: name,
		Color:       personPalette[len(b.people)%len(personPalette)],
	}
	b.people[person.ID] = person
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "createPerson", Key: person.ID, State: SyncApplied})
	b.persist("createPerson", person.ID, func(ctx context.Context) error {
		return b.Repo.UpsertPerson(ctx, person)
	})
	return person, nil
}

// UpdatePersonDisplay changes display attributes only; identity is fixed at
// creation. Empty arguments leave the corresponding attribute unchanged.
func (b *DefaultService) UpdatePersonDisplay(ctx context.Context, id, displayName, color string) (models.Person, error) {
	b.mu.Lock()
	person, ok := b.people[id]
	if !ok {
		b.mu.Unlock()
		return models.Person{}, &models.NotFoundError{Kind: "person", Key: id}
	}
	if displayName != "" {
		person.DisplayName = displayName
	}
	if color != "" {
		person.Color = color
	}
	b.people[id] = person
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "updatePerson", Key: id, State: SyncApplied})
	b.persist("updatePerson", id, func(ctx context.Context) error {
		return b.Repo.UpsertPerson(ctx, person)
	})
	return person, nil
}

func (b *DefaultService) UpsertNote(ctx context.Context, note models.Note) error {
	b.mu.Lock()
	b.notes[note.Date] = note
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "upsertNote", Key: note.Date, State: SyncApplied})
	b.persist("upsertNote", note.Date, func(ctx context.Context) error {
		return b.Repo.UpsertNote(ctx, note)
	})
	return nil
}

func (b *DefaultService) DeleteNote(ctx context.Context, date string) error {
	b.mu.Lock()
	delete(b.notes, date)
	b.mu.Unlock()

	b.emit(MutationEvent{Op: "deleteNote", Key: date, State: SyncApplied})
	b.persist("deleteNote", date, func(ctx context.Context) error {
		return b.Repo.DeleteNoteByDate(ctx, date)
	})
	return nil
}

func (b *DefaultService) SlotsForDate(date string) []models.Slot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []models.Slot
	for _, s := range b.slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	sortSlots(out)
	return out
}

func (b *DefaultService) People() []models.Person {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Person, 0, len(b.people))
	for _, p := range b.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

func (b *DefaultService) Notes() []models.Note {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Note, 0, len(b.notes))
	for _, n := range b.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (b *DefaultService) Snapshot() models.ExportBundle {
	b.mu.RLock()
	slots := b.slotList()
	b.mu.RUnlock()
	sortSlots(slots)

	return models.ExportBundle{
		Slots:       slots,
		People:      b.People(),
		Notes:       b.Notes(),
		GeneratedAt: time.Now(),
	}
}

func (b *DefaultService) Events() <-chan MutationEvent { return b.events }

func (b *DefaultService) Syncing() int { return int(atomic.LoadInt32(&b.pending)) }

// Wait blocks until every in-flight persistence call has settled.
func (b *DefaultService) Wait() { b.inflight.Wait() }

// persist runs one persistence call in the background. The request context
// is deliberately not reused: the user action already succeeded locally and
// the write outlives the request. On failure the optimistic state is thrown
// away wholesale in favor of a fresh store read; the failed edit is not
// merged or retried (a retried append could duplicate rows).
func (b *DefaultService) persist(op, key string, fn func(ctx context.Context) error) {
	b.inflight.Add(1)
	atomic.AddInt32(&b.pending, 1)
	go func() {
		defer b.inflight.Done()
		defer atomic.AddInt32(&b.pending, -1)

		logger := utils.GetLogger()
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			logger.Error("persist failed, reverting to store truth",
				zap.String("op", op), zap.String("key", key), zap.Error(err))
			if rerr := b.Refresh(ctx); rerr != nil {
				logger.Error("refetch after failed persist also failed",
					zap.String("op", op), zap.Error(rerr))
			}
			b.emit(MutationEvent{Op: op, Key: key, State: SyncReverted, Err: err})
			return
		}
		b.emit(MutationEvent{Op: op, Key: key, State: SyncPersisted})
	}()
}

// emit never blocks; a full buffer drops the event.
func (b *DefaultService) emit(ev MutationEvent) {
	select {
	case b.events <- ev:
	default:
	}
}

// slotList snapshots the slot map; callers hold at least a read lock.
func (b *DefaultService) slotList() []models.Slot {
	out := make([]models.Slot, 0, len(b.slots))
	for _, s := range b.slots {
		out = append(out, s)
	}
	return out
}

func sortSlots(slots []models.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})
}
