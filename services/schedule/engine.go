// Package schedule owns the interval algebra over availability slots: the
// split/trim/delete operations that keep a day's slots for one interviewer
// pairwise disjoint. Everything here is pure; callers apply the returned
// results to their own state and handle persistence.
package schedule

import (
	"fmt"

	"github.com/google/uuid"

	"slotboard/models"
)

// CreateRequest describes a new availability block.
type CreateRequest struct {
	OwnerID   string
	Date      string
	StartTime string
	EndTime   string
	Booked    bool
}

// RebookRequest replaces all or part of an existing slot's range. An empty
// OwnerID keeps the current owner.
type RebookRequest struct {
	StartTime string
	EndTime   string
	Booked    bool
	OwnerID   string
}

// DeleteTarget is the sub-range to remove from a slot. A nil target removes
// the whole slot.
type DeleteTarget struct {
	StartTime string
	EndTime   string
}

// SplitResult is the outcome of a rebook: the slot that kept the original
// id, plus zero to two freshly-created remainder slots.
type SplitResult struct {
	Updated    models.Slot
	Remainders []models.Slot
}

// DeleteResult is the outcome of a range delete.
type DeleteResult struct {
	Removed   bool         // parent slot removed entirely
	Updated   *models.Slot // surviving parent, shrunk
	Remainder *models.Slot // new slot carved off by a split-delete
}

// Create validates a new slot against the existing set and returns it with
// a fresh id. The existing set is never modified.
func Create(existing []models.Slot, req CreateRequest) (models.Slot, error) {
	start, end, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return models.Slot{}, err
	}
	if other, ok := findOverlap(existing, req.OwnerID, req.Date, start, end, ""); ok {
		return models.Slot{}, &models.OutOfBoundsError{
			Message: fmt.Sprintf("range %s-%s overlaps slot %s (%s-%s)",
				req.StartTime, req.EndTime, other.ID, other.StartTime, other.EndTime),
		}
	}
	return models.Slot{
		ID:        uuid.New().String(),
		OwnerID:   req.OwnerID,
		Date:      req.Date,
		StartTime: models.FormatClock(start),
		EndTime:   models.FormatClock(end),
		Booked:    req.Booked,
	}, nil
}

// Rebook replaces all or part of a slot's range.
//
// An identical range is an in-place update. A strict sub-range splits the
// slot: the portions of the original range not covered by the edit survive
// as remainder slots with fresh ids, keeping the owner and booked state the
// slot had before the edit. The original id always ends up on the edited
// range. A range not contained in the slot is rejected.
func Rebook(existing []models.Slot, id string, req RebookRequest) (SplitResult, error) {
	slot, ok := findSlot(existing, id)
	if !ok {
		return SplitResult{}, &models.NotFoundError{Kind: "slot", Key: id}
	}
	s, e, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return SplitResult{}, err
	}
	// The stored slot passed validation at the boundary; parse errors here
	// would mean corrupted in-memory state.
	S, _ := slot.StartMinutes()
	E, _ := slot.EndMinutes()

	if s < S || e > E {
		return SplitResult{}, &models.OutOfBoundsError{
			Message: fmt.Sprintf("range %s-%s not contained in slot %s (%s-%s)",
				req.StartTime, req.EndTime, id, slot.StartTime, slot.EndTime),
		}
	}

	updated := slot
	updated.StartTime = models.FormatClock(s)
	updated.EndTime = models.FormatClock(e)
	updated.Booked = req.Booked
	if req.OwnerID != "" && req.OwnerID != slot.OwnerID {
		// Handing the range to another owner must not collide with that
		// owner's existing slots on the same date.
		if other, ok := findOverlap(existing, req.OwnerID, slot.Date, s, e, id); ok {
			return SplitResult{}, &models.OutOfBoundsError{
				Message: fmt.Sprintf("range %s-%s overlaps slot %s (%s-%s)",
					req.StartTime, req.EndTime, other.ID, other.StartTime, other.EndTime),
			}
		}
		updated.OwnerID = req.OwnerID
	}

	res := SplitResult{Updated: updated}
	if s == S && e == E {
		return res, nil
	}
	// Remainders inherit the slot's pre-edit owner and booked state: the
	// uncovered portions stay exactly as they were.
	if s > S {
		res.Remainders = append(res.Remainders, models.Slot{
			ID:        uuid.New().String(),
			OwnerID:   slot.OwnerID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   models.FormatClock(s),
			Booked:    slot.Booked,
		})
	}
	if e < E {
		res.Remainders = append(res.Remainders, models.Slot{
			ID:        uuid.New().String(),
			OwnerID:   slot.OwnerID,
			Date:      slot.Date,
			StartTime: models.FormatClock(e),
			EndTime:   slot.EndTime,
			Booked:    slot.Booked,
		})
	}
	return res, nil
}

// DeleteRange removes a slot or a sub-range of it. Four cases, resolved by
// comparing the target against the slot's own range: exact match (or nil
// target) removes the slot, a head or tail match trims it in place, and a
// strictly interior target splits it in two around the removed span.
func DeleteRange(existing []models.Slot, id string, target *DeleteTarget) (DeleteResult, error) {
	slot, ok := findSlot(existing, id)
	if !ok {
		return DeleteResult{}, &models.NotFoundError{Kind: "slot", Key: id}
	}
	if target == nil {
		return DeleteResult{Removed: true}, nil
	}
	tS, tE, err := parseRange(target.StartTime, target.EndTime)
	if err != nil {
		return DeleteResult{}, err
	}
	pS, _ := slot.StartMinutes()
	pE, _ := slot.EndMinutes()

	switch {
	case tS == pS && tE == pE:
		return DeleteResult{Removed: true}, nil

	case tS == pS && tE < pE:
		trimmed := slot
		trimmed.StartTime = models.FormatClock(tE)
		return DeleteResult{Updated: &trimmed}, nil

	case tE == pE && tS > pS:
		trimmed := slot
		trimmed.EndTime = models.FormatClock(tS)
		return DeleteResult{Updated: &trimmed}, nil

	case tS > pS && tE < pE:
		head := slot
		head.EndTime = models.FormatClock(tS)
		tail := models.Slot{
			ID:        uuid.New().String(),
			OwnerID:   slot.OwnerID,
			Date:      slot.Date,
			StartTime: models.FormatClock(tE),
			EndTime:   slot.EndTime,
			Booked:    slot.Booked,
		}
		return DeleteResult{Updated: &head, Remainder: &tail}, nil

	default:
		return DeleteResult{}, &models.OutOfBoundsError{
			Message: fmt.Sprintf("target %s-%s not contained in slot %s (%s-%s)",
				target.StartTime, target.EndTime, id, slot.StartTime, slot.EndTime),
		}
	}
}

func parseRange(startTime, endTime string) (int, int, error) {
	start, err := models.ParseClock(startTime)
	if err != nil {
		return 0, 0, &models.InvalidRangeError{Start: startTime, End: endTime}
	}
	end, err := models.ParseClock(endTime)
	if err != nil {
		return 0, 0, &models.InvalidRangeError{Start: startTime, End: endTime}
	}
	if start >= end {
		return 0, 0, &models.InvalidRangeError{Start: startTime, End: endTime}
	}
	return start, end, nil
}

func findSlot(existing []models.Slot, id string) (models.Slot, bool) {
	for _, s := range existing {
		if s.ID == id {
			return s, true
		}
	}
	return models.Slot{}, false
}

// findOverlap reports the first slot for the same owner and date whose range
// intersects [start,end), ignoring excludeID.
func findOverlap(existing []models.Slot, ownerID, date string, start, end int, excludeID string) (models.Slot, bool) {
	for _, s := range existing {
		if s.ID == excludeID || s.OwnerID != ownerID || s.Date != date {
			continue
		}
		oS, err1 := s.StartMinutes()
		oE, err2 := s.EndMinutes()
		if err1 != nil || err2 != nil {
			continue
		}
		if start < oE && end > oS {
			return s, true
		}
	}
	return models.Slot{}, false
}
