package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotboard/models"
)

func mkSlot(id, owner, date, start, end string, booked bool) models.Slot {
	return models.Slot{ID: id, OwnerID: owner, Date: date, StartTime: start, EndTime: end, Booked: booked}
}

func assertDisjoint(t *testing.T, slots []models.Slot) {
	t.Helper()
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.OwnerID != b.OwnerID || a.Date != b.Date {
				continue
			}
			aS, err := a.StartMinutes()
			require.NoError(t, err)
			aE, err := a.EndMinutes()
			require.NoError(t, err)
			bS, err := b.StartMinutes()
			require.NoError(t, err)
			bE, err := b.EndMinutes()
			require.NoError(t, err)
			assert.False(t, aS < bE && aE > bS,
				"slots %s (%s-%s) and %s (%s-%s) overlap",
				a.ID, a.StartTime, a.EndTime, b.ID, b.StartTime, b.EndTime)
		}
	}
}

func TestCreateRejectsInvertedRange(t *testing.T) {
	_, err := Create(nil, CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "12:00", EndTime: "09:00"})
	var invalidRange *models.InvalidRangeError
	require.ErrorAs(t, err, &invalidRange)

	_, err = Create(nil, CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "09:00", EndTime: "09:00"})
	require.ErrorAs(t, err, &invalidRange)
}

func TestCreateRejectsOverlap(t *testing.T) {
	existing := []models.Slot{mkSlot("a", "x", "2025-03-10", "09:00", "12:00", false)}

	_, err := Create(existing, CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "11:00", EndTime: "13:00"})
	var outOfBounds *models.OutOfBoundsError
	require.ErrorAs(t, err, &outOfBounds)

	// Same range, different owner or date: fine.
	_, err = Create(existing, CreateRequest{OwnerID: "y", Date: "2025-03-10", StartTime: "11:00", EndTime: "13:00"})
	require.NoError(t, err)
	_, err = Create(existing, CreateRequest{OwnerID: "x", Date: "2025-03-11", StartTime: "11:00", EndTime: "13:00"})
	require.NoError(t, err)

	// Adjacent is not overlapping.
	slot, err := Create(existing, CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "12:00", slot.StartTime)
}

func TestRebookSubRangeSplits(t *testing.T) {
	// Slot A = [09:00,12:00), unbooked. Rebooking [10:00,10:30) as booked
	// yields the booked middle on A's id plus two unbooked remainders.
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "09:00", "12:00", false)}

	res, err := Rebook(existing, "A", RebookRequest{StartTime: "10:00", EndTime: "10:30", Booked: true})
	require.NoError(t, err)

	assert.Equal(t, "A", res.Updated.ID)
	assert.Equal(t, "10:00", res.Updated.StartTime)
	assert.Equal(t, "10:30", res.Updated.EndTime)
	assert.True(t, res.Updated.Booked)

	require.Len(t, res.Remainders, 2)
	head, tail := res.Remainders[0], res.Remainders[1]
	assert.Equal(t, "09:00", head.StartTime)
	assert.Equal(t, "10:00", head.EndTime)
	assert.False(t, head.Booked)
	assert.Equal(t, "10:30", tail.StartTime)
	assert.Equal(t, "12:00", tail.EndTime)
	assert.False(t, tail.Booked)
	assert.NotEqual(t, "A", head.ID)
	assert.NotEqual(t, "A", tail.ID)
	assert.NotEqual(t, head.ID, tail.ID)

	all := append([]models.Slot{res.Updated}, res.Remainders...)
	assertDisjoint(t, all)
}

func TestRebookConservation(t *testing.T) {
	// head + main + tail must cover exactly the original range.
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "08:15", "17:45", false)}

	res, err := Rebook(existing, "A", RebookRequest{StartTime: "09:30", EndTime: "11:00", Booked: true})
	require.NoError(t, err)
	require.Len(t, res.Remainders, 2)

	covered := 0
	for _, s := range append([]models.Slot{res.Updated}, res.Remainders...) {
		start, err := s.StartMinutes()
		require.NoError(t, err)
		end, err := s.EndMinutes()
		require.NoError(t, err)
		require.Greater(t, end, start)
		covered += end - start
	}
	assert.Equal(t, (17*60+45)-(8*60+15), covered)
	assert.Equal(t, "08:15", res.Remainders[0].StartTime)
	assert.Equal(t, "17:45", res.Remainders[1].EndTime)
}

func TestRebookHeadAlignedEmitsOnlyTail(t *testing.T) {
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "09:00", "12:00", false)}

	res, err := Rebook(existing, "A", RebookRequest{StartTime: "09:00", EndTime: "10:00", Booked: true})
	require.NoError(t, err)
	require.Len(t, res.Remainders, 1)
	assert.Equal(t, "10:00", res.Remainders[0].StartTime)
	assert.Equal(t, "12:00", res.Remainders[0].EndTime)
}

func TestRebookIdenticalRangeUpdatesInPlace(t *testing.T) {
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "09:00", "12:00", false)}

	res, err := Rebook(existing, "A", RebookRequest{StartTime: "09:00", EndTime: "12:00", Booked: true, OwnerID: "y"})
	require.NoError(t, err)
	assert.Empty(t, res.Remainders)
	assert.Equal(t, "A", res.Updated.ID)
	assert.Equal(t, "y", res.Updated.OwnerID)
	assert.True(t, res.Updated.Booked)
}

func TestRebookRemaindersKeepPreEditBookedState(t *testing.T) {
	// Splitting a booked slot into an unbooked middle leaves booked remainders.
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "09:00", "12:00", true)}

	res, err := Rebook(existing, "A", RebookRequest{StartTime: "10:00", EndTime: "11:00", Booked: false})
	require.NoError(t, err)
	require.Len(t, res.Remainders, 2)
	assert.True(t, res.Remainders[0].Booked)
	assert.True(t, res.Remainders[1].Booked)
	assert.False(t, res.Updated.Booked)
}

func TestRebookOutsideParentRejected(t *testing.T) {
	existing := []models.Slot{mkSlot("A", "x", "2025-03-10", "09:00", "12:00", false)}
	var outOfBounds *models.OutOfBoundsError

	// Expansion.
	_, err := Rebook(existing, "A", RebookRequest{StartTime: "08:00", EndTime: "13:00", Booked: true})
	require.ErrorAs(t, err, &outOfBounds)

	// Disjoint.
	_, err = Rebook(existing, "A", RebookRequest{StartTime: "13:00", EndTime: "14:00", Booked: true})
	require.ErrorAs(t, err, &outOfBounds)
}

func TestRebookOwnerChangeRejectsOverlapWithNewOwner(t *testing.T) {
	existing := []models.Slot{
		mkSlot("A", "x", "2025-03-10", "09:00", "12:00", false),
		mkSlot("B", "y", "2025-03-10", "09:00", "12:00", false),
	}
	var outOfBounds *models.OutOfBoundsError

	// Handing A's range to y would leave y with two identical slots.
	_, err := Rebook(existing, "A", RebookRequest{StartTime: "09:00", EndTime: "12:00", OwnerID: "y"})
	require.ErrorAs(t, err, &outOfBounds)

	// A sub-range edit collides the same way.
	_, err = Rebook(existing, "A", RebookRequest{StartTime: "10:00", EndTime: "11:00", OwnerID: "y"})
	require.ErrorAs(t, err, &outOfBounds)

	// y is free on another date, and z is free here.
	existing[1].Date = "2025-03-11"
	res, err := Rebook(existing, "A", RebookRequest{StartTime: "09:00", EndTime: "12:00", OwnerID: "y"})
	require.NoError(t, err)
	assert.Equal(t, "y", res.Updated.OwnerID)

	existing[1].Date = "2025-03-10"
	res, err = Rebook(existing, "A", RebookRequest{StartTime: "09:00", EndTime: "12:00", OwnerID: "z"})
	require.NoError(t, err)
	assert.Equal(t, "z", res.Updated.OwnerID)
}

func TestRebookUnknownSlot(t *testing.T) {
	_, err := Rebook(nil, "nope", RebookRequest{StartTime: "09:00", EndTime: "10:00"})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteWholeSlot(t *testing.T) {
	existing := []models.Slot{mkSlot("E", "x", "2025-03-10", "09:00", "12:00", false)}

	// Nil target removes everything.
	res, err := DeleteRange(existing, "E", nil)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Nil(t, res.Updated)
	assert.Nil(t, res.Remainder)

	// Exact-match target does the same.
	res, err = DeleteRange(existing, "E", &DeleteTarget{StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)
	assert.True(t, res.Removed)
}

func TestDeleteTrimHead(t *testing.T) {
	existing := []models.Slot{mkSlot("F", "x", "2025-03-10", "09:00", "12:00", true)}

	res, err := DeleteRange(existing, "F", &DeleteTarget{StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.False(t, res.Removed)
	require.NotNil(t, res.Updated)
	assert.Equal(t, "F", res.Updated.ID)
	assert.Equal(t, "10:00", res.Updated.StartTime)
	assert.Equal(t, "12:00", res.Updated.EndTime)
	assert.True(t, res.Updated.Booked)
	assert.Nil(t, res.Remainder)
}

func TestDeleteTrimTail(t *testing.T) {
	existing := []models.Slot{mkSlot("F", "x", "2025-03-10", "09:00", "12:00", false)}

	res, err := DeleteRange(existing, "F", &DeleteTarget{StartTime: "10:00", EndTime: "12:00"})
	require.NoError(t, err)
	require.NotNil(t, res.Updated)
	assert.Equal(t, "F", res.Updated.ID)
	assert.Equal(t, "09:00", res.Updated.StartTime)
	assert.Equal(t, "10:00", res.Updated.EndTime)
	assert.Nil(t, res.Remainder)
}

func TestDeleteInteriorSplits(t *testing.T) {
	// Slot B = [09:00,12:00); deleting [10:00,10:30) leaves B shrunk to the
	// head and a fresh slot for the tail.
	existing := []models.Slot{mkSlot("B", "x", "2025-03-10", "09:00", "12:00", true)}

	res, err := DeleteRange(existing, "B", &DeleteTarget{StartTime: "10:00", EndTime: "10:30"})
	require.NoError(t, err)
	assert.False(t, res.Removed)

	require.NotNil(t, res.Updated)
	assert.Equal(t, "B", res.Updated.ID)
	assert.Equal(t, "09:00", res.Updated.StartTime)
	assert.Equal(t, "10:00", res.Updated.EndTime)

	require.NotNil(t, res.Remainder)
	assert.NotEqual(t, "B", res.Remainder.ID)
	assert.Equal(t, "10:30", res.Remainder.StartTime)
	assert.Equal(t, "12:00", res.Remainder.EndTime)
	assert.Equal(t, "x", res.Remainder.OwnerID)
	assert.True(t, res.Remainder.Booked)

	assertDisjoint(t, []models.Slot{*res.Updated, *res.Remainder})
}

func TestDeleteTargetOutsideParentRejected(t *testing.T) {
	existing := []models.Slot{mkSlot("B", "x", "2025-03-10", "09:00", "12:00", false)}
	var outOfBounds *models.OutOfBoundsError

	_, err := DeleteRange(existing, "B", &DeleteTarget{StartTime: "08:00", EndTime: "10:00"})
	require.ErrorAs(t, err, &outOfBounds)

	_, err = DeleteRange(existing, "B", &DeleteTarget{StartTime: "11:00", EndTime: "13:00"})
	require.ErrorAs(t, err, &outOfBounds)
}

func TestDisjointnessAcrossOperationSequence(t *testing.T) {
	slots := map[string]models.Slot{}
	list := func() []models.Slot {
		out := make([]models.Slot, 0, len(slots))
		for _, s := range slots {
			out = append(out, s)
		}
		return out
	}

	a, err := Create(list(), CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "08:00", EndTime: "12:00"})
	require.NoError(t, err)
	slots[a.ID] = a

	b, err := Create(list(), CreateRequest{OwnerID: "x", Date: "2025-03-10", StartTime: "13:00", EndTime: "17:00"})
	require.NoError(t, err)
	slots[b.ID] = b
	assertDisjoint(t, list())

	res, err := Rebook(list(), a.ID, RebookRequest{StartTime: "09:00", EndTime: "10:00", Booked: true})
	require.NoError(t, err)
	slots[res.Updated.ID] = res.Updated
	for _, r := range res.Remainders {
		slots[r.ID] = r
	}
	assertDisjoint(t, list())

	del, err := DeleteRange(list(), b.ID, &DeleteTarget{StartTime: "14:00", EndTime: "15:00"})
	require.NoError(t, err)
	slots[del.Updated.ID] = *del.Updated
	slots[del.Remainder.ID] = *del.Remainder
	assertDisjoint(t, list())

	del, err = DeleteRange(list(), a.ID, nil)
	require.NoError(t, err)
	require.True(t, del.Removed)
	delete(slots, a.ID)
	assertDisjoint(t, list())
}
