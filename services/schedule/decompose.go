package schedule

import (
	"strings"

	"slotboard/models"
)

// DefaultStepMinutes is the atomic display unit size.
const DefaultStepMinutes = 30

// maxUnitsPerSlot bounds decomposition so malformed data can never spin the
// loop; 50 half-hour units already covers a full day.
const maxUnitsPerSlot = 50

const unitKeySep = "@"

// UnitKey derives a rendering key for the unit of slotID starting at
// startMinutes. The key embeds the source id so ParseUnitKey can recover it
// without a lookup.
func UnitKey(slotID string, startMinutes int) string {
	return slotID + unitKeySep + models.FormatClock(startMinutes)
}

// ParseUnitKey recovers the source slot id and the unit's start time from a
// rendering key. Pure string surgery; ok is false for malformed keys.
func ParseUnitKey(key string) (slotID, startTime string, ok bool) {
	i := strings.LastIndex(key, unitKeySep)
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// Decompose slices a slot into step-sized display units in chronological
// order. A trailing remainder shorter than the step is dropped. If the slot
// does not parse as a forward range the slot itself is returned as a single
// unit rather than nothing, so broken rows still render.
func Decompose(slot models.Slot, stepMinutes int) []models.DayUnit {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	start, err1 := slot.StartMinutes()
	end, err2 := slot.EndMinutes()
	if err1 != nil || err2 != nil || start >= end {
		return []models.DayUnit{{
			Key:       slot.ID + unitKeySep + slot.StartTime,
			SlotID:    slot.ID,
			OwnerID:   slot.OwnerID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Booked:    slot.Booked,
		}}
	}

	var units []models.DayUnit
	for cur := start; cur+stepMinutes <= end && len(units) < maxUnitsPerSlot; cur += stepMinutes {
		units = append(units, models.DayUnit{
			Key:       UnitKey(slot.ID, cur),
			SlotID:    slot.ID,
			OwnerID:   slot.OwnerID,
			Date:      slot.Date,
			StartTime: models.FormatClock(cur),
			EndTime:   models.FormatClock(cur + stepMinutes),
			Booked:    slot.Booked,
		})
	}
	return units
}
