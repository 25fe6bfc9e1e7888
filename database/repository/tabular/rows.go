package tabularRepo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotboard/models"
)

// Row layouts. Column 0 is the scan key for every table.
//
//	slots:  id | ownerId | date | startTime | endTime | booked
//	people: id | displayName | color
//	notes:  date | content | color
//
// External rows are untrusted: each decode validates shape and formats and
// rejects rather than guessing at missing fields.

func encodeSlotRow(s models.Slot) []string {
	return []string{s.ID, s.OwnerID, s.Date, s.StartTime, s.EndTime, strconv.FormatBool(s.Booked)}
}

func decodeSlotRow(row []string) (models.Slot, error) {
	if len(row) < 6 {
		return models.Slot{}, fmt.Errorf("slot row has %d columns, want 6", len(row))
	}
	s := models.Slot{
		ID:        strings.TrimSpace(row[0]),
		OwnerID:   strings.TrimSpace(row[1]),
		Date:      strings.TrimSpace(row[2]),
		StartTime: strings.TrimSpace(row[3]),
		EndTime:   strings.TrimSpace(row[4]),
	}
	if s.ID == "" || s.OwnerID == "" {
		return models.Slot{}, fmt.Errorf("slot row missing id or ownerId")
	}
	if _, err := time.Parse(models.DateLayout, s.Date); err != nil {
		return models.Slot{}, fmt.Errorf("slot row has bad date %q", s.Date)
	}
	start, err := models.ParseClock(s.StartTime)
	if err != nil {
		return models.Slot{}, err
	}
	end, err := models.ParseClock(s.EndTime)
	if err != nil {
		return models.Slot{}, err
	}
	if start >= end {
		return models.Slot{}, fmt.Errorf("slot row has inverted range %s-%s", s.StartTime, s.EndTime)
	}
	booked, err := strconv.ParseBool(strings.TrimSpace(row[5]))
	if err != nil {
		return models.Slot{}, fmt.Errorf("slot row has bad booked flag %q", row[5])
	}
	s.Booked = booked
	return s, nil
}

func encodePersonRow(p models.Person) []string {
	return []string{p.ID, p.DisplayName, p.Color}
}

func decodePersonRow(row []string) (models.Person, error) {
	if len(row) < 3 {
		return models.Person{}, fmt.Errorf("person row has %d columns, want 3", len(row))
	}
	p := models.Person{
		ID:          strings.TrimSpace(row[0]),
		DisplayName: strings.TrimSpace(row[1]),
		Color:       strings.TrimSpace(row[2]),
	}
	if p.ID == "" || p.DisplayName == "" {
		return models.Person{}, fmt.Errorf("person row missing id or displayName")
	}
	return p, nil
}

func encodeNoteRow(n models.Note) []string {
	return []string{n.Date, n.Content, n.Color}
}

func decodeNoteRow(row []string) (models.Note, error) {
	if len(row) < 3 {
		return models.Note{}, fmt.Errorf("note row has %d columns, want 3", len(row))
	}
	n := models.Note{
		Date:    strings.TrimSpace(row[0]),
		Content: row[1],
		Color:   strings.TrimSpace(row[2]),
	}
	if _, err := time.Parse(models.DateLayout, n.Date); err != nil {
		return models.Note{}, fmt.Errorf("note row has bad date %q", n.Date)
	}
	return n, nil
}

// normalizeKey is the comparison applied to the key column during scans.
func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
