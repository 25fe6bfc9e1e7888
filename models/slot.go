package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire formats used across every boundary: dates are plain calendar days,
// times are 24-hour clock strings with minute precision.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Slot is the unit of availability: one interviewer, one day, one interval.
// For a given (OwnerID, Date) the stored slots are pairwise non-overlapping.
type Slot struct {
	ID        string `bson:"id" json:"id"`
	OwnerID   string `bson:"ownerId" json:"ownerId"`
	Date      string `bson:"date" json:"date"`           // e.g., "2025-02-25"
	StartTime string `bson:"startTime" json:"startTime"` // e.g., "09:00"
	EndTime   string `bson:"endTime" json:"endTime"`     // e.g., "12:00"
	Booked    bool   `bson:"booked" json:"booked"`
}

// StartMinutes returns StartTime as minutes from midnight.
func (s Slot) StartMinutes() (int, error) {
	return ParseClock(s.StartTime)
}

// EndMinutes returns EndTime as minutes from midnight.
func (s Slot) EndMinutes() (int, error) {
	return ParseClock(s.EndTime)
}

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(v string) (int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", v)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", v)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
