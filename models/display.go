package models

// DayUnit is a fixed-duration slice of a Slot produced only for calendar
// rendering. It is derived on every read and never persisted; Key maps back
// to the source slot without a lookup.
type DayUnit struct {
	Key       string `json:"key"`
	SlotID    string `json:"slotId"`
	OwnerID   string `json:"ownerId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Booked    bool   `json:"booked"`
}
