package model

import "time"

type SlotStatus string

const (
	SlotStatusFree      SlotStatus = "free"
	SlotStatusReserved  SlotStatus = "reserved"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// Slot is an availability window published by a professional.
// For a given owner no two free/reserved slots may overlap.
type Slot struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"` // publishing professional
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Location  string     `json:"location"`
	Note      string     `json:"note"`
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Overlaps reports whether the slot intersects the [start,end) interval.
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}
