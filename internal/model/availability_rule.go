package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule is a weekly recurrence template owned by a professional.
// Rules created together share a group id so they can be managed as a unit.
type AvailabilityRule struct {
	ID              int64     `json:"id"`
	GroupID         uuid.UUID `json:"group_id"`
	OwnerID         int64     `json:"owner_id"`
	Weekday         int       `json:"weekday"`      // 0 = Sunday, 6 = Saturday
	WindowStartMin  int       `json:"window_start"` // minutes from midnight
	WindowEndMin    int       `json:"window_end"`
	DurationMinutes int       `json:"duration_minutes"`
	StepMinutes     int       `json:"step_minutes"`
	Location        string    `json:"location"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
