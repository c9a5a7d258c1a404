package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
)

// Appointment binds a subject (athlete) to a professional's reserved slot.
// It is only ever created together with the slot reservation, in the same
// transaction; its time window is immutable after creation.
type Appointment struct {
	ID             int64             `json:"id"`
	SlotID         int64             `json:"slot_id"`
	ProfessionalID int64             `json:"professional_id"`
	SubjectID      int64             `json:"subject_id"` // athlete being attended
	BookedByID     int64             `json:"booked_by_id"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Status         AppointmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Joined for responses, not stored on the row.
	Slot         *Slot `json:"slot,omitempty"`
	Professional *User `json:"professional,omitempty"`
}
