package model

import "time"

// ClinicalRecord is a note written by a multidisciplinary professional
// about an athlete, optionally tied to the appointment it came from.
type ClinicalRecord struct {
	ID             int64     `json:"id"`
	AthleteID      int64     `json:"athlete_id"`
	ProfessionalID int64     `json:"professional_id"`
	Specialty      Specialty `json:"specialty"`
	AppointmentID  *int64    `json:"appointment_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
