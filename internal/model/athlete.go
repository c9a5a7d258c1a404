package model

import "time"

type Athlete struct {
	ID               int64      `json:"id"`
	UserID           *int64     `json:"user_id"` // nil until the athlete gets a login
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	NationalID       string     `json:"national_id"`
	BirthDate        time.Time  `json:"birth_date"`
	GuardianID       *int64     `json:"guardian_id"`
	EmergencyContact string     `json:"emergency_contact"`
	HasMedicalAlert  bool       `json:"has_medical_alert"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`

	Guardian *Guardian `json:"guardian,omitempty"`
}

type Guardian struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	NationalID   string    `json:"national_id"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Relationship string    `json:"relationship"` // mother, father, other
	CreatedAt    time.Time `json:"created_at"`
}
