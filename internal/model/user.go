package model

import "time"

// Role is the closed set of actor types in the program.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCoordinator  Role = "coordinator"
	RoleTeacher      Role = "teacher"
	RoleAthlete      Role = "athlete"
	RoleGuardian     Role = "guardian"
	RoleProfessional Role = "professional"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleAthlete, RoleGuardian, RoleProfessional:
		return true
	}
	return false
}

// Specialty of a multidisciplinary professional.
type Specialty string

const (
	SpecialtyMedicine   Specialty = "medicine"
	SpecialtyPsychology Specialty = "psychology"
	SpecialtyNutrition  Specialty = "nutrition"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	Specialty    Specialty `json:"specialty,omitempty"` // only for professionals
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
