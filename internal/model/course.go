package model

import "time"

// Course is a scheduled training group for one discipline at one venue.
type Course struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Discipline    string    `json:"discipline"`
	TeacherID     int64     `json:"teacher_id"`
	VenueName     string    `json:"venue_name"`
	VenueLat      float64   `json:"venue_lat"`
	VenueLng      float64   `json:"venue_lng"`
	CheckInRadius float64   `json:"check_in_radius_m"` // meters
	Schedule      string    `json:"schedule"`          // display text, e.g. "Mon/Wed 18:00-19:30"
	Capacity      int       `json:"capacity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`

	Enrolled int `json:"enrolled,omitempty"`
}

type Enrollment struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"course_id"`
	AthleteID  int64     `json:"athlete_id"`
	EnrolledAt time.Time `json:"enrolled_at"`

	Athlete *Athlete `json:"athlete,omitempty"`
}
