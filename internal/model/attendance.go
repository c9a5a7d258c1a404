package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceJustified AttendanceStatus = "justified"
)

// AttendanceRecord is one athlete's attendance for one course session date.
type AttendanceRecord struct {
	ID          int64            `json:"id"`
	CourseID    int64            `json:"course_id"`
	AthleteID   int64            `json:"athlete_id"`
	SessionDate time.Time        `json:"session_date"`
	Status      AttendanceStatus `json:"status"`
	CheckedInAt *time.Time       `json:"checked_in_at"`
	Lat         *float64         `json:"lat"`
	Lng         *float64         `json:"lng"`
	Verified    bool             `json:"verified"` // geolocation was inside the venue radius
	RecordedBy  int64            `json:"recorded_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// StaffSession is a teacher work shift bounded by clock-in and clock-out.
type StaffSession struct {
	ID         int64      `json:"id"`
	TeacherID  int64      `json:"teacher_id"`
	ClockInAt  time.Time  `json:"clock_in_at"`
	ClockOutAt *time.Time `json:"clock_out_at"`
	InLat      *float64   `json:"in_lat"`
	InLng      *float64   `json:"in_lng"`
	OutLat     *float64   `json:"out_lat"`
	OutLng     *float64   `json:"out_lng"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Duration returns the worked time, zero while the session is still open.
func (s *StaffSession) Duration() time.Duration {
	if s.ClockOutAt == nil {
		return 0
	}
	return s.ClockOutAt.Sub(s.ClockInAt)
}
