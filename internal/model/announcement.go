package model

import "time"

type AudienceKind string

const (
	AudienceAll    AudienceKind = "all"
	AudienceCourse AudienceKind = "course"
	AudienceRole   AudienceKind = "role"
)

// Announcement is a one-way communication from staff to a chosen audience.
type Announcement struct {
	ID          int64        `json:"id"`
	AuthorID    int64        `json:"author_id"`
	Audience    AudienceKind `json:"audience"`
	CourseID    *int64       `json:"course_id"` // set when audience == course
	Role        Role         `json:"role,omitempty"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	PublishedAt time.Time    `json:"published_at"`
}
