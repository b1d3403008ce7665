//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Mentor represents a mentorship directory entry.
type Mentor struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Expertise  []string `json:"expertise,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Rating     float64  `json:"rating"`
	Sessions   int      `json:"sessions"`
	HourlyRate float64  `json:"hourly_rate,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Avatar     string   `json:"avatar,omitempty"`
	Available  bool     `json:"available"`
}

// MentorshipRequestStatus represents the lifecycle state of a mentorship request.
type MentorshipRequestStatus string

const (
	MentorshipRequestPending  MentorshipRequestStatus = "pending"
	MentorshipRequestAccepted MentorshipRequestStatus = "accepted"
	MentorshipRequestRejected MentorshipRequestStatus = "rejected"
)

// Valid returns true if the request status is valid.
func (s MentorshipRequestStatus) Valid() bool {
	switch s {
	case MentorshipRequestPending, MentorshipRequestAccepted, MentorshipRequestRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the request status.
func (s MentorshipRequestStatus) String() string {
	return string(s)
}

// MentorshipRequest represents a student's request for mentorship.
type MentorshipRequest struct {
	ID        int64                   `json:"id"`
	MentorID  int64                   `json:"mentor"`
	StudentID int64                   `json:"student"`
	Message   string                  `json:"message,omitempty"`
	Status    MentorshipRequestStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at,omitempty"`
}

// MentorshipSession represents a scheduled mentorship session.
type MentorshipSession struct {
	ID          int64     `json:"id"`
	MentorID    int64     `json:"mentor"`
	StudentID   int64     `json:"student"`
	Topic       string    `json:"topic,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_minutes,omitempty"`
	Status      string    `json:"status"`
}

// BookSessionInput is the payload for booking a mentorship session.
type BookSessionInput struct {
	MentorID    int64     `json:"mentor"`
	Topic       string    `json:"topic,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_minutes,omitempty"`
}
