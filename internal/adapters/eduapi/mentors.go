package eduapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eduhub/eduhub-go/internal/domain/model"
)

const (
	pathMentors            = "/mentors/"
	pathMentorshipRequests = "/mentorship/requests/"
	pathMentorshipSessions = "/mentorship/sessions/"
	pathSessionBook        = "/mentorship/sessions/book/"
)

// MentorQuery narrows a mentor listing server-side. Zero values are omitted.
type MentorQuery struct {
	Search     string
	Expertise  string
	Experience string
}

func (q MentorQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Expertise != "" {
		v.Set("expertise", q.Expertise)
	}
	if q.Experience != "" {
		v.Set("experience", q.Experience)
	}
	return v
}

// Mentors lists the mentor directory, optionally filtered server-side.
func (c *Client) Mentors(ctx context.Context, q MentorQuery) ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := c.get(ctx, pathMentors, q.values(), &mentors, "Could not load mentors.")
	if err != nil {
		return nil, err
	}
	return mentors, nil
}

// Mentor fetches one mentor by ID.
func (c *Client) Mentor(ctx context.Context, id int64) (model.Mentor, error) {
	var mentor model.Mentor
	err := c.get(ctx, fmt.Sprintf("%s%d/", pathMentors, id), nil, &mentor,
		"Could not load the mentor profile.")
	if err != nil {
		return model.Mentor{}, err
	}
	return mentor, nil
}

// RequestMentorship sends a mentorship request to a mentor.
func (c *Client) RequestMentorship(ctx context.Context, mentorID int64, message string) (model.MentorshipRequest, error) {
	body := map[string]any{"mentor": mentorID, "message": message}
	var req model.MentorshipRequest
	err := c.post(ctx, pathMentorshipRequests, body, &req,
		"Could not send the mentorship request.")
	if err != nil {
		return model.MentorshipRequest{}, err
	}
	return req, nil
}

// MentorshipRequests lists the current user's mentorship requests.
func (c *Client) MentorshipRequests(ctx context.Context) ([]model.MentorshipRequest, error) {
	var reqs []model.MentorshipRequest
	err := c.get(ctx, pathMentorshipRequests, nil, &reqs,
		"Could not load mentorship requests.")
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateMentorshipRequest changes a request's status. Mentors accept or
// reject; the backend enforces who may do what.
func (c *Client) UpdateMentorshipRequest(ctx context.Context, requestID int64, status model.MentorshipRequestStatus) (model.MentorshipRequest, error) {
	var req model.MentorshipRequest
	err := c.patch(ctx, fmt.Sprintf("%s%d/", pathMentorshipRequests, requestID),
		map[string]any{"status": status}, &req,
		"Could not update the mentorship request.")
	if err != nil {
		return model.MentorshipRequest{}, err
	}
	return req, nil
}

// MentorshipSessions lists the current user's scheduled sessions.
func (c *Client) MentorshipSessions(ctx context.Context) ([]model.MentorshipSession, error) {
	var sessions []model.MentorshipSession
	err := c.get(ctx, pathMentorshipSessions, nil, &sessions,
		"Could not load mentorship sessions.")
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// BookSession books a mentorship session.
func (c *Client) BookSession(ctx context.Context, in model.BookSessionInput) (model.MentorshipSession, error) {
	var session model.MentorshipSession
	err := c.post(ctx, pathSessionBook, in, &session,
		"Could not book the session.")
	if err != nil {
		return model.MentorshipSession{}, err
	}
	return session, nil
}

// CancelSession cancels a booked session.
func (c *Client) CancelSession(ctx context.Context, sessionID int64) error {
	return c.del(ctx, fmt.Sprintf("%s%d/", pathMentorshipSessions, sessionID),
		"Could not cancel the session.")
}
