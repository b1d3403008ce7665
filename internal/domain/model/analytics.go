//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// DashboardStats summarizes a user's activity for the dashboard view.
type DashboardStats struct {
	EnrolledCourses  int     `json:"enrolled_courses"`
	CompletedCourses int     `json:"completed_courses"`
	HoursLearned     float64 `json:"hours_learned"`
	CurrentStreak    int     `json:"current_streak"`
	MentorSessions   int     `json:"mentor_sessions"`
	Achievements     int     `json:"achievements"`
}

// ProgressPoint is a single sample in a progress report series.
type ProgressPoint struct {
	Label   string  `json:"label"`
	Hours   float64 `json:"hours"`
	Lessons int     `json:"lessons"`
}

// ProgressReport is a time-bucketed learning progress series.
type ProgressReport struct {
	Timeframe string          `json:"timeframe"`
	Points    []ProgressPoint `json:"points"`
}

// UserStats aggregates lifetime learning statistics.
type UserStats struct {
	TotalHours     float64  `json:"total_hours"`
	LessonsDone    int      `json:"lessons_done"`
	AverageRating  float64  `json:"average_rating"`
	TopSkills      []string `json:"top_skills,omitempty"`
	LongestStreak  int      `json:"longest_streak"`
	SessionsBooked int      `json:"sessions_booked"`
}
