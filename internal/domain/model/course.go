//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// CourseLevel represents the difficulty level of a course.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
)

// Valid returns true if the course level is valid.
func (l CourseLevel) Valid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	default:
		return false
	}
}

// String returns the string representation of the course level.
func (l CourseLevel) String() string {
	return string(l)
}

// Course represents a catalog course as served by the courses endpoint.
type Course struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Instructor  string      `json:"instructor"`
	Category    string      `json:"category"`
	Level       CourseLevel `json:"level"`
	Duration    string      `json:"duration"`
	Students    int         `json:"students"`
	Rating      float64     `json:"rating"`
	Reviews     int         `json:"reviews"`
	Price       float64     `json:"price"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// Lesson represents a single lesson within a course.
type Lesson struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"course_id"`
	Title     string `json:"title"`
	Duration  string `json:"duration,omitempty"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed"`
}

// CourseProgress summarizes a user's progress through a course.
type CourseProgress struct {
	CourseID         int64     `json:"course_id"`
	CompletedLessons int       `json:"completed_lessons"`
	TotalLessons     int       `json:"total_lessons"`
	Percent          float64   `json:"percent"`
	LastActivity     time.Time `json:"last_activity,omitempty"`
}

// LessonProgressUpdate is the payload for recording lesson progress.
type LessonProgressUpdate struct {
	LessonID  int64   `json:"lesson_id"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}
