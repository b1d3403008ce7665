package eduapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eduhub/eduhub-go/internal/domain/model"
)

const pathCourses = "/courses/"

// CourseQuery narrows a catalog listing server-side. Zero values are omitted.
type CourseQuery struct {
	Search   string
	Category string
	Level    model.CourseLevel
}

func (q CourseQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Level != "" {
		v.Set("level", q.Level.String())
	}
	return v
}

// Courses lists the catalog, optionally filtered server-side.
func (c *Client) Courses(ctx context.Context, q CourseQuery) ([]model.Course, error) {
	var courses []model.Course
	err := c.get(ctx, pathCourses, q.values(), &courses, "Could not load courses.")
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Course fetches one course by ID.
func (c *Client) Course(ctx context.Context, id int64) (model.Course, error) {
	var course model.Course
	err := c.get(ctx, fmt.Sprintf("%s%d/", pathCourses, id), nil, &course,
		"Could not load the course.")
	if err != nil {
		return model.Course{}, err
	}
	return course, nil
}

// Enroll enrolls the current user in a course.
func (c *Client) Enroll(ctx context.Context, courseID int64) error {
	return c.post(ctx, fmt.Sprintf("%s%d/enroll/", pathCourses, courseID), nil, nil,
		"Could not enroll in the course.")
}

// EnrolledCourses lists the courses the current user is enrolled in.
func (c *Client) EnrolledCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := c.get(ctx, pathCourses+"enrolled/", nil, &courses,
		"Could not load your courses.")
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// CourseCategories lists the distinct catalog categories.
func (c *Client) CourseCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := c.get(ctx, pathCourses+"categories/", nil, &categories,
		"Could not load course categories.")
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CourseLessons lists a course's lessons in order.
func (c *Client) CourseLessons(ctx context.Context, courseID int64) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := c.get(ctx, fmt.Sprintf("%s%d/lessons/", pathCourses, courseID), nil, &lessons,
		"Could not load lessons.")
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// Lesson fetches a single lesson.
func (c *Client) Lesson(ctx context.Context, courseID, lessonID int64) (model.Lesson, error) {
	var lesson model.Lesson
	err := c.get(ctx, fmt.Sprintf("%s%d/lessons/%d/", pathCourses, courseID, lessonID), nil,
		&lesson, "Could not load the lesson.")
	if err != nil {
		return model.Lesson{}, err
	}
	return lesson, nil
}

// CourseProgress fetches the current user's progress through a course.
func (c *Client) CourseProgress(ctx context.Context, courseID int64) (model.CourseProgress, error) {
	var progress model.CourseProgress
	err := c.get(ctx, fmt.Sprintf("%s%d/progress/", pathCourses, courseID), nil, &progress,
		"Could not load course progress.")
	if err != nil {
		return model.CourseProgress{}, err
	}
	return progress, nil
}

// RecordLessonProgress records progress against a lesson.
func (c *Client) RecordLessonProgress(ctx context.Context, courseID int64, update model.LessonProgressUpdate) error {
	return c.post(ctx, fmt.Sprintf("%s%d/progress/", pathCourses, courseID), update, nil,
		"Could not save lesson progress.")
}
