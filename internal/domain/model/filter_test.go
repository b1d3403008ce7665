//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCourses() []Course {
	return []Course{
		{
			ID:          1,
			Title:       "Advanced React Development",
			Description: "Master modern React patterns, hooks, and state management.",
			Instructor:  "Sarah Johnson",
			Category:    "Frontend",
			Level:       CourseLevelAdvanced,
		},
		{
			ID:          2,
			Title:       "Data Science with Python",
			Description: "Learn data analysis, visualization, and machine learning.",
			Instructor:  "Dr. Michael Chen",
			Category:    "Data Science",
			Level:       CourseLevelIntermediate,
		},
		{
			ID:          3,
			Title:       "Full-Stack Web Development",
			Description: "Build complete web applications from frontend to backend.",
			Instructor:  "John Smith",
			Category:    "Full Stack",
			Level:       CourseLevelIntermediate,
		},
	}
}

func TestCourseFilter_SearchMatchesTitleDescriptionInstructor(t *testing.T) {
	courses := sampleCourses()

	byTitle := CourseFilter{Search: "react"}.Apply(courses)
	assert.Len(t, byTitle, 1)
	assert.Equal(t, int64(1), byTitle[0].ID)

	byDescription := CourseFilter{Search: "machine learning"}.Apply(courses)
	assert.Len(t, byDescription, 1)
	assert.Equal(t, int64(2), byDescription[0].ID)

	byInstructor := CourseFilter{Search: "john"}.Apply(courses)
	assert.Len(t, byInstructor, 2) // Sarah Johnson and John Smith
}

func TestCourseFilter_CategoryAndLevel(t *testing.T) {
	courses := sampleCourses()

	assert.Len(t, CourseFilter{Category: "Frontend"}.Apply(courses), 1)
	assert.Len(t, CourseFilter{Category: FilterAll}.Apply(courses), 3)
	assert.Len(t, CourseFilter{Level: "Intermediate"}.Apply(courses), 2)
	assert.Empty(t, CourseFilter{Category: "Frontend", Level: "Intermediate"}.Apply(courses))
}

func TestCourseFilter_AllDimensionsCombine(t *testing.T) {
	courses := sampleCourses()

	got := CourseFilter{Search: "development", Category: "Full Stack", Level: "Intermediate"}.Apply(courses)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestCourseFilter_EmptyFilterMatchesEverything(t *testing.T) {
	courses := sampleCourses()
	assert.Equal(t, courses, CourseFilter{}.Apply(courses))
}

func sampleMentors() []Mentor {
	return []Mentor{
		{
			ID:         1,
			Name:       "Sarah Johnson",
			Title:      "Senior Frontend Engineer",
			Company:    "TechCorp",
			Expertise:  []string{"React", "TypeScript", "Design Systems"},
			Experience: "7+ years",
		},
		{
			ID:         2,
			Name:       "Michael Chen",
			Title:      "Data Scientist",
			Company:    "DataWorks",
			Expertise:  []string{"Python", "Machine Learning"},
			Experience: "10+ years",
		},
	}
}

func TestMentorFilter_SearchMatchesExpertiseTags(t *testing.T) {
	mentors := sampleMentors()

	got := MentorFilter{Search: "typescript"}.Apply(mentors)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestMentorFilter_ExpertiseMatchesTagOrTitle(t *testing.T) {
	mentors := sampleMentors()

	// "Frontend" only appears in the first mentor's title, not their tags.
	byTitle := MentorFilter{Expertise: "Frontend"}.Apply(mentors)
	assert.Len(t, byTitle, 1)
	assert.Equal(t, int64(1), byTitle[0].ID)

	byTag := MentorFilter{Expertise: "python"}.Apply(mentors)
	assert.Len(t, byTag, 1)
	assert.Equal(t, int64(2), byTag[0].ID)
}

func TestMentorFilter_ExperienceExact(t *testing.T) {
	mentors := sampleMentors()

	assert.Len(t, MentorFilter{Experience: "10+ years"}.Apply(mentors), 1)
	assert.Len(t, MentorFilter{Experience: FilterAll}.Apply(mentors), 2)
	assert.Empty(t, MentorFilter{Experience: "5+ years"}.Apply(mentors))
}

func TestMentorFilter_CombinedDimensions(t *testing.T) {
	mentors := sampleMentors()

	got := MentorFilter{Search: "chen", Expertise: "machine learning", Experience: "10+ years"}.Apply(mentors)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}
