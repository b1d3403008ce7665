//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// FilterAll is the wildcard value that disables a filter dimension.
const FilterAll = "all"

// CourseFilter holds the multi-field predicate applied to a course list.
// Search matches title, description, or instructor (case-insensitive
// substring); Category and Level match exactly unless empty or "all".
type CourseFilter struct {
	Search   string
	Category string
	Level    string
}

// Match reports whether a course satisfies every dimension of the filter.
func (f CourseFilter) Match(c Course) bool {
	if !matchesAny(f.Search, c.Title, c.Description, c.Instructor) {
		return false
	}
	if !matchesExact(f.Category, c.Category) {
		return false
	}
	return matchesExact(f.Level, c.Level.String())
}

// Apply returns the courses matching the filter, preserving order.
func (f CourseFilter) Apply(courses []Course) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// MentorFilter holds the multi-field predicate applied to the mentor
// directory. Search matches name, title, company, or any expertise tag;
// Expertise matches any tag or the title; Experience matches exactly.
type MentorFilter struct {
	Search     string
	Expertise  string
	Experience string
}

// Match reports whether a mentor satisfies every dimension of the filter.
func (f MentorFilter) Match(m Mentor) bool {
	if !matchesAny(f.Search, append([]string{m.Name, m.Title, m.Company}, m.Expertise...)...) {
		return false
	}
	if !isWildcard(f.Expertise) {
		hit := containsFold(m.Title, f.Expertise)
		for _, skill := range m.Expertise {
			if hit {
				break
			}
			hit = containsFold(skill, f.Expertise)
		}
		if !hit {
			return false
		}
	}
	return matchesExact(f.Experience, m.Experience)
}

// Apply returns the mentors matching the filter, preserving order.
func (f MentorFilter) Apply(mentors []Mentor) []Mentor {
	out := make([]Mentor, 0, len(mentors))
	for _, m := range mentors {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func isWildcard(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// matchesAny reports whether the term is a case-insensitive substring of any
// candidate. An empty term matches everything.
func matchesAny(term string, candidates ...string) bool {
	if term == "" {
		return true
	}
	for _, c := range candidates {
		if containsFold(c, term) {
			return true
		}
	}
	return false
}

func matchesExact(want, got string) bool {
	return isWildcard(want) || want == got
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
