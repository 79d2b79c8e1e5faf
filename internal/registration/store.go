package registration

import (
	"errors"
	"sync"

	"gpa-service/internal/catalog"
	"gpa-service/internal/gpa"

	"github.com/google/uuid"
)

var (
	ErrDuplicateCourse = errors.New("course already registered")
	ErrUnknownCourse   = errors.New("course not found in catalog")
	ErrUnknownGrade    = errors.New("unknown grade")
)

// Course is a registered course within one student session. The definition
// lives in the gpa package so the compute engine does not need to import
// this one; the alias keeps registration.Course as the public name.
type Course = gpa.Course

// Store holds the ordered course list for one session. It is owned by a
// single session but reached from concurrent HTTP handlers, hence the mutex.
type Store struct {
	mu      sync.Mutex
	courses []Course
}

func NewStore() *Store {
	return &Store{}
}

// Add registers a catalog course with the given grade. The catalog identifier
// must resolve and must not already be registered in this session.
func (s *Store) Add(catalogID string, grade catalog.Grade) (Course, error) {
	entry, ok := catalog.ByID(catalogID)
	if !ok {
		return Course{}, ErrUnknownCourse
	}
	point, ok := catalog.Points(grade)
	if !ok {
		return Course{}, ErrUnknownGrade
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.courses {
		if c.CourseID == catalogID {
			return Course{}, ErrDuplicateCourse
		}
	}

	course := Course{
		ID:         uuid.NewString(),
		CourseID:   catalogID,
		CreditUnit: entry.CreditUnit,
		Grade:      grade,
		GradePoint: point,
	}
	s.courses = append(s.courses, course)
	return course, nil
}

// Remove deletes the course with the given identity. Removing an identity
// that is not present is a no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.courses {
		if c.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return
		}
	}
}

// UpdateGrade replaces the grade of a registered course and recaptures its
// point value. Reports whether the course was found; an absent identity is a
// no-op.
func (s *Store) UpdateGrade(id string, grade catalog.Grade) (bool, error) {
	point, ok := catalog.Points(grade)
	if !ok {
		return false, ErrUnknownGrade
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses[i].Grade = grade
			s.courses[i].GradePoint = point
			return true, nil
		}
	}
	return false, nil
}

// ReplaceAll swaps in the full course list from a saved snapshot. Loaded
// snapshots are trusted as already valid; no uniqueness re-validation.
func (s *Store) ReplaceAll(courses []Course) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = make([]Course, len(courses))
	copy(s.courses, courses)
}

// Courses returns a value copy of the list in registration order. Consumers
// (summary, save, export) always work on the state as of the call.
func (s *Store) Courses() []Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Len returns the number of registered courses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.courses)
}
