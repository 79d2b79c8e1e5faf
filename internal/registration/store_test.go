package registration_test

import (
	"testing"

	"gpa-service/internal/catalog"
	"gpa-service/internal/registration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAdd(t *testing.T) {
	t.Run("CapturesCatalogUnitsAndGradePoint", func(t *testing.T) {
		store := registration.NewStore()

		course, err := store.Add("mit899", catalog.GradeB)
		require.NoError(t, err)

		assert.NotEmpty(t, course.ID)
		assert.Equal(t, "mit899", course.CourseID)
		assert.Equal(t, 6, course.CreditUnit)
		assert.Equal(t, catalog.GradeB, course.Grade)
		assert.Equal(t, 4, course.GradePoint)
	})

	t.Run("RejectsDuplicateCatalogCourse", func(t *testing.T) {
		store := registration.NewStore()

		_, err := store.Add("mit801", catalog.GradeA)
		require.NoError(t, err)

		_, err = store.Add("mit801", catalog.GradeC)
		assert.ErrorIs(t, err, registration.ErrDuplicateCourse)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("RejectsUnknownCourse", func(t *testing.T) {
		store := registration.NewStore()

		_, err := store.Add("mit999", catalog.GradeA)
		assert.ErrorIs(t, err, registration.ErrUnknownCourse)
	})

	t.Run("RejectsUnknownGrade", func(t *testing.T) {
		store := registration.NewStore()

		_, err := store.Add("mit801", catalog.Grade("X"))
		assert.ErrorIs(t, err, registration.ErrUnknownGrade)
	})

	t.Run("PreservesRegistrationOrder", func(t *testing.T) {
		store := registration.NewStore()

		for _, id := range []string{"mit803", "mit801", "mit802"} {
			_, err := store.Add(id, catalog.GradeA)
			require.NoError(t, err)
		}

		courses := store.Courses()
		require.Len(t, courses, 3)
		assert.Equal(t, "mit803", courses[0].CourseID)
		assert.Equal(t, "mit801", courses[1].CourseID)
		assert.Equal(t, "mit802", courses[2].CourseID)
	})
}

func TestStoreRemove(t *testing.T) {
	store := registration.NewStore()

	course, err := store.Add("mit801", catalog.GradeA)
	require.NoError(t, err)

	store.Remove(course.ID)
	assert.Equal(t, 0, store.Len())

	// Removing again is a no-op.
	store.Remove(course.ID)
	store.Remove("no-such-id")
	assert.Equal(t, 0, store.Len())
}

func TestStoreUpdateGrade(t *testing.T) {
	t.Run("RecapturesGradePoint", func(t *testing.T) {
		store := registration.NewStore()

		course, err := store.Add("mit801", catalog.GradeF)
		require.NoError(t, err)

		found, err := store.UpdateGrade(course.ID, catalog.GradeA)
		require.NoError(t, err)
		assert.True(t, found)

		updated := store.Courses()[0]
		assert.Equal(t, catalog.GradeA, updated.Grade)
		assert.Equal(t, 5, updated.GradePoint)
		assert.Equal(t, course.ID, updated.ID)
	})

	t.Run("UnknownIdentityIsNoOp", func(t *testing.T) {
		store := registration.NewStore()

		found, err := store.UpdateGrade("no-such-id", catalog.GradeA)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("RejectsUnknownGrade", func(t *testing.T) {
		store := registration.NewStore()

		course, err := store.Add("mit801", catalog.GradeA)
		require.NoError(t, err)

		_, err = store.UpdateGrade(course.ID, catalog.Grade("Z"))
		assert.ErrorIs(t, err, registration.ErrUnknownGrade)
		assert.Equal(t, catalog.GradeA, store.Courses()[0].Grade)
	})
}

func TestStoreReplaceAll(t *testing.T) {
	store := registration.NewStore()

	_, err := store.Add("mit801", catalog.GradeA)
	require.NoError(t, err)

	snapshot := []registration.Course{
		{ID: "a", CourseID: "mit802", CreditUnit: 3, Grade: catalog.GradeB, GradePoint: 4},
		{ID: "b", CourseID: "mit803", CreditUnit: 3, Grade: catalog.GradeC, GradePoint: 3},
	}
	store.ReplaceAll(snapshot)

	courses := store.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "mit802", courses[0].CourseID)

	// The store holds its own copy of the snapshot.
	snapshot[0].CourseID = "mutated"
	assert.Equal(t, "mit802", store.Courses()[0].CourseID)
}

func TestStoreCoursesReturnsCopy(t *testing.T) {
	store := registration.NewStore()

	_, err := store.Add("mit801", catalog.GradeA)
	require.NoError(t, err)

	courses := store.Courses()
	courses[0].GradePoint = 0

	assert.Equal(t, 5, store.Courses()[0].GradePoint)
}

func TestManager(t *testing.T) {
	manager := registration.NewManager()

	_, ok := manager.Get("230000001")
	assert.False(t, ok)

	store := manager.Open("230000001")
	require.NotNil(t, store)

	// Open is idempotent per matric number.
	assert.Same(t, store, manager.Open("230000001"))

	got, ok := manager.Get("230000001")
	require.True(t, ok)
	assert.Same(t, store, got)

	// Different students get independent stores.
	other := manager.Open("230000002")
	assert.NotSame(t, store, other)

	manager.Close("230000001")
	_, ok = manager.Get("230000001")
	assert.False(t, ok)

	// A fresh login after logout starts from an empty store.
	assert.NotSame(t, store, manager.Open("230000001"))
}
