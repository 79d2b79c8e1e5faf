package catalog_test

import (
	"testing"

	"gpa-service/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	course, ok := catalog.ByID("mit899")
	require.True(t, ok)
	assert.Equal(t, "MIT 899", course.Code)
	assert.Equal(t, "Project", course.Name)
	assert.Equal(t, 6, course.CreditUnit)

	_, ok = catalog.ByID("mit999")
	assert.False(t, ok)
}

func TestCompulsorySet(t *testing.T) {
	assert.Equal(t, 13, catalog.CompulsoryCount())

	assert.True(t, catalog.IsCompulsory("mit801"))
	assert.True(t, catalog.IsCompulsory("mit899"))
	assert.False(t, catalog.IsCompulsory("mit807"))
	assert.False(t, catalog.IsCompulsory("unknown"))

	// Every compulsory course must resolve in the catalog.
	compulsory := 0
	for _, c := range catalog.Courses() {
		if catalog.IsCompulsory(c.ID) {
			compulsory++
		}
	}
	assert.Equal(t, catalog.CompulsoryCount(), compulsory)
}

func TestGradeScale(t *testing.T) {
	grades := catalog.Grades()
	require.Len(t, grades, 6)

	// Strictly descending point values from 5 down to 0.
	prev := 6
	zeros := 0
	for _, g := range grades {
		p, ok := catalog.Points(g)
		require.True(t, ok)
		assert.Less(t, p, prev)
		prev = p
		if p == 0 {
			zeros++
		}
	}
	assert.Equal(t, 1, zeros)

	// F is the lowest-ranked letter and the only failing grade.
	last := grades[len(grades)-1]
	assert.Equal(t, catalog.GradeF, last)
	p, _ := catalog.Points(last)
	assert.Equal(t, 0, p)

	_, ok := catalog.Points(catalog.Grade("G"))
	assert.False(t, ok)
}
