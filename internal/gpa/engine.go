package gpa

import "gpa-service/internal/catalog"

// Course is a registered course within one student session. Credit units and
// the grade point are captured at registration time and never re-derived
// from the catalog, so a saved snapshot stays computable even if the catalog
// changes underneath it.
type Course struct {
	ID         string        `json:"id"`
	CourseID   string        `json:"courseId"`
	CreditUnit int           `json:"creditUnit"`
	Grade      catalog.Grade `json:"grade"`
	GradePoint int           `json:"gradePoint"`
}

// Performance class labels, first matching threshold wins.
const (
	ClassDistinction  = "Distinction"
	ClassPass         = "Pass"
	ClassFailRepeat   = "Fail/Repeat"
	ClassFailWithdraw = "Fail/Withdraw"
)

// Summary is the derived result of one computation pass. It is never stored
// on its own; it is recomputed from the registered course list on demand.
type Summary struct {
	GPA              float64 `json:"gpa"`
	TotalUnitsTaken  int     `json:"totalUnitsTaken"`
	TotalUnitsPassed int     `json:"totalUnitsPassed"`
	TotalGradePoints int     `json:"totalGradePoints"`
	Class            string  `json:"gpaClass"`
}

// Compute derives the cumulative GPA and unit totals from the registered
// course list. Failing courses count toward units taken but not units
// passed. With no courses the GPA is exactly 0.
func Compute(courses []Course) Summary {
	var gradePoints, unitsTaken, unitsPassed int
	for _, c := range courses {
		gradePoints += c.GradePoint * c.CreditUnit
		unitsTaken += c.CreditUnit
		if c.GradePoint > 0 {
			unitsPassed += c.CreditUnit
		}
	}

	var value float64
	if unitsTaken > 0 {
		value = float64(gradePoints) / float64(unitsTaken)
	}

	return Summary{
		GPA:              value,
		TotalUnitsTaken:  unitsTaken,
		TotalUnitsPassed: unitsPassed,
		TotalGradePoints: gradePoints,
		Class:            Class(value),
	}
}

// Class maps a GPA to its performance class. Thresholds are inclusive lower
// bounds evaluated top to bottom.
func Class(gpa float64) string {
	switch {
	case gpa >= 4.50:
		return ClassDistinction
	case gpa >= 2.40:
		return ClassPass
	case gpa >= 1.50:
		return ClassFailRepeat
	default:
		return ClassFailWithdraw
	}
}
