package graduation

import (
	"fmt"

	"gpa-service/internal/catalog"
	"gpa-service/internal/gpa"
)

// Programme graduation rules.
const (
	MinimumUnitsPassed     = 54
	MaxOutstandingReferred = 9
)

// Status is the semantic graduation verdict. Presentation (colors, icons)
// is a client concern and deliberately absent here.
type Status string

const (
	StatusNotStarted   Status = "Not Started"
	StatusDistinction  Status = "Graduate with Distinction"
	StatusPass         Status = "Graduate with Pass"
	StatusReferred     Status = "Referred"
	StatusFailRepeat   Status = "Fail/Repeat"
	StatusFailWithdraw Status = "Fail/Withdraw"
	StatusInProgress   Status = "In Progress"
)

// Verdict is the graduation-eligibility outcome for one course list.
type Verdict struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// Facts are the derived inputs the decision table is evaluated against.
type Facts struct {
	CourseCount         int     `json:"courseCount"`
	GPA                 float64 `json:"gpa"`
	UnitsPassed         int     `json:"unitsPassed"`
	OutstandingUnits    int     `json:"outstandingUnits"`
	CompulsoryPassed    int     `json:"compulsoryPassed"`
	CompulsoryFailed    int     `json:"compulsoryFailed"`
	PassedAllCompulsory bool    `json:"passedAllCompulsory"`
	MeetsMinimumUnits   bool    `json:"meetsMinimumUnits"`
}

// rule is one row of the decision table. Rules are evaluated in order and
// the first match wins, which resolves every boundary ambiguity (a GPA of
// exactly 2.40 with an incomplete compulsory set and no outstanding units
// deliberately falls through to In Progress).
type rule struct {
	match    func(Facts) bool
	status   Status
	describe func(Facts) string
}

var rules = []rule{
	{
		match:    func(f Facts) bool { return f.CourseCount == 0 },
		status:   StatusNotStarted,
		describe: func(Facts) string { return "Add courses to begin tracking" },
	},
	{
		match:    func(f Facts) bool { return f.GPA >= 4.50 && f.PassedAllCompulsory && f.MeetsMinimumUnits },
		status:   StatusDistinction,
		describe: func(Facts) string { return "Outstanding achievement" },
	},
	{
		match:    func(f Facts) bool { return f.GPA >= 2.40 && f.PassedAllCompulsory && f.MeetsMinimumUnits },
		status:   StatusPass,
		describe: func(Facts) string { return "All graduation requirements met" },
	},
	{
		match:  func(f Facts) bool { return f.GPA >= 2.40 && f.OutstandingUnits > 0 && f.OutstandingUnits <= MaxOutstandingReferred },
		status: StatusReferred,
		describe: func(f Facts) string {
			return fmt.Sprintf("%d outstanding units remaining", f.OutstandingUnits)
		},
	},
	{
		match:  func(f Facts) bool { return f.GPA >= 2.40 && f.OutstandingUnits > MaxOutstandingReferred },
		status: StatusFailRepeat,
		describe: func(f Facts) string {
			return fmt.Sprintf("%d outstanding units, more than %d allowed", f.OutstandingUnits, MaxOutstandingReferred)
		},
	},
	{
		match:    func(f Facts) bool { return f.GPA >= 1.50 && f.GPA < 2.40 },
		status:   StatusFailRepeat,
		describe: func(Facts) string { return "GPA below the pass threshold" },
	},
	{
		match:    func(f Facts) bool { return f.GPA < 1.50 },
		status:   StatusFailWithdraw,
		describe: func(Facts) string { return "GPA critically low" },
	},
}

// Evaluate runs the decision table against the course list and its computed
// summary. It is total: every input resolves to a verdict, with In Progress
// as the fallback when no rule matches.
func Evaluate(courses []gpa.Course, summary gpa.Summary) Verdict {
	f := Derive(courses, summary)
	for _, r := range rules {
		if r.match(f) {
			return Verdict{Status: r.status, Description: r.describe(f)}
		}
	}
	return Verdict{Status: StatusInProgress, Description: "Continue adding courses"}
}

// Derive computes the decision-table inputs. Outstanding units count failed
// units across all registered courses, not only compulsory ones. Passing
// the compulsory set requires zero failed compulsory courses and all of the
// programme's compulsory courses registered and passed.
func Derive(courses []gpa.Course, summary gpa.Summary) Facts {
	passedCompulsory := make(map[string]bool)
	failedCompulsory := 0
	outstanding := 0

	for _, c := range courses {
		if c.GradePoint == 0 {
			outstanding += c.CreditUnit
		}
		if !catalog.IsCompulsory(c.CourseID) {
			continue
		}
		if c.GradePoint > 0 {
			passedCompulsory[c.CourseID] = true
		} else {
			failedCompulsory++
		}
	}

	return Facts{
		CourseCount:         len(courses),
		GPA:                 summary.GPA,
		UnitsPassed:         summary.TotalUnitsPassed,
		OutstandingUnits:    outstanding,
		CompulsoryPassed:    len(passedCompulsory),
		CompulsoryFailed:    failedCompulsory,
		PassedAllCompulsory: failedCompulsory == 0 && len(passedCompulsory) == catalog.CompulsoryCount(),
		MeetsMinimumUnits:   summary.TotalUnitsPassed >= MinimumUnitsPassed,
	}
}
