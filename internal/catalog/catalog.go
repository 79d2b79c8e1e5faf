package catalog

// Course is a single entry in the MIT programme course catalog.
type Course struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	CreditUnit int    `json:"creditUnit"`
}

// Grade is a letter grade on the programme's 5-point scale.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

var courses = []Course{
	// Compulsory courses
	{ID: "mit801", Code: "MIT 801", Name: "Introduction to Information Technology", CreditUnit: 3},
	{ID: "mit802", Code: "MIT 802", Name: "Introduction to Database Management", CreditUnit: 3},
	{ID: "mit803", Code: "MIT 803", Name: "Programming Languages", CreditUnit: 3},
	{ID: "mit804", Code: "MIT 804", Name: "Object-Oriented Programming", CreditUnit: 3},
	{ID: "mit805", Code: "MIT 805", Name: "Computer Systems and Organization", CreditUnit: 3},
	{ID: "mit806", Code: "MIT 806", Name: "IT and LAW", CreditUnit: 3},
	{ID: "mit808", Code: "MIT 808", Name: "Concepts and Application of E-Business", CreditUnit: 2},
	{ID: "mit811", Code: "MIT 811", Name: "Analysis and Design of Business Information Systems", CreditUnit: 3},
	{ID: "mit812", Code: "MIT 812", Name: "Computer Networks and Communication Protocol", CreditUnit: 3},
	{ID: "mit815", Code: "MIT 815", Name: "Internet Programming and Applications", CreditUnit: 3},
	{ID: "mit821", Code: "MIT 821", Name: "Software Systems", CreditUnit: 3},
	{ID: "mit824", Code: "MIT 824", Name: "Seminar on Current Topics in IT", CreditUnit: 3},
	{ID: "mit899", Code: "MIT 899", Name: "Project", CreditUnit: 6},
	// Elective courses
	{ID: "mit807", Code: "MIT 807", Name: "AI and its Business Application", CreditUnit: 3},
	{ID: "mit809", Code: "MIT 809", Name: "Elements of Scientific Computing", CreditUnit: 3},
	{ID: "mit813", Code: "MIT 813", Name: "Advanced Database Management Systems", CreditUnit: 3},
	{ID: "mit814", Code: "MIT 814", Name: "Human Computer Interactions", CreditUnit: 3},
	{ID: "mit816", Code: "MIT 816", Name: "Data Warehousing & Business Intelligence", CreditUnit: 3},
	{ID: "mit817", Code: "MIT 817", Name: "Software Engineering", CreditUnit: 3},
	{ID: "mit822", Code: "MIT 822", Name: "Operating Systems", CreditUnit: 3},
	{ID: "mit823", Code: "MIT 823", Name: "Office Automation & Project Management", CreditUnit: 3},
}

var compulsoryIDs = []string{
	"mit801", "mit802", "mit803", "mit804", "mit805", "mit806",
	"mit808", "mit811", "mit812", "mit815", "mit821", "mit824", "mit899",
}

// gradePoints maps each letter grade to its point value. F is the only
// failing grade and the only grade worth 0 points.
var gradePoints = map[Grade]int{
	GradeA: 5,
	GradeB: 4,
	GradeC: 3,
	GradeD: 2,
	GradeE: 1,
	GradeF: 0,
}

var grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeF}

var (
	byID       = make(map[string]Course, len(courses))
	compulsory = make(map[string]bool, len(compulsoryIDs))
)

func init() {
	for _, c := range courses {
		byID[c.ID] = c
	}
	for _, id := range compulsoryIDs {
		compulsory[id] = true
	}
}

// ByID looks up a catalog entry. Absence is not an error: callers decide
// how to handle an identifier that no longer resolves.
func ByID(id string) (Course, bool) {
	c, ok := byID[id]
	return c, ok
}

// IsCompulsory reports whether the course must be passed for graduation.
func IsCompulsory(id string) bool {
	return compulsory[id]
}

// CompulsoryCount is the number of compulsory courses in the programme.
func CompulsoryCount() int {
	return len(compulsoryIDs)
}

// Courses returns all catalog entries in published order.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

// Grades returns the letter grades in descending point order.
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}

// Points returns the point value for a letter grade.
func Points(g Grade) (int, bool) {
	p, ok := gradePoints[g]
	return p, ok
}
