package export

import (
	"bytes"
	"fmt"
	"time"

	"gpa-service/internal/catalog"
	"gpa-service/internal/gpa"
	"gpa-service/internal/graduation"
	"gpa-service/internal/registration"

	"github.com/go-pdf/fpdf"
)

// Data is the value snapshot an export renders. It is taken once at request
// time; later session mutations do not affect a running export.
type Data struct {
	MatricNumber string
	Courses      []registration.Course
	Summary      gpa.Summary
	Verdict      graduation.Verdict
	GeneratedAt  time.Time
}

const placeholderName = "Unknown course"

// resolveName returns "CODE — Name" for a course, falling back to a
// placeholder when the catalog identifier no longer resolves. The export
// must not fail on stale snapshot data.
func resolveName(c registration.Course) string {
	if entry, ok := catalog.ByID(c.CourseID); ok {
		return fmt.Sprintf("%s - %s", entry.Code, entry.Name)
	}
	return fmt.Sprintf("%s (%s)", placeholderName, c.CourseID)
}

// BuildPDF renders the result sheet: header, student info, summary stats,
// one table row per course in registration order, grade-scale legend.
func BuildPDF(data Data) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()
	const margin = 20.0

	// Header band
	doc.SetFillColor(16, 185, 129)
	doc.Rect(0, 0, pageWidth, 45, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	doc.SetY(10)
	doc.CellFormat(0, 8, "UNIVERSITY OF LAGOS", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Master of Information Technology Programme", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "GPA RESULT SUMMARY", "", 1, "C", false, 0, "")

	// Student info box
	doc.SetY(55)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	doc.SetX(margin)
	doc.CellFormat(85, 7, fmt.Sprintf("Matriculation Number: %s", data.MatricNumber), "", 0, "L", false, 0, "")
	doc.CellFormat(85, 7, fmt.Sprintf("Date Generated: %s", data.GeneratedAt.Format("2 January 2006")), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetX(margin)
	doc.CellFormat(85, 7, fmt.Sprintf("GPA: %.2f (%s)", data.Summary.GPA, data.Summary.Class), "", 0, "L", false, 0, "")
	doc.CellFormat(85, 7, fmt.Sprintf("Status: %s", data.Verdict.Status), "", 1, "R", false, 0, "")

	// Summary stats
	doc.Ln(4)
	doc.SetFillColor(16, 185, 129)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetX(margin)
	doc.CellFormat(pageWidth-2*margin, 7, "SUMMARY", "", 1, "L", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
	stats := []struct {
		label string
		value string
	}{
		{"Total Courses", fmt.Sprintf("%d", len(data.Courses))},
		{"Units Taken", fmt.Sprintf("%d", data.Summary.TotalUnitsTaken)},
		{"Units Passed", fmt.Sprintf("%d", data.Summary.TotalUnitsPassed)},
		{"Grade Points", fmt.Sprintf("%d", data.Summary.TotalGradePoints)},
	}
	colWidth := (pageWidth - 2*margin) / float64(len(stats))
	doc.SetX(margin)
	for _, s := range stats {
		doc.CellFormat(colWidth, 6, s.label, "", 0, "L", false, 0, "")
	}
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetX(margin)
	for _, s := range stats {
		doc.CellFormat(colWidth, 7, s.value, "", 0, "L", false, 0, "")
	}
	doc.Ln(12)

	// Course table
	doc.SetFillColor(16, 185, 129)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 9)
	doc.SetX(margin)
	doc.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
	doc.CellFormat(90, 7, "Course", "1", 0, "L", true, 0, "")
	doc.CellFormat(18, 7, "Units", "1", 0, "C", true, 0, "")
	doc.CellFormat(18, 7, "Grade", "1", 0, "C", true, 0, "")
	doc.CellFormat(18, 7, "Points", "1", 0, "C", true, 0, "")
	doc.CellFormat(16, 7, "UxP", "1", 1, "C", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
	for i, c := range data.Courses {
		doc.SetX(margin)
		doc.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(90, 7, resolveName(c), "1", 0, "L", false, 0, "")
		doc.CellFormat(18, 7, fmt.Sprintf("%d", c.CreditUnit), "1", 0, "C", false, 0, "")
		doc.CellFormat(18, 7, string(c.Grade), "1", 0, "C", false, 0, "")
		doc.CellFormat(18, 7, fmt.Sprintf("%d", c.GradePoint), "1", 0, "C", false, 0, "")
		doc.CellFormat(16, 7, fmt.Sprintf("%d", c.GradePoint*c.CreditUnit), "1", 1, "C", false, 0, "")
	}

	// Verdict
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetX(margin)
	doc.CellFormat(0, 7, fmt.Sprintf("Graduation Status: %s - %s", data.Verdict.Status, data.Verdict.Description), "", 1, "L", false, 0, "")

	// Grade scale legend
	doc.Ln(2)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(100, 116, 139)
	legend := "Grade Scale: "
	for i, g := range catalog.Grades() {
		point, _ := catalog.Points(g)
		if i > 0 {
			legend += "  |  "
		}
		legend += fmt.Sprintf("%s = %d", g, point)
	}
	doc.SetX(margin)
	doc.CellFormat(0, 6, legend, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render result sheet: %w", err)
	}
	return buf.Bytes(), nil
}
