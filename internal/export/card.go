package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/inconsolata"
)

const (
	cardWidth  = 600
	cardHeight = 315
)

// BuildCard renders the shareable PNG summary card: GPA, performance class,
// graduation verdict and unit totals on a dark background.
func BuildCard(data Data) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	// Background
	dc.SetRGB255(15, 23, 42)
	dc.Clear()

	// Accent band
	dc.SetRGB255(16, 185, 129)
	dc.DrawRectangle(0, 0, cardWidth, 52)
	dc.Fill()

	dc.SetFontFace(inconsolata.Bold8x16)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored("UNILAG MIT - GPA Summary", cardWidth/2, 26, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Matric No: %s", data.MatricNumber), cardWidth/2, 44, 0.5, 0.5)

	// GPA headline
	dc.SetFontFace(inconsolata.Bold8x16)
	dc.SetRGB255(16, 185, 129)
	dc.DrawStringAnchored(fmt.Sprintf("GPA %.2f  (%s)", data.Summary.GPA, data.Summary.Class), cardWidth/2, 110, 0.5, 0.5)

	// Verdict
	dc.SetRGB255(226, 232, 240)
	dc.DrawStringAnchored(string(data.Verdict.Status), cardWidth/2, 150, 0.5, 0.5)
	dc.SetFontFace(inconsolata.Regular8x16)
	dc.SetRGB255(148, 163, 184)
	dc.DrawStringAnchored(data.Verdict.Description, cardWidth/2, 172, 0.5, 0.5)

	// Totals row
	stats := []string{
		fmt.Sprintf("Courses %d", len(data.Courses)),
		fmt.Sprintf("Units taken %d", data.Summary.TotalUnitsTaken),
		fmt.Sprintf("Units passed %d", data.Summary.TotalUnitsPassed),
		fmt.Sprintf("Grade points %d", data.Summary.TotalGradePoints),
	}
	colWidth := float64(cardWidth) / float64(len(stats))
	for i, s := range stats {
		x := colWidth*float64(i) + colWidth/2
		dc.DrawStringAnchored(s, x, 230, 0.5, 0.5)
	}

	dc.SetRGB255(100, 116, 139)
	dc.DrawStringAnchored(data.GeneratedAt.Format("2 January 2006"), cardWidth/2, 290, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode summary card: %w", err)
	}
	return buf.Bytes(), nil
}
