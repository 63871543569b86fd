package chart

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

type rgb struct{ r, g, b int }

// Palette from the web dashboard.
var (
	statusColors = map[model.Status]rgb{
		model.StatusPending:    {0xFF, 0xC7, 0x5F},
		model.StatusInProgress: {0x89, 0xC2, 0xFF},
		model.StatusCompleted:  {0xA3, 0xF7, 0xBF},
	}
	priorityColors = map[model.Priority]rgb{
		model.PriorityLow:    {0xA3, 0xF7, 0xBF},
		model.PriorityMedium: {0xFF, 0xC7, 0x5F},
		model.PriorityHigh:   {0xFF, 0x6B, 0x6B},
	}
)

// PDFRenderer writes a one-page dashboard report with status and priority
// bar charts.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(w io.Writer, stats board.Stats) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Task Dashboard")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d tasks, %d completed (%d%%)", stats.Total, stats.Completed, stats.CompletionPct))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Tasks by status")
	pdf.Ln(10)
	for _, row := range statusRows {
		drawBar(pdf, row.label, stats.ByStatus[row.key], stats.Total, statusColors[row.key])
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Tasks by priority")
	pdf.Ln(10)
	for _, row := range priorityRows {
		drawBar(pdf, row.label, stats.ByPriority[row.key], stats.Total, priorityColors[row.key])
	}

	return pdf.Output(w)
}

const maxBarWidth = 120.0

func drawBar(pdf *gofpdf.Fpdf, label string, value, total int, color rgb) {
	pct := percent(value, total)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(30, 6, label)

	x, y := pdf.GetX(), pdf.GetY()
	width := maxBarWidth * float64(pct) / 100
	if width > 0 {
		pdf.SetFillColor(color.r, color.g, color.b)
		pdf.Rect(x, y+1, width, 4, "F")
	}

	pdf.SetX(x + maxBarWidth + 4)
	pdf.Cell(0, 6, fmt.Sprintf("%d (%d%%)", value, pct))
	pdf.Ln(8)
}
