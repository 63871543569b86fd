package chart

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

// Renderer draws dashboard statistics. Implementations are picked at
// composition time: the built-in text renderer, or the richer PDF one.
type Renderer interface {
	Render(w io.Writer, stats board.Stats) error
}

var statusRows = []struct {
	label string
	key   model.Status
}{
	{"Todo", model.StatusPending},
	{"In Progress", model.StatusInProgress},
	{"Completed", model.StatusCompleted},
}

var priorityRows = []struct {
	label string
	key   model.Priority
}{
	{"Low", model.PriorityLow},
	{"Medium", model.PriorityMedium},
	{"High", model.PriorityHigh},
}

// TextRenderer prints proportional bars to any writer.
type TextRenderer struct {
	Width int
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{Width: 30}
}

func (r *TextRenderer) Render(w io.Writer, stats board.Stats) error {
	fmt.Fprintf(w, "Tasks: %d total, %d completed (%d%%)\n\n", stats.Total, stats.Completed, stats.CompletionPct)

	fmt.Fprintln(w, "By status")
	for _, row := range statusRows {
		r.bar(w, row.label, stats.ByStatus[row.key], stats.Total)
	}

	fmt.Fprintln(w, "\nBy priority")
	for _, row := range priorityRows {
		r.bar(w, row.label, stats.ByPriority[row.key], stats.Total)
	}
	return nil
}

func (r *TextRenderer) bar(w io.Writer, label string, value, total int) {
	pct := percent(value, total)
	filled := r.Width * pct / 100
	fmt.Fprintf(w, "  %-12s %s%s %d (%d%%)\n",
		label,
		strings.Repeat("#", filled),
		strings.Repeat(".", r.Width-filled),
		value, pct,
	)
}

func percent(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(value)/float64(total)*100 + 0.5)
}
