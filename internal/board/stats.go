package board

import (
	"math"

	"taskboard/internal/model"
)

type Stats struct {
	Total         int                    `json:"totalTasks"`
	ByStatus      map[model.Status]int   `json:"byStatus"`
	ByPriority    map[model.Priority]int `json:"byPriority"`
	Completed     int                    `json:"completed"`
	CompletionPct int                    `json:"completionPct"`
}

// Stats aggregates the full collection for the dashboard. The completion
// percentage is 0 for an empty collection, never NaN.
func (b *Board) Stats() Stats {
	tasks := b.Tasks()

	s := Stats{
		Total:      len(tasks),
		ByStatus:   make(map[model.Status]int),
		ByPriority: make(map[model.Priority]int),
	}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
	}
	s.Completed = s.ByStatus[model.StatusCompleted]

	if s.Total > 0 {
		s.CompletionPct = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}
