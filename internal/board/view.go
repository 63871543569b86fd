package board

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/model"
)

type SortKey string

const (
	SortRecency  SortKey = "updatedAt"
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
	SortStatus   SortKey = "status"
)

// Filter is the query-only view state. Zero values mean "any" and never
// touch the underlying collection.
type Filter struct {
	Query    string
	Status   model.Status
	Priority model.Priority
	Sort     SortKey
}

// View computes a filtered, sorted projection of the collection. It is a
// pure function of the current tasks and the filter; recomputed on every
// call, never stored.
func (b *Board) View(f Filter) []model.Task {
	tasks := b.Tasks()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := tasks[:0:0]
	for _, t := range tasks {
		if q != "" {
			hay := strings.ToLower(t.Title)
			if t.Description != nil {
				hay += " " + strings.ToLower(*t.Description)
			}
			if !strings.Contains(hay, q) {
				continue
			}
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, f.Sort)
	return out
}

// sortTasks orders in place. Every key uses a stable sort so ties keep
// their relative input order.
func sortTasks(tasks []model.Task, key SortKey) {
	switch key {
	case SortDueDate:
		// Dateless tasks sort after every dated one.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Weight() > tasks[j].Priority.Weight()
		})
	case SortTitle:
		cl := collate.New(language.Und)
		sort.SliceStable(tasks, func(i, j int) bool {
			return cl.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	case SortStatus:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Status.Weight() < tasks[j].Status.Weight()
		})
	default:
		// Recency: newest update first, missing timestamps treated as epoch.
		sort.SliceStable(tasks, func(i, j int) bool {
			return updatedUnix(tasks[i]) > updatedUnix(tasks[j])
		})
	}
}

func updatedUnix(t model.Task) int64 {
	if t.UpdatedAt == nil {
		return 0
	}
	return t.UpdatedAt.UnixMilli()
}
