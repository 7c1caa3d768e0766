// Package view derives the displayed task sequence from a snapshot of the
// store. Everything here is a pure function of its arguments.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tasklist/internal/tasks"
)

const isoDate = "2006-01-02"

// Filter narrows a list selection by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

type Item struct {
	Task    tasks.Task
	DueText string
}

type View struct {
	Items []Item
	// Remaining counts incomplete tasks in the whole collection, not just
	// the filtered items.
	Remaining int
	// Empty marks the "no tasks found" state.
	Empty bool
}

// Build filters all by listID and filter, sorts the result and derives the
// display fields. today is compared at local day granularity.
func Build(all []tasks.Task, listID string, filter Filter, today time.Time) View {
	todayISO := today.Format(isoDate)

	selected := make([]tasks.Task, 0, len(all))
	remaining := 0
	for _, t := range all {
		if !t.Completed {
			remaining++
		}
		if inList(t, listID, todayISO) && passes(t, filter) {
			selected = append(selected, t)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return less(selected[i], selected[j])
	})

	items := make([]Item, len(selected))
	for i, t := range selected {
		items[i] = Item{Task: t, DueText: dueText(t, todayISO)}
	}
	return View{Items: items, Remaining: remaining, Empty: len(items) == 0}
}

func inList(t tasks.Task, listID, todayISO string) bool {
	switch listID {
	case tasks.TodayListID:
		return t.DueDate == todayISO
	case tasks.ImportantListID:
		return t.Important
	case tasks.DefaultListID:
		return true
	default:
		return t.ListID == listID
	}
}

func passes(t tasks.Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// less: incomplete first, then dated before undated with earlier dates
// first, then by priority rank.
func less(a, b tasks.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	switch {
	case a.DueDate != "" && b.DueDate != "":
		if a.DueDate != b.DueDate {
			return dateBefore(a.DueDate, b.DueDate)
		}
	case a.DueDate != "":
		return true
	case b.DueDate != "":
		return false
	}
	return a.Priority.Rank() < b.Priority.Rank()
}

func dateBefore(a, b string) bool {
	ta, errA := time.Parse(isoDate, a)
	tb, errB := time.Parse(isoDate, b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}

// DueText renders the due column: "Today" or "Jan 2", plus " at HH:MM" when
// a time is set. It is empty for undated tasks.
func DueText(t tasks.Task, today time.Time) string {
	return dueText(t, today.Format(isoDate))
}

func dueText(t tasks.Task, todayISO string) string {
	if t.DueDate == "" {
		return ""
	}
	var s string
	if t.DueDate == todayISO {
		s = "Today"
	} else if d, err := time.Parse(isoDate, t.DueDate); err == nil {
		s = d.Format("Jan 2")
	} else {
		s = t.DueDate
	}
	if t.Time != "" {
		s += " at " + t.Time
	}
	return s
}

func RemainingLabel(n int) string {
	if n == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", n)
}

// DateHeader formats t like "Thursday, October 15, 2026".
func DateHeader(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
