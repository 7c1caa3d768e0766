// Package tasks owns the authoritative task and list collections and their
// persisted form.
package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Selection ids that are not stored lists.
const (
	DefaultListID   = "default"
	TodayListID     = "today"
	ImportantListID = "important"
)

// DefaultListColor is used when a new list is created without a color.
const DefaultListColor = "#6c5ce7"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority returns PriorityMedium for anything unrecognised.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank orders priorities for sorting: high 1, medium 2, low 3.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// Task is a single to-do item. Empty ListID, DueDate and Time mean "unset"
// and are written as JSON null.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Important bool
	ListID    string
	Priority  Priority
	DueDate   string // YYYY-MM-DD
	Time      string // HH:MM
	CreatedAt string // RFC 3339
}

type List struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultLists are seeded when nothing has been persisted yet.
func DefaultLists() []List {
	return []List{
		{ID: "work", Name: "Work", Color: "#48dbfb"},
		{ID: "personal", Name: "Personal", Color: "#1dd1a1"},
	}
}

func (l *List) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return errNullEntry
	}
	type plain List
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = List(raw)
	return nil
}

type taskJSON struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Important bool    `json:"important"`
	ListID    *string `json:"listId"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"dueDate"`
	Time      *string `json:"time"`
	CreatedAt string  `json:"createdAt"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Important: t.Important,
		ListID:    nullable(t.ListID),
		Priority:  string(ParsePriority(string(t.Priority))),
		DueDate:   nullable(t.DueDate),
		Time:      nullable(t.Time),
		CreatedAt: t.CreatedAt,
	})
}

// errNullEntry rejects null array elements so a damaged collection is
// replaced as a whole instead of loading zero-value entries.
var errNullEntry = errors.New("null entry")

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func (t *Task) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return errNullEntry
	}
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task{
		ID:        raw.ID,
		Text:      raw.Text,
		Completed: raw.Completed,
		Important: raw.Important,
		ListID:    deref(raw.ListID),
		Priority:  ParsePriority(raw.Priority),
		DueDate:   deref(raw.DueDate),
		Time:      deref(raw.Time),
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
