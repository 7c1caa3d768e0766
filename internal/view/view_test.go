package view

import (
	"reflect"
	"testing"
	"time"

	"tasklist/internal/tasks"
)

var today = time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)

func ids(v View) []string {
	out := make([]string, len(v.Items))
	for i, it := range v.Items {
		out[i] = it.Task.ID
	}
	return out
}

func TestBuildSortOrder(t *testing.T) {
	all := []tasks.Task{
		{ID: "C", Completed: true, Priority: tasks.PriorityHigh},
		{ID: "A", DueDate: "2024-01-02", Priority: tasks.PriorityLow},
		{ID: "B", DueDate: "2024-01-01", Priority: tasks.PriorityHigh},
	}

	v := Build(all, tasks.DefaultListID, FilterAll, today)

	if got, want := ids(v), []string{"B", "A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBuildSortKeys(t *testing.T) {
	all := []tasks.Task{
		{ID: "undated-low", Priority: tasks.PriorityLow},
		{ID: "undated-high", Priority: tasks.PriorityHigh},
		{ID: "done-dated", Completed: true, DueDate: "2024-01-01", Priority: tasks.PriorityHigh},
		{ID: "dated-medium", DueDate: "2024-03-01", Priority: tasks.PriorityMedium},
		{ID: "dated-high", DueDate: "2024-03-01", Priority: tasks.PriorityHigh},
		{ID: "undated-medium-1", Priority: tasks.PriorityMedium},
		{ID: "early", DueDate: "2023-12-31", Priority: tasks.PriorityLow},
		{ID: "undated-medium-2", Priority: tasks.PriorityMedium},
		{ID: "done-undated", Completed: true, Priority: tasks.PriorityLow},
	}

	v := Build(all, tasks.DefaultListID, FilterAll, today)

	want := []string{
		"early",
		"dated-high",
		"dated-medium",
		"undated-high",
		"undated-medium-1",
		"undated-medium-2",
		"undated-low",
		"done-dated",
		"done-undated",
	}
	if got := ids(v); !reflect.DeepEqual(got, want) {
		t.Errorf("expected\n%v\ngot\n%v", want, got)
	}
}

func TestBuildListSelection(t *testing.T) {
	all := []tasks.Task{
		{ID: "due-today", DueDate: "2024-06-01"},
		{ID: "due-tomorrow", DueDate: "2024-06-02", Important: true},
		{ID: "work", ListID: "work"},
		{ID: "orphan", ListID: "deleted-list"},
		{ID: "personal-important", ListID: "personal", Important: true},
	}

	cases := []struct {
		list string
		want []string
	}{
		{tasks.TodayListID, []string{"due-today"}},
		{tasks.ImportantListID, []string{"due-tomorrow", "personal-important"}},
		{tasks.DefaultListID, []string{"due-today", "due-tomorrow", "work", "orphan", "personal-important"}},
		{"work", []string{"work"}},
		{"personal", []string{"personal-important"}},
		{"nope", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.list, func(t *testing.T) {
			got := ids(Build(all, tc.list, FilterAll, today))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBuildCompletionFilter(t *testing.T) {
	all := []tasks.Task{
		{ID: "open", ListID: "work"},
		{ID: "done", ListID: "work", Completed: true},
		{ID: "other", ListID: "personal"},
	}

	cases := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"open", "done"}},
		{FilterActive, []string{"open"}},
		{FilterCompleted, []string{"done"}},
		{Filter("bogus"), []string{"open", "done"}},
	}
	for _, tc := range cases {
		got := ids(Build(all, "work", tc.filter, today))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("filter %q: expected %v, got %v", tc.filter, tc.want, got)
		}
	}
}

func TestRemainingIgnoresSelection(t *testing.T) {
	all := []tasks.Task{
		{ID: "1", ListID: "work"},
		{ID: "2", ListID: "work", Completed: true},
		{ID: "3", ListID: "personal"},
		{ID: "4", Completed: true},
		{ID: "5"},
	}
	for _, list := range []string{tasks.DefaultListID, tasks.TodayListID, tasks.ImportantListID, "work", "personal"} {
		for _, f := range Filters {
			if got := Build(all, list, f, today).Remaining; got != 3 {
				t.Errorf("list=%s filter=%s: expected 3 remaining, got %d", list, f, got)
			}
		}
	}
}

func TestBuildEmptyState(t *testing.T) {
	v := Build(nil, tasks.DefaultListID, FilterAll, today)
	if !v.Empty || len(v.Items) != 0 || v.Remaining != 0 {
		t.Errorf("expected empty view, got %+v", v)
	}

	v = Build([]tasks.Task{{ID: "1"}}, tasks.DefaultListID, FilterCompleted, today)
	if !v.Empty {
		t.Error("filtered-out result should be marked empty")
	}
	if v.Remaining != 1 {
		t.Errorf("empty view still reports remaining, got %d", v.Remaining)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	all := []tasks.Task{
		{ID: "a", DueDate: "2024-06-01", Time: "09:00"},
		{ID: "b", Priority: tasks.PriorityHigh},
		{ID: "c", Completed: true},
	}
	first := Build(all, tasks.DefaultListID, FilterAll, today)
	second := Build(all, tasks.DefaultListID, FilterAll, today)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build is not idempotent:\n%+v\n%+v", first, second)
	}
	if all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "c" {
		t.Error("Build must not reorder its input")
	}
}

func TestDueText(t *testing.T) {
	cases := []struct {
		task tasks.Task
		want string
	}{
		{tasks.Task{}, ""},
		{tasks.Task{Time: "09:00"}, ""},
		{tasks.Task{DueDate: "2024-06-01"}, "Today"},
		{tasks.Task{DueDate: "2024-06-01", Time: "18:30"}, "Today at 18:30"},
		{tasks.Task{DueDate: "2024-03-05"}, "Mar 5"},
		{tasks.Task{DueDate: "2024-12-25", Time: "07:05"}, "Dec 25 at 07:05"},
		{tasks.Task{DueDate: "someday"}, "someday"},
	}
	for _, tc := range cases {
		if got := DueText(tc.task, today); got != tc.want {
			t.Errorf("DueText(%+v) = %q, want %q", tc.task, got, tc.want)
		}
	}

	v := Build([]tasks.Task{{ID: "x", DueDate: "2024-03-05", Time: "10:00"}}, tasks.DefaultListID, FilterAll, today)
	if v.Items[0].DueText != "Mar 5 at 10:00" {
		t.Errorf("Build should derive due text, got %q", v.Items[0].DueText)
	}
}

func TestLabels(t *testing.T) {
	if got := RemainingLabel(1); got != "1 task remaining" {
		t.Errorf("got %q", got)
	}
	if got := RemainingLabel(0); got != "0 tasks remaining" {
		t.Errorf("got %q", got)
	}
	if got := RemainingLabel(7); got != "7 tasks remaining" {
		t.Errorf("got %q", got)
	}
	if got := DateHeader(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)); got != "Thursday, October 15, 2026" {
		t.Errorf("got %q", got)
	}
}

func TestFilterHelpers(t *testing.T) {
	if ParseFilter(" Active ") != FilterActive || ParseFilter("completed") != FilterCompleted || ParseFilter("x") != FilterAll {
		t.Error("ParseFilter mismatch")
	}
	if FilterAll.Next() != FilterActive || FilterActive.Next() != FilterCompleted || FilterCompleted.Next() != FilterAll {
		t.Error("Next should cycle all -> active -> completed")
	}
}
