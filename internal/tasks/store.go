package tasks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasklist/internal/logger"
	"tasklist/internal/storage"
)

// Keys the collections are persisted under.
const (
	TasksKey = "tasks"
	ListsKey = "lists"
)

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Store holds the task and list collections and writes every change through
// to its KV. It is not safe for concurrent use.
type Store struct {
	kv    storage.KV
	tasks []Task
	lists []List
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// TaskUpdate carries the editable task fields. All of them are written.
type TaskUpdate struct {
	Text     string
	DueDate  string
	Time     string
	Priority Priority
}

// Open builds a Store from whatever kv holds. Missing or unreadable state
// falls back to defaults and is never an error.
func Open(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: newTimeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load replaces the in-memory collections with the persisted ones.
func (s *Store) Load() {
	s.tasks = loadTasks(s.kv)
	s.lists = loadLists(s.kv)
	logger.Debug("store loaded", "tasks", len(s.tasks), "lists", len(s.lists))
}

func loadTasks(kv storage.KV) []Task {
	var tasks []Task
	if !readJSON(kv, TasksKey, &tasks) || tasks == nil {
		return []Task{}
	}
	seen := make(map[string]struct{}, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID == "" {
			logger.Warn("task without id, using defaults", "key", TasksKey)
			loadFallbackCount.WithLabelValues(TasksKey, "corrupt").Inc()
			return []Task{}
		}
		if _, dup := seen[t.ID]; dup {
			logger.Warn("dropping duplicate task id", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func loadLists(kv storage.KV) []List {
	var lists []List
	if !readJSON(kv, ListsKey, &lists) || lists == nil {
		return DefaultLists()
	}
	seen := make(map[string]struct{}, len(lists))
	out := lists[:0]
	for _, l := range lists {
		if l.ID == "" {
			logger.Warn("list without id, using defaults", "key", ListsKey)
			loadFallbackCount.WithLabelValues(ListsKey, "corrupt").Inc()
			return DefaultLists()
		}
		if _, dup := seen[l.ID]; dup {
			logger.Warn("dropping duplicate list id", "id", l.ID)
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}

// readJSON reports whether key held valid JSON for dst.
func readJSON(kv storage.KV, key string, dst any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Error(err, "read persisted state", "key", key)
		loadFallbackCount.WithLabelValues(key, "read_error").Inc()
		return false
	}
	if !ok {
		loadFallbackCount.WithLabelValues(key, "absent").Inc()
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("corrupt persisted state, using defaults", "key", key, "err", err)
		loadFallbackCount.WithLabelValues(key, "corrupt").Inc()
		return false
	}
	return true
}

// Persist writes both collections.
func (s *Store) Persist() error {
	if err := s.saveTasks(); err != nil {
		return err
	}
	return s.saveLists()
}

func (s *Store) saveTasks() error {
	return s.save(TasksKey, s.tasks)
}

func (s *Store) saveLists() error {
	return s.save(ListsKey, s.lists)
}

func (s *Store) save(key string, v any) error {
	start := time.Now()
	defer func() {
		persistDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	}()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		logger.Error(err, "persist failed", "key", key)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// record counts the outcome of op and passes err through.
func record(op string, applied bool, err error) error {
	status := "applied"
	switch {
	case err != nil:
		status = "error"
	case !applied:
		status = "ignored"
	}
	mutationCount.WithLabelValues(op, status).Inc()
	return err
}

// AddTask appends a task built from text. listContext is the current
// selection: the default and smart lists leave the task without a list.
// ok is false, and nothing changes, when text is blank.
func (s *Store) AddTask(text, listContext string) (Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, record("add_task", false, nil)
	}

	t := Task{
		ID:        s.newID(),
		Text:      text,
		ListID:    listFor(listContext),
		Priority:  PriorityMedium,
		CreatedAt: s.now().UTC().Format(createdAtLayout),
	}
	s.tasks = append(s.tasks, t)
	taskTextLength.Observe(float64(len(text)))
	logger.Debug("task added", "id", t.ID, "list", t.ListID)
	return t, true, record("add_task", true, s.saveTasks())
}

func listFor(context string) string {
	switch context {
	case DefaultListID, TodayListID, ImportantListID:
		return ""
	default:
		return context
	}
}

func (s *Store) indexOfTask(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ToggleCompleted(id string) error {
	i := s.indexOfTask(id)
	if i < 0 {
		return record("toggle_completed", false, nil)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return record("toggle_completed", true, s.saveTasks())
}

func (s *Store) ToggleImportant(id string) error {
	i := s.indexOfTask(id)
	if i < 0 {
		return record("toggle_important", false, nil)
	}
	s.tasks[i].Important = !s.tasks[i].Important
	return record("toggle_important", true, s.saveTasks())
}

// UpdateTask overwrites the editable fields of task id. Only the text is
// trimmed; an unrecognised priority becomes medium.
func (s *Store) UpdateTask(id string, u TaskUpdate) error {
	i := s.indexOfTask(id)
	if i < 0 {
		return record("update_task", false, nil)
	}
	t := &s.tasks[i]
	t.Text = strings.TrimSpace(u.Text)
	t.DueDate = u.DueDate
	t.Time = u.Time
	t.Priority = ParsePriority(string(u.Priority))
	return record("update_task", true, s.saveTasks())
}

func (s *Store) DeleteTask(id string) error {
	i := s.indexOfTask(id)
	if i < 0 {
		return record("delete_task", false, nil)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return record("delete_task", true, s.saveTasks())
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() (int, error) {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, record("clear_completed", false, nil)
	}
	s.tasks = kept
	return removed, record("clear_completed", true, s.saveTasks())
}

// AddList appends a list. ok is false, and nothing changes, when name is
// blank. An empty color uses DefaultListColor.
func (s *Store) AddList(name, color string) (List, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, false, record("add_list", false, nil)
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultListColor
	}
	l := List{ID: s.newID(), Name: name, Color: color}
	s.lists = append(s.lists, l)
	return l, true, record("add_list", true, s.saveLists())
}

// DeleteList removes list id. Tasks that reference it keep their ListID.
func (s *Store) DeleteList(id string) error {
	for i := range s.lists {
		if s.lists[i].ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			return record("delete_list", true, s.saveLists())
		}
	}
	return record("delete_list", false, nil)
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Lists returns a copy of the list collection in insertion order.
func (s *Store) Lists() []List {
	out := make([]List, len(s.lists))
	copy(out, s.lists)
	return out
}

func (s *Store) Task(id string) (Task, bool) {
	if i := s.indexOfTask(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

func (s *Store) List(id string) (List, bool) {
	for _, l := range s.lists {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

// Remaining counts incomplete tasks across the whole collection.
func (s *Store) Remaining() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
