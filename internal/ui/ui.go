package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/logger"
	"tasklist/internal/tasks"
	"tasklist/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeNewList
)

type confirmKind int

const (
	confirmDeleteTask confirmKind = iota
	confirmDeleteList
	confirmClearCompleted
)

// confirmation is a destructive action waiting for y/n.
type confirmation struct {
	kind   confirmKind
	id     string
	prompt string
}

type editState struct {
	taskID   string
	text     string
	due      string
	time     string
	priority string
	index    int
}

type Model struct {
	store   *tasks.Store
	cfg     config.Config
	now     func() time.Time
	view    view.View
	lists   []tasks.List
	cursor  int
	mode    mode
	input   textinput.Model
	status  string
	confirm *confirmation
	edit    *editState

	// session selection, never persisted
	listID        string
	filter        view.Filter
	selectedColor int
	currentTaskID string
}

func Run(store *tasks.Store, cfg config.Config) error {
	m := New(store, cfg, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// New builds the initial model. now supplies "today" for the view.
func New(store *tasks.Store, cfg config.Config, now func() time.Time) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a task"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		now:    now,
		input:  ti,
		mode:   modeList,
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
		listID: tasks.DefaultListID,
		filter: view.ParseFilter(cfg.DefaultFilter),
	}
	if cfg.DefaultList != "" && m.validSelection(cfg.DefaultList) {
		m.listID = cfg.DefaultList
	}
	return m.refresh()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.edit != nil {
			return m.updateEditMode(msg.String(), msg)
		}
		if m.confirm != nil {
			return m.updateConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeNewList:
		return m.updateNewListMode(key, msg)
	}
	return m.updateListMode(key)
}

// refresh rebuilds the view from the store and clamps the cursor.
func (m Model) refresh() Model {
	m.lists = m.store.Lists()
	m.view = view.Build(m.store.Tasks(), m.listID, m.filter, m.now())
	m.cursor = clampCursor(m.cursor, len(m.view.Items))
	return m
}

func (m Model) selections() []string {
	ids := []string{tasks.DefaultListID, tasks.TodayListID, tasks.ImportantListID}
	for _, l := range m.lists {
		ids = append(ids, l.ID)
	}
	return ids
}

func (m Model) validSelection(id string) bool {
	switch id {
	case tasks.DefaultListID, tasks.TodayListID, tasks.ImportantListID:
		return true
	}
	_, ok := m.store.List(id)
	return ok
}

func (m Model) selectionName(id string) string {
	switch id {
	case tasks.DefaultListID:
		return "My Tasks"
	case tasks.TodayListID:
		return "Today"
	case tasks.ImportantListID:
		return "Important"
	}
	if l, ok := m.store.List(id); ok {
		return l.Name
	}
	return id
}

func (m Model) selectedTask() (tasks.Task, bool) {
	if len(m.view.Items) == 0 {
		return tasks.Task{}, false
	}
	return m.view.Items[clampCursor(m.cursor, len(m.view.Items))].Task, true
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		task, ok, err := m.store.AddTask(m.input.Value(), m.listID)
		if !ok {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "Added task"
		}
		m = m.refresh()
		for i, it := range m.view.Items {
			if it.Task.ID == task.ID {
				m.cursor = i
				break
			}
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateNewListMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab":
		if n := len(m.cfg.ListColors); n > 0 {
			m.selectedColor = wrapIndex(m.selectedColor+1, n)
		}
		return m, nil
	case "shift+tab":
		if n := len(m.cfg.ListColors); n > 0 {
			m.selectedColor = wrapIndex(m.selectedColor-1, n)
		}
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		l, ok, err := m.store.AddList(m.input.Value(), m.currentColor())
		if !ok {
			m.status = "List name cannot be empty"
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Created list %q", l.Name)
		}
		m.input.SetValue("")
		m.input.Blur()
		m.input.Placeholder = "Add a task"
		m.mode = modeList
		return m.refresh(), nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) currentColor() string {
	if len(m.cfg.ListColors) == 0 {
		return tasks.DefaultListColor
	}
	return m.cfg.ListColors[wrapIndex(m.selectedColor, len(m.cfg.ListColors))]
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.view.Items))
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.view.Items))
	case k.Add:
		m.mode = modeAdd
		m.input.Placeholder = "Add a task"
		m.input.Focus()
		m.status = "Add mode: type the task and press Enter"
	case k.NewList:
		m.mode = modeNewList
		m.input.Placeholder = "List name"
		m.input.Focus()
		m.status = "New list: type a name, tab to pick a color, Enter to save"
	case k.NextList, k.PrevList:
		ids := m.selections()
		step := 1
		if key == k.PrevList {
			step = -1
		}
		for i, id := range ids {
			if id == m.listID {
				m.listID = ids[wrapIndex(i+step, len(ids))]
				break
			}
		}
		m.cursor = 0
		m.status = "Showing " + m.selectionName(m.listID)
		return m.refresh(), nil
	case k.Filter:
		m.filter = m.filter.Next()
		m.cursor = 0
		m.status = "Filter: " + string(m.filter)
		return m.refresh(), nil
	case k.Toggle:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if err := m.store.ToggleCompleted(t.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
		} else {
			m.status = "Toggled task"
		}
		return m.refresh(), nil
	case k.Important:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if err := m.store.ToggleImportant(t.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
		} else {
			m.status = "Toggled importance"
		}
		return m.refresh(), nil
	case k.Delete:
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.currentTaskID = t.ID
		m.confirm = &confirmation{
			kind:   confirmDeleteTask,
			id:     t.ID,
			prompt: fmt.Sprintf("Delete \"%s\"? y/n", t.Text),
		}
		m.status = m.confirm.prompt
	case k.DeleteList:
		l, ok := m.store.List(m.listID)
		if !ok {
			m.status = "Only your own lists can be deleted"
			return m, nil
		}
		m.confirm = &confirmation{
			kind:   confirmDeleteList,
			id:     l.ID,
			prompt: fmt.Sprintf("Delete list \"%s\"? Its tasks are kept. y/n", l.Name),
		}
		m.status = m.confirm.prompt
	case k.ClearCompleted:
		m.confirm = &confirmation{
			kind:   confirmClearCompleted,
			prompt: "Clear all completed tasks? y/n",
		}
		m.status = m.confirm.prompt
	case k.Edit:
		t, ok := m.selectedTask()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(t)
	}
	return m, nil
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Cancelled"
		m.confirm = nil
		m.currentTaskID = ""
		return m, nil
	case "y", "Y":
		c := m.confirm
		m.confirm = nil
		m.currentTaskID = ""
		switch c.kind {
		case confirmDeleteTask:
			if err := m.store.DeleteTask(c.id); err != nil {
				m.status = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.status = "Deleted task"
			}
		case confirmDeleteList:
			if err := m.store.DeleteList(c.id); err != nil {
				m.status = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.status = "Deleted list"
			}
			if m.listID == c.id {
				m.listID = tasks.DefaultListID
				m.cursor = 0
			}
		case confirmClearCompleted:
			n, err := m.store.ClearCompleted()
			if err != nil {
				m.status = fmt.Sprintf("clear failed: %v", err)
			} else {
				m.status = fmt.Sprintf("Cleared %d completed", n)
			}
		}
		logger.Debug("confirmed destructive action", "kind", c.kind, "id", c.id)
		return m.refresh(), nil
	default:
		return m, nil
	}
}

func (m Model) startEdit(t tasks.Task) (tea.Model, tea.Cmd) {
	m.currentTaskID = t.ID
	m.edit = &editState{
		taskID:   t.ID,
		text:     t.Text,
		due:      t.DueDate,
		time:     t.Time,
		priority: string(t.Priority),
	}
	m.input.SetValue(m.edit.currentValue())
	m.input.Placeholder = m.edit.currentLabel()
	m.input.Focus()
	m.mode = modeEdit
	m.status = "Edit task: tab to move, enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.edit = nil
		m.currentTaskID = ""
		m.mode = modeList
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down", "shift+tab", "up":
		step := 1
		if key == "shift+tab" || key == "up" {
			step = -1
		}
		m.edit.setCurrentValue(m.input.Value())
		m.edit.index = wrapIndex(m.edit.index+step, len(editFields()))
		m.input.SetValue(m.edit.currentValue())
		m.input.Placeholder = m.edit.currentLabel()
		m.status = m.editPrompt()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.edit.setCurrentValue(m.input.Value())
		if m.edit.index >= len(editFields())-1 {
			return m.saveEdit()
		}
		m.edit.index++
		m.input.SetValue(m.edit.currentValue())
		m.input.Placeholder = m.edit.currentLabel()
		m.status = m.editPrompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	due, err := parseDate(m.edit.due)
	if err != nil {
		m.status = fmt.Sprintf("due date invalid: %v", err)
		return m, nil
	}
	at, err := parseClock(m.edit.time)
	if err != nil {
		m.status = fmt.Sprintf("time invalid: %v", err)
		return m, nil
	}
	taskID := m.edit.taskID
	err = m.store.UpdateTask(taskID, tasks.TaskUpdate{
		Text:     m.edit.text,
		DueDate:  due,
		Time:     at,
		Priority: tasks.ParsePriority(m.edit.priority),
	})
	m.edit = nil
	m.currentTaskID = ""
	m.mode = modeList
	m.input.Blur()
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	} else {
		m.status = "Task saved"
	}

	m = m.refresh()
	for i, it := range m.view.Items {
		if it.Task.ID == taskID {
			m.cursor = i
			break
		}
	}
	return m, nil
}

func editFields() []string {
	return []string{"text", "due date (YYYY-MM-DD)", "time (HH:MM)", "priority (high/medium/low)"}
}

func (es editState) currentLabel() string {
	return editFields()[es.index]
}

func (es editState) currentValue() string {
	switch es.index {
	case 0:
		return es.text
	case 1:
		return es.due
	case 2:
		return es.time
	case 3:
		return es.priority
	default:
		return ""
	}
}

func (es *editState) setCurrentValue(v string) {
	switch es.index {
	case 0:
		es.text = v
	case 1:
		es.due = v
	case 2:
		es.time = v
	case 3:
		es.priority = v
	}
}

func (m Model) editPrompt() string {
	if m.edit == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel, tab to move.",
		m.edit.currentLabel(), m.edit.index+1, len(editFields()))
}

func parseDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return "", err
	}
	return v, nil
}

func parseClock(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
