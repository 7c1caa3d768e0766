package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/config"
	"tasklist/internal/tasks"
	"tasklist/internal/view"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Faint(true)
	activeStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	importantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#feca57")).Bold(true)

	priorityColors = map[tasks.Priority]lipgloss.Color{
		tasks.PriorityHigh:   lipgloss.Color("#ff6b6b"),
		tasks.PriorityMedium: lipgloss.Color("#feca57"),
		tasks.PriorityLow:    lipgloss.Color("#1dd1a1"),
	}
)

func badge(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(view.DateHeader(m.now())))
	b.WriteString("\n\n")
	b.WriteString(m.renderLists())
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if m.view.Empty {
		b.WriteString(dimStyle.Render("No tasks found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(view.RemainingLabel(m.view.Remaining))
	b.WriteString("\n---\n")

	switch {
	case m.edit != nil:
		b.WriteString("Edit task (tab/shift+tab to move, enter to save/next, esc to cancel)")
		b.WriteString("\n\n")
		b.WriteString(m.renderEditBox())
		b.WriteString("\n")
		b.WriteString("Field: " + m.edit.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case m.mode == modeAdd:
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
	case m.mode == modeNewList:
		b.WriteString("New List: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.renderPalette())
	default:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderLists() string {
	parts := make([]string, 0, len(m.lists)+3)
	for _, id := range m.selections() {
		label := m.selectionName(id)
		if l, ok := m.store.List(id); ok {
			label = badge(l.Color) + " " + label
		}
		if id == m.listID {
			label = activeStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFilters() string {
	parts := make([]string, len(view.Filters))
	for i, f := range view.Filters {
		label := string(f)
		if f == m.filter {
			label = activeStyle.Render(label)
		}
		parts[i] = label
	}
	return "Filter: " + strings.Join(parts, " | ")
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, it := range m.view.Items {
		t := it.Task
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		prio := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render("▌")

		text := t.Text
		if t.Completed {
			text = completedStyle.Render(text)
		}

		body := fmt.Sprintf("%s %s %s %s", cursor, prio, checkbox, text)
		if it.DueText != "" {
			body += dimStyle.Render("  ⏱ " + it.DueText)
		}
		if t.Important {
			body += " " + importantStyle.Render("!")
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return "No task selected"
	}
	list := "(none)"
	if t.ListID != "" {
		if l, found := m.store.List(t.ListID); found {
			list = badge(l.Color) + " " + l.Name
		} else {
			list = t.ListID + " (deleted)"
		}
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Text      : %s\n", t.Text))
	b.WriteString(fmt.Sprintf("Done      : %t\n", t.Completed))
	b.WriteString(fmt.Sprintf("Important : %t\n", t.Important))
	b.WriteString(fmt.Sprintf("List      : %s\n", list))
	b.WriteString(fmt.Sprintf("Priority  : %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("Due       : %s\n", emptyPlaceholder(view.DueText(t, m.now()))))
	b.WriteString(fmt.Sprintf("Created   : %s", t.CreatedAt))
	return b.String()
}

func (m Model) renderEditBox() string {
	values := []string{m.edit.text, m.edit.due, m.edit.time, m.edit.priority}
	var b strings.Builder
	for i, name := range editFields() {
		prefix := " "
		if i == m.edit.index {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-26s : %s\n", prefix, name, emptyPlaceholder(values[i])))
	}
	return b.String()
}

func (m Model) renderPalette() string {
	parts := make([]string, len(m.cfg.ListColors))
	for i, c := range m.cfg.ListColors {
		sw := badge(c)
		if i == wrapIndex(m.selectedColor, len(m.cfg.ListColors)) {
			sw = "[" + sw + "]"
		}
		parts[i] = sw
	}
	return "Color (tab to change): " + strings.Join(parts, " ")
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s important • %s edit • %s delete • %s/%s list • %s filter • %s new list • %s delete list • %s clear done • %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Important, k.Edit, k.Delete, k.NextList, k.PrevList, k.Filter, k.NewList, k.DeleteList, k.ClearCompleted, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
