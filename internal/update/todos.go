package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func (m Model) handleTodoKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Todos.Cursor > 0 {
			m.Todos.Cursor--
		}
	case "down", "j":
		if m.Todos.Cursor < len(m.Todos.Items)-1 {
			m.Todos.Cursor++
		}
	case "a":
		if !m.Snapshot.Limit.CanAdd {
			m.setStatus(fmt.Sprintf("you can add at most %d todos per day", model.MaxTodosPerDay), true)
			return m
		}
		m.startTodoInput(TodoInputAdd, "", "")
	case "e":
		item, ok := m.currentTodo()
		if !ok {
			return m
		}
		if item.Locked {
			m.setStatus("completed todos are locked and cannot be edited", true)
			return m
		}
		m.startTodoInput(TodoInputEdit, item.ID, item.Content)
	case "r":
		m.addReward()
	case " ", "enter":
		item, ok := m.currentTodo()
		if !ok {
			return m
		}
		if item.Locked {
			m.setStatus("this todo is already completed", false)
			return m
		}
		m.Todos.PendingConfirmID = item.ID
	case "x":
		if item, ok := m.currentTodo(); ok {
			m.toggleTodo(item.ID)
		}
	case "d":
		if item, ok := m.currentTodo(); ok {
			m.deleteTodo(item.ID)
		}
	}
	return m
}

func (m Model) handleTodoInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.stopTodoInput()
		return m
	case "enter":
		value := m.todoInput.Value()
		switch m.Todos.Input {
		case TodoInputAdd:
			if m.addTodo(value) {
				m.stopTodoInput()
			}
		case TodoInputEdit:
			if m.editTodo(m.Todos.EditingID, value) {
				m.stopTodoInput()
			}
		}
		return m
	}
	var cmd tea.Cmd
	m.todoInput, cmd = m.todoInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	id := m.Todos.PendingConfirmID
	m.Todos.PendingConfirmID = ""
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmTodo(id)
	default:
		m.setStatus("completion cancelled", false)
	}
	return m
}

func (m *Model) startTodoInput(mode TodoInputMode, id, value string) {
	m.Todos.Input = mode
	m.Todos.EditingID = id
	m.todoInput.SetValue(value)
	m.todoInput.CursorEnd()
	m.todoInput.Focus()
}

func (m *Model) stopTodoInput() {
	m.Todos.Input = TodoInputNone
	m.Todos.EditingID = ""
	m.todoInput.SetValue("")
	m.todoInput.Blur()
}

func (m Model) currentTodo() (model.TodoItem, bool) {
	if m.Todos.Cursor < 0 || m.Todos.Cursor >= len(m.Todos.Items) {
		return model.TodoItem{}, false
	}
	return m.Todos.Items[m.Todos.Cursor], true
}

// todoAt resolves a 1-based list position as typed in the command palette.
func (m Model) todoAt(index int) (model.TodoItem, error) {
	if index < 1 || index > len(m.Todos.Items) {
		return model.TodoItem{}, model.NotFoundError(fmt.Sprintf("there is no todo #%d", index))
	}
	return m.Todos.Items[index-1], nil
}

func (m *Model) addTodo(content string) bool {
	item, err := m.svc.Todos.Add(m.ctx, m.selectedDate(), content)
	if err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.Todos.Cursor = len(m.Todos.Items) - 1
	m.setStatus("added: "+item.Content, false)
	return true
}

func (m *Model) addReward() bool {
	item, err := m.svc.Todos.AddReward(m.ctx, m.selectedDate())
	if err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.Todos.Cursor = len(m.Todos.Items) - 1
	m.setStatus("reward added: "+item.Content, false)
	return true
}

func (m *Model) editTodo(id, content string) bool {
	if _, err := m.svc.Todos.Edit(m.ctx, m.selectedDate(), id, content); err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.setStatus("todo updated", false)
	return true
}

func (m *Model) toggleTodo(id string) bool {
	item, err := m.svc.Todos.ToggleCompletion(m.ctx, m.selectedDate(), id)
	if err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	if item.Completed {
		m.setStatus("marked done: "+item.Content, false)
	} else {
		m.setStatus("reopened: "+item.Content, false)
	}
	return true
}

func (m *Model) confirmTodo(id string) bool {
	item, err := m.svc.Todos.ConfirmCompletion(m.ctx, m.selectedDate(), id)
	if err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.setStatus("completed: "+item.Content, false)
	return true
}

func (m *Model) deleteTodo(id string) bool {
	if err := m.svc.Todos.Delete(m.ctx, m.selectedDate(), id); err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.setStatus("todo deleted", false)
	return true
}

func (m Model) renderTodoView() string {
	rows := make([]views.TodoRowData, 0, len(m.Todos.Items))
	pending := ""
	for _, item := range m.Todos.Items {
		rows = append(rows, views.TodoRowData{Content: item.Content, State: string(item.State())})
		if item.ID == m.Todos.PendingConfirmID {
			pending = item.Content
		}
	}
	return views.RenderTodoPanel(views.TodoPanelData{
		Date:           m.selectedDate(),
		Items:          rows,
		Cursor:         m.Todos.Cursor,
		InputView:      m.todoInput.View(),
		Inputting:      m.Todos.Input != TodoInputNone,
		Limit:          fmt.Sprintf("%d/%d", m.Snapshot.Limit.Current, m.Snapshot.Limit.Max),
		PendingConfirm: pending,
	})
}
