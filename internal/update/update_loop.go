package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForUnlockCmd(m.unlocks)}
	if m.svc.Scheduler != nil {
		cmds = append(cmds, waitForSchedulerCmd(m.svc.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Todos.Input != TodoInputNone {
			return m.handleTodoInputKey(typed), nil
		}
		if m.Todos.PendingConfirmID != "" {
			return m.handleConfirmKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		case m.Keys.Calendar:
			m.switchView(ViewCalendar)
			return m, nil
		case m.Keys.Todos:
			m.switchView(ViewTodos)
			return m, nil
		case m.Keys.Moods:
			m.switchView(ViewMoods)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			m.refreshHelp()
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewTodos:
			return m.handleTodoKey(typed), nil
		case ViewMoods:
			return m.handleMoodKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.setStatus(typed.Text, typed.IsError)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.fail(typed.Err)
		return m, nil
	case UnlockMsg:
		m.onUnlock(typed.Event)
		return m, waitForUnlockCmd(m.unlocks)
	case SchedulerMsg:
		m.onSchedulerEvent(typed.Event)
		if m.svc.Scheduler != nil {
			return m, waitForSchedulerCmd(m.svc.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	left := ""
	switch m.CurrentView {
	case ViewCalendar:
		left = m.renderCalendarView()
	case ViewTodos:
		left = m.renderTodoView()
	case ViewMoods:
		left = m.renderMoodView()
	}
	right := joinSections(
		m.renderUnlockPanel(),
		m.renderTrend(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	)

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}
	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("moodcal | view: %s | date: %s", m.CurrentView, m.selectedDate()),
		LeftPane:    left,
		RightPane:   right,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Notice:      views.RenderNotice(m.Notice.Level, m.Notice.Text),
		Footer: fmt.Sprintf("keys: %s calendar | %s todos | %s moods | / cmd | %s help | %s quit",
			m.Keys.Calendar, m.Keys.Todos, m.Keys.Moods, m.Keys.Help, m.Keys.Quit),
	})
}

func (m *Model) switchView(v View) {
	m.CurrentView = v
	m.Todos.Input = TodoInputNone
	m.Todos.PendingConfirmID = ""
	m.todoInput.Blur()
	if v == ViewMoods {
		m.Moods.Cursor = moodIndex(m.Snapshot.Mood.Mood)
	}
	m.refreshHelp()
}

// refresh reloads everything the panels show for the selected date.
func (m *Model) refresh() {
	date := m.selectedDate()
	m.Todos.Items = m.svc.Todos.List(m.ctx, date)
	m.Todos.Cursor = clamp(m.Todos.Cursor, len(m.Todos.Items))
	m.Snapshot.Unlock = m.svc.Unlock.Status(m.ctx, date)
	m.Snapshot.Progress = m.svc.Unlock.Progress(m.ctx, date)
	m.Snapshot.Hints = m.svc.Unlock.Hints(m.ctx, date)
	m.Snapshot.Limit = m.svc.Todos.LimitInfo(m.ctx, date)
	m.Snapshot.Mood, m.Snapshot.HasMood = m.svc.Journal.Mood(m.ctx, date)
	m.Snapshot.Month = m.svc.Journal.MonthSummary(m.ctx, m.Selected.Year(), m.Selected.Month())
	m.Snapshot.Trend = m.svc.Journal.Trend(m.ctx, m.opts.TrendDays)
	m.syncBubbleData()
}

func (m *Model) syncBubbleData() {
	rows, cursor := monthRows(m.Snapshot.Month, m.selectedDate(), m.Today)
	m.calendarTable.SetRows(rows)
	m.calendarTable.SetCursor(cursor)
}

func (m Model) selectedDate() string {
	return model.FormatDate(m.Selected)
}

func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.log.WithDate(m.selectedDate()).Warnw("action failed", "error", err)
	m.setStatus(err.Error(), true)
}

func isKnownView(v View) bool {
	switch v {
	case ViewCalendar, ViewTodos, ViewMoods:
		return true
	default:
		return false
	}
}

func joinSections(sections ...string) string {
	kept := make([]string, 0, len(sections))
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}
