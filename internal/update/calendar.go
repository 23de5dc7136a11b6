package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/journal"
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftSelected(0, -1)
	case "l", "right":
		m.shiftSelected(0, 1)
	case "k", "up":
		m.shiftSelected(0, -7)
	case "j", "down":
		m.shiftSelected(0, 7)
	case "<", "[":
		m.shiftSelected(-1, 0)
	case ">", "]":
		m.shiftSelected(1, 0)
	case "t":
		m.goTo(m.Today)
	case "enter":
		m.switchView(ViewMoods)
	}
	return m
}

func (m *Model) shiftSelected(months, days int) {
	if months != 0 {
		// Clamp to the target month's last day instead of overflowing.
		first := time.Date(m.Selected.Year(), m.Selected.Month()+time.Month(months), 1, 0, 0, 0, 0, m.Selected.Location())
		last := first.AddDate(0, 1, -1).Day()
		m.Selected = first.AddDate(0, 0, min(m.Selected.Day(), last)-1)
	}
	m.Selected = m.Selected.AddDate(0, 0, days)
	m.Todos.Cursor = 0
	m.refresh()
}

func (m *Model) goTo(date string) {
	t, err := model.ParseDate(date)
	if err != nil {
		m.fail(err)
		return
	}
	m.Selected = t
	m.Todos.Cursor = 0
	m.refresh()
}

// monthRows lays the month out Monday-first and returns the row holding the
// selected day.
func monthRows(days []journal.DayMood, selected, today string) ([]table.Row, int) {
	if len(days) == 0 {
		return nil, 0
	}
	first, err := model.ParseDate(days[0].Date)
	if err != nil {
		return nil, 0
	}
	offset := (int(first.Weekday()) + 6) % 7

	var rows []table.Row
	row := make(table.Row, 7)
	cursor := 0
	col := offset
	for _, day := range days {
		mark := ""
		if day.Set {
			mark = moodMark(day.Record.Mood)
		}
		row[col] = views.DayCell(day.Day, mark, day.Date == selected, day.Date == today)
		if day.Date == selected {
			cursor = len(rows)
		}
		col++
		if col == 7 {
			rows = append(rows, row)
			row = make(table.Row, 7)
			col = 0
		}
	}
	if col > 0 {
		rows = append(rows, row)
	}
	return rows, cursor
}

func moodMark(tag model.MoodTag) string {
	s := string(tag)
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}

func (m Model) renderCalendarView() string {
	label, color := "", ""
	if m.Snapshot.HasMood {
		cfg := m.Snapshot.Mood.Mood.Config()
		label, color = cfg.Label, cfg.Color
	}
	done := 0
	for _, item := range m.Todos.Items {
		if item.Completed {
			done++
		}
	}
	summary := ""
	if len(m.Todos.Items) > 0 {
		summary = fmt.Sprintf("%d/%d completed", done, len(m.Todos.Items))
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Month:        m.Selected.Format("January 2006"),
		TableView:    m.calendarTable.View(),
		SelectedDate: m.selectedDate(),
		MoodLabel:    label,
		MoodColor:    color,
		TodoSummary:  summary,
	})
}
