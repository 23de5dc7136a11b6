package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func (m Model) handleMoodKey(msg tea.KeyMsg) Model {
	moods := model.AllMoods()
	switch msg.String() {
	case "up", "k":
		if m.Moods.Cursor > 0 {
			m.Moods.Cursor--
		}
	case "down", "j":
		if m.Moods.Cursor < len(moods)-1 {
			m.Moods.Cursor++
		}
	case "enter", " ":
		m.selectMood(moods[m.Moods.Cursor])
	case "c":
		m.clearMood()
	case "esc":
		m.switchView(ViewCalendar)
	}
	return m
}

func (m *Model) selectMood(tag model.MoodTag) bool {
	rec, err := m.svc.Journal.SelectMood(m.ctx, m.selectedDate(), tag)
	if err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("mood for %s: %s", rec.Date, rec.Mood.Label()), false)
	return true
}

func (m *Model) clearMood() bool {
	if err := m.svc.Journal.ClearMood(m.ctx, m.selectedDate()); err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	m.setStatus("mood cleared for "+m.selectedDate(), false)
	return true
}

func moodIndex(tag model.MoodTag) int {
	for i, m := range model.AllMoods() {
		if m == tag {
			return i
		}
	}
	return 0
}

func (m Model) renderMoodView() string {
	date := m.selectedDate()
	options := make([]views.MoodOptionData, 0, len(model.AllMoods()))
	for _, tag := range model.AllMoods() {
		cfg := tag.Config()
		opt := views.MoodOptionData{
			Tag:    string(tag),
			Label:  cfg.Label,
			Color:  cfg.Color,
			Score:  cfg.Score,
			Locked: !m.Snapshot.Unlock.Has(tag),
		}
		if opt.Locked {
			opt.Hint = m.svc.Unlock.ValidateMoodSelection(m.ctx, date, tag).Reason
		}
		options = append(options, opt)
	}
	current := ""
	if m.Snapshot.HasMood {
		current = m.Snapshot.Mood.Mood.Label()
	}
	return views.RenderMoodPicker(views.MoodPickerData{
		Date:    date,
		Current: current,
		Options: options,
		Cursor:  m.Moods.Cursor,
	})
}
