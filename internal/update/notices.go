package update

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/scheduler"
	"github.com/sandeepkv93/moodcal/internal/todos"
)

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerMsg{Event: ev}
	}
}

func waitForUnlockCmd(ch <-chan todos.UnlockEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return UnlockMsg{Event: ev}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.Status = StatusBar{Text: text, IsError: isErr}
	m.expire(statusExpiryID)
}

func (m *Model) showNotice(text, level string) {
	m.Notice = Notice{Text: text, Level: level}
	m.expire(noticeExpiryID)
}

func (m *Model) expire(id string) {
	if m.svc.Scheduler == nil {
		return
	}
	if err := m.svc.Scheduler.ExpireNotice(id, m.opts.NoticeDuration); err != nil {
		m.log.Debugw("notice expiry not scheduled", "id", id, "error", err)
	}
}

func (m *Model) onSchedulerEvent(ev scheduler.Event) {
	switch ev.Kind {
	case scheduler.KindNoticeExpire:
		switch ev.ID {
		case statusExpiryID:
			m.Status = StatusBar{}
		case noticeExpiryID:
			m.Notice = Notice{}
		}
	case scheduler.KindDayRollover:
		m.rollover()
	}
}

// rollover moves "today" forward. A selection sitting on the old today
// follows it.
func (m *Model) rollover() {
	prev := m.Today
	m.Today = model.FormatDate(m.opts.Now())
	if m.selectedDate() == prev {
		m.Selected = startOfDay(m.opts.Now())
	}
	m.refresh()
	if m.svc.Scheduler != nil {
		if err := m.svc.Scheduler.ScheduleRollover(); err != nil {
			m.log.Warnw("day rollover not rescheduled", "error", err)
		}
	}
	m.log.Infow("day rolled over", "from", prev, "to", m.Today)
}

func (m *Model) onUnlock(ev todos.UnlockEvent) {
	if ev.Date == m.selectedDate() {
		m.refresh()
	}
	if len(ev.Newly) == 0 {
		return
	}
	labels := make([]string, 0, len(ev.Newly))
	for _, tag := range ev.Newly {
		labels = append(labels, tag.Label())
	}
	text := "unlocked: " + strings.Join(labels, ", ")
	if slices.Contains(ev.Newly, model.SuperMood) {
		text = "all todos done, the super mood is yours today!"
	}
	m.showNotice(text, "success")
}
