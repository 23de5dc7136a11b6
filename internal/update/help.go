package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/moodcal/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	global := m.keyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Body:        m.helpViewport.View(),
		HelpView:    m.helpModel.View(helpKeyMap{short: global, full: [][]key.Binding{global}}),
	})
}

// refreshHelp re-renders the markdown help for the current view into the
// viewport. View only reads the cached content.
func (m *Model) refreshHelp() {
	if !m.HelpVisible {
		return
	}
	m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown(), m.helpViewport.Width))
	m.helpViewport.GotoTop()
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", m.CurrentView)
	for _, kb := range m.viewBindings() {
		fmt.Fprintf(&b, "- `%s` %s\n", kb.Key, kb.Action)
	}
	b.WriteString("\n## Commands\n\n")
	for _, line := range []string{
		"`/mood <tag>` record a mood",
		"`/clear` clear the day's mood",
		"`/add <text>` add a todo",
		"`/reward` add a reward todo",
		"`/done <n>` complete and lock todo n",
		"`/toggle <n>` toggle todo n",
		"`/edit <n> <text>` rewrite todo n",
		"`/rm <n>` delete todo n",
		"`/goto <date|today>` jump to a day",
	} {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\nCompleting todos unlocks moods: one todo per tier, five for the super mood.\n")
	return b.String()
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Calendar, Action: "calendar"},
		{Key: m.Keys.Todos, Action: "todos"},
		{Key: m.Keys.Moods, Action: "moods"},
		{Key: "/", Action: "command"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "next/previous week"},
			{Key: "</>", Action: "previous/next month"},
			{Key: "t", Action: "jump to today"},
			{Key: "enter", Action: "pick a mood for the day"},
		}
	case ViewTodos:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "add a todo"},
			{Key: "r", Action: "add a reward todo"},
			{Key: "e", Action: "edit the selected todo"},
			{Key: "space", Action: "complete and lock the selected todo"},
			{Key: "x", Action: "toggle completion"},
			{Key: "d", Action: "delete the selected todo"},
		}
	case ViewMoods:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "record the selected mood"},
			{Key: "c", Action: "clear the day's mood"},
			{Key: "esc", Action: "back to calendar"},
		}
	default:
		return nil
	}
}

func (m Model) keyBindings(bindings []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
