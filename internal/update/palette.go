package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/moodcal/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m
	}

	// Handlers report failures through the status bar themselves, so an
	// empty result message means the action did not go through.
	ok := func(done bool, msg string) (commands.Result, error) {
		if !done {
			return commands.Result{}, nil
		}
		return commands.Result{Message: msg}, nil
	}
	byIndex := func(index int, act func(id string) bool, verb string) (commands.Result, error) {
		item, err := m.todoAt(index)
		if err != nil {
			return commands.Result{}, err
		}
		return ok(act(item.ID), fmt.Sprintf("%s #%d", verb, index))
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Mood: func(a commands.MoodArgs) (commands.Result, error) {
			return ok(m.selectMood(a.Mood), "mood recorded: "+a.Mood.Label())
		},
		Clear: func() (commands.Result, error) {
			return ok(m.clearMood(), "mood cleared")
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewTodos
			return ok(m.addTodo(a.Content), "todo added")
		},
		Reward: func() (commands.Result, error) {
			m.CurrentView = ViewTodos
			return ok(m.addReward(), "reward todo added")
		},
		Done: func(a commands.ItemArgs) (commands.Result, error) {
			return byIndex(a.Index, m.confirmTodo, "completed")
		},
		Toggle: func(a commands.ItemArgs) (commands.Result, error) {
			return byIndex(a.Index, m.toggleTodo, "toggled")
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			return byIndex(a.Index, func(id string) bool { return m.editTodo(id, a.Content) }, "edited")
		},
		Remove: func(a commands.ItemArgs) (commands.Result, error) {
			return byIndex(a.Index, m.deleteTodo, "deleted")
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			date := a.Date
			if date == "" {
				date = m.Today
			}
			m.goTo(date)
			return commands.Result{Message: "showing " + m.selectedDate()}, nil
		},
	})
	if err != nil {
		m.fail(err)
		return m
	}
	if res.Message != "" {
		m.setStatus(res.Message, false)
	}
	return m
}
