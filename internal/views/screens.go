package views

import (
	"fmt"
	"strings"
)

type CalendarPanelData struct {
	Month        string
	TableView    string
	SelectedDate string
	MoodLabel    string
	MoodColor    string
	TodoSummary  string
}

type TodoRowData struct {
	Content string
	State   string
}

type TodoPanelData struct {
	Date           string
	Items          []TodoRowData
	Cursor         int
	InputView      string
	Inputting      bool
	Limit          string
	PendingConfirm string
}

type MoodOptionData struct {
	Tag    string
	Label  string
	Color  string
	Score  int
	Locked bool
	Hint   string
}

type MoodPickerData struct {
	Date    string
	Current string
	Options []MoodOptionData
	Cursor  int
}

type UnlockPanelData struct {
	ProgressView string
	Completed    int
	Total        int
	Unlocked     int
	Available    int
	Hints        []string
}

type TrendData struct {
	Days    int
	Scores  []int
	Average float64
}

type HelpPanelData struct {
	CurrentView string
	HelpView    string
	Body        string
}

// DayCell is one calendar grid cell: the day number plus a short mood mark.
func DayCell(day int, mark string, selected, today bool) string {
	cell := fmt.Sprintf("%2d", day)
	if mark != "" {
		cell += " " + mark
	}
	switch {
	case selected:
		return "[" + cell + "]"
	case today:
		return "*" + cell
	default:
		return " " + cell
	}
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("calendar: %s\n", data.Month))
	b.WriteString("actions: [h/l]day [j/k]week [</>]month [t]today [enter]pick mood\n")
	b.WriteString(data.TableView + "\n")
	b.WriteString(fmt.Sprintf("\nselected: %s\n", data.SelectedDate))
	if data.MoodLabel == "" {
		b.WriteString("mood: " + Muted("(not recorded)") + "\n")
	} else {
		b.WriteString("mood: " + Colorize(data.MoodLabel, data.MoodColor) + "\n")
	}
	if data.TodoSummary != "" {
		b.WriteString("todos: " + data.TodoSummary)
	}
	return strings.TrimSpace(b.String())
}

func RenderTodoPanel(data TodoPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("todos: %s (%s)\n", data.Date, data.Limit))
	b.WriteString("actions: [a]add [r]reward [e]edit [space]complete [x]toggle [d]delete\n")
	if len(data.Items) == 0 {
		b.WriteString(Muted("  (no todos yet)") + "\n")
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s\n", cursor, i+1, stateBadge(item.State), item.Content))
	}
	if data.Inputting {
		b.WriteString("\n" + data.InputView + "\n")
	}
	if data.PendingConfirm != "" {
		b.WriteString(fmt.Sprintf("\ncomplete %q? it will be locked for good. [y]es [n]o", data.PendingConfirm))
	}
	return strings.TrimSpace(b.String())
}

func RenderMoodPicker(data MoodPickerData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("moods for %s\n", data.Date))
	if data.Current != "" {
		b.WriteString(fmt.Sprintf("current: %s\n", data.Current))
	}
	b.WriteString("actions: [j/k]move [enter]select [c]clear\n")
	for i, opt := range data.Options {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		label := Colorize(opt.Label, opt.Color)
		if opt.Locked {
			label = Muted(opt.Label + " (locked)")
		}
		b.WriteString(fmt.Sprintf("%s %d %s", cursor, opt.Score, label))
		if opt.Locked && i == data.Cursor && opt.Hint != "" {
			b.WriteString("\n    " + Muted(opt.Hint))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderUnlockPanel(data UnlockPanelData) string {
	var b strings.Builder
	b.WriteString("unlocks:\n")
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("completed %d/%d | moods %d/%d\n", data.Completed, data.Total, data.Unlocked, data.Available))
	for _, hint := range data.Hints {
		b.WriteString("- " + hint + "\n")
	}
	return strings.TrimSpace(b.String())
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps scores 1..top onto block characters; 0 renders as a dot.
func Sparkline(scores []int, top int) string {
	if top <= 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range scores {
		if s <= 0 {
			b.WriteRune('·')
			continue
		}
		idx := (min(s, top) - 1) * (len(sparks) - 1) / max(top-1, 1)
		b.WriteRune(sparks[idx])
	}
	return b.String()
}

func RenderTrend(data TrendData, maxScore int) string {
	line := Sparkline(data.Scores, maxScore)
	if data.Average == 0 {
		return fmt.Sprintf("trend (%dd): %s", data.Days, line)
	}
	return fmt.Sprintf("trend (%dd): %s avg %.1f", data.Days, line, data.Average)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotice(level, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s", strings.ToLower(data.CurrentView), data.Body, data.HelpView)
}

func stateBadge(state string) string {
	switch state {
	case "locked":
		return "[✓]"
	case "completed":
		return "[x]"
	default:
		return "[ ]"
	}
}
