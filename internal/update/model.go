package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/moodcal/internal/journal"
	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/scheduler"
	"github.com/sandeepkv93/moodcal/internal/todos"
	"github.com/sandeepkv93/moodcal/internal/unlock"
)

type View string

const (
	ViewCalendar View = "Calendar"
	ViewTodos    View = "Todos"
	ViewMoods    View = "Moods"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Notice is a toast that the scheduler dismisses after a while.
type Notice struct {
	Text  string
	Level string
}

type GlobalKeyMap struct {
	Calendar string
	Todos    string
	Moods    string
	Help     string
	Quit     string
}

// Services are the domain collaborators the UI drives. Scheduler and Logger
// are optional.
type Services struct {
	Journal   *journal.Service
	Todos     *todos.Controller
	Unlock    *unlock.Engine
	Scheduler *scheduler.Engine
	Logger    *logging.Logger
}

type Options struct {
	NoticeDuration time.Duration
	TrendDays      int
	Now            func() time.Time
}

type TodoInputMode string

const (
	TodoInputNone TodoInputMode = ""
	TodoInputAdd  TodoInputMode = "add"
	TodoInputEdit TodoInputMode = "edit"
)

type TodoState struct {
	Items            []model.TodoItem
	Cursor           int
	Input            TodoInputMode
	EditingID        string
	PendingConfirmID string
}

type MoodPickerState struct {
	Cursor int
}

// Snapshot holds what the panels show for the selected date. It is rebuilt
// from the services after every change.
type Snapshot struct {
	Unlock   unlock.Status
	Progress unlock.Progress
	Hints    []unlock.Hint
	Limit    todos.LimitInfo
	Mood     model.MoodRecord
	HasMood  bool
	Month    []journal.DayMood
	Trend    journal.Trend
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Today       string
	Selected    time.Time
	Todos       TodoState
	Moods       MoodPickerState
	Snapshot    Snapshot
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Notice      Notice
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx       context.Context
	svc       Services
	opts      Options
	log       *logging.Logger
	unlocks   chan todos.UnlockEvent
	cancelSub func()

	calendarTable  table.Model
	todoInput      textinput.Model
	commandInput   textinput.Model
	unlockProgress progress.Model
	helpModel      help.Model
	helpViewport   viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// UnlockMsg carries a todo mutation's unlock event into the update loop.
type UnlockMsg struct {
	Event todos.UnlockEvent
}

type SchedulerMsg struct {
	Event scheduler.Event
}

const (
	statusExpiryID = "status"
	noticeExpiryID = "notice"
)

func DefaultOptions() Options {
	return Options{NoticeDuration: 3 * time.Second, TrendDays: 7, Now: time.Now}
}

func NewModel(ctx context.Context, svc Services, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = DefaultOptions().NoticeDuration
	}
	if opts.TrendDays <= 0 {
		opts.TrendDays = DefaultOptions().TrendDays
	}
	now := opts.Now()
	m := Model{
		CurrentView: ViewCalendar,
		Today:       model.FormatDate(now),
		Selected:    startOfDay(now),
		Keys: GlobalKeyMap{
			Calendar: "1",
			Todos:    "2",
			Moods:    "3",
			Help:     "?",
			Quit:     "q",
		},
		ctx:     ctx,
		svc:     svc,
		opts:    opts,
		log:     logging.OrNop(svc.Logger).WithComponent("tui"),
		unlocks: make(chan todos.UnlockEvent, 8),
	}
	ch := m.unlocks
	m.cancelSub = svc.Todos.Subscribe(func(ev todos.UnlockEvent) {
		select {
		case ch <- ev:
		default:
		}
	})
	if svc.Scheduler != nil {
		if err := svc.Scheduler.ScheduleRollover(); err != nil {
			m.log.Warnw("day rollover not scheduled", "error", err)
		}
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

// Close detaches the model from the todo controller.
func (m Model) Close() {
	if m.cancelSub != nil {
		m.cancelSub()
	}
}

func (m *Model) initBubbleComponents() {
	cols := make([]table.Column, 0, 7)
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		cols = append(cols, table.Column{Title: wd, Width: 8})
	}
	m.calendarTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(7))

	m.todoInput = textinput.New()
	m.todoInput.Prompt = "todo> "
	m.todoInput.Placeholder = "what will you do today?"
	m.todoInput.CharLimit = model.MaxContentLength
	m.todoInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.unlockProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.helpViewport = viewport.New(42, 14)
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
