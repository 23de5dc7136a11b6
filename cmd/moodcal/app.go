package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/config"
	"github.com/sandeepkv93/moodcal/internal/journal"
	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/scheduler"
	"github.com/sandeepkv93/moodcal/internal/storage"
	"github.com/sandeepkv93/moodcal/internal/todos"
	"github.com/sandeepkv93/moodcal/internal/unlock"
)

// app is the wired object graph shared by the TUI and the subcommands.
type app struct {
	cfg       config.RuntimeConfig
	log       *logging.Logger
	todoStore *storage.TodoStore
	engine    *unlock.Engine
	todos     *todos.Controller
	journal   *journal.Service

	closers []func() error
}

func openApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	dbPath, _ := flags.GetString("db")
	ephemeral, _ := flags.GetBool("ephemeral")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.DBPath = dbPath
	}

	logger, err := logging.New(cfg.Log.Logging())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &app{cfg: cfg, log: logger}
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	var kv storage.KV
	if ephemeral {
		kv = storage.NewMemoryKV()
	} else {
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
		}
		kv = db
		a.closers = append(a.closers, db.Close)
	}

	moods := storage.NewMoodStore(kv, logger)
	a.todoStore = storage.NewTodoStore(kv, logger)
	a.engine = unlock.NewEngine(a.todoStore)
	a.todos = todos.NewController(a.todoStore, a.engine, logger)
	a.journal = journal.NewService(moods, a.engine, logger)

	unlockLog := logger.WithComponent("unlock")
	cancel := a.todos.Subscribe(func(ev todos.UnlockEvent) {
		if len(ev.Newly) == 0 {
			return
		}
		unlockLog.WithDate(ev.Date).Infow("moods unlocked",
			"moods", ev.Newly,
			"completed", ev.Status.CompletedTodos,
		)
	})
	a.closers = append(a.closers, func() error {
		cancel()
		return nil
	})

	logger.Debugw("moodcal ready", "db_path", cfg.DBPath, "ephemeral", ephemeral)
	return a, nil
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warnw("close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *app) startScheduler() *scheduler.Engine {
	sched := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	sched.Start()
	return sched
}

// announceUnlocks prints newly unlocked moods to w until the returned func
// is called.
func (a *app) announceUnlocks(w io.Writer) func() {
	return a.todos.Subscribe(func(ev todos.UnlockEvent) {
		for _, mood := range ev.Newly {
			if mood.IsSuper() {
				fmt.Fprintf(w, "unlocked the super mood %q for %s\n", mood.Label(), ev.Date)
				continue
			}
			fmt.Fprintf(w, "unlocked %q for %s\n", mood.Label(), ev.Date)
		}
	})
}

// dateArg returns the optional date argument at index i, defaulting to today.
func dateArg(args []string, i int) (string, error) {
	if len(args) <= i || strings.TrimSpace(args[i]) == "" {
		return model.FormatDate(time.Now()), nil
	}
	date := strings.TrimSpace(args[i])
	if err := model.ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}
