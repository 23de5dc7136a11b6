package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/update"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moodcal",
		Short:         "Mood calendar with a todo unlock ladder",
		Long:          "moodcal records one mood per day. Completing todos for a day unlocks brighter moods for that day.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	root.PersistentFlags().String("config", "", "config file (default ~/.config/moodcal/config.yaml)")
	root.PersistentFlags().String("db", "", "sqlite database path (overrides db_path)")
	root.PersistentFlags().Bool("ephemeral", false, "keep data in memory only")

	root.AddCommand(
		newStatusCmd(),
		newMoodCmd(),
		newTodoCmd(),
		newTrendCmd(),
		newCleanupCmd(),
	)
	return root
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := a.startScheduler()
	defer sched.Stop()

	m := update.NewModel(cmd.Context(), update.Services{
		Journal:   a.journal,
		Todos:     a.todos,
		Unlock:    a.engine,
		Scheduler: sched,
		Logger:    a.log,
	}, update.Options{
		NoticeDuration: time.Duration(a.cfg.NoticeSeconds) * time.Second,
		TrendDays:      a.cfg.TrendDays,
	})
	defer m.Close()

	program := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("moodcal tui: %w", err)
	}
	return nil
}
