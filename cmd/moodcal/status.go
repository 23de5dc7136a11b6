package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/model"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [date]",
		Short: "Show the mood, todos and unlock progress of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "date: %s\n", date)
	if rec, ok := a.journal.Mood(ctx, date); ok {
		fmt.Fprintf(out, "mood: %s (%d)\n", rec.Mood.Label(), rec.Score)
	} else {
		fmt.Fprintln(out, "mood: not set")
	}

	progress := a.engine.Progress(ctx, date)
	limit := a.todos.LimitInfo(ctx, date)
	fmt.Fprintf(out, "todos: %d completed, %d/%d added\n", progress.Completed, limit.Current, limit.Max)
	fmt.Fprintf(out, "moods: %d/%d unlocked (%d%%)\n", progress.Unlocked, progress.Available, progress.Percentage)

	labels := make([]string, 0, progress.Unlocked)
	for _, mood := range a.engine.AvailableMoods(ctx, date) {
		labels = append(labels, mood.Label())
	}
	fmt.Fprintf(out, "available: %s\n", strings.Join(labels, ", "))

	hints := a.engine.Hints(ctx, date)
	if len(hints) == 0 {
		fmt.Fprintf(out, "all moods unlocked, %q included\n", model.SuperMood.Label())
	}
	for _, hint := range hints {
		fmt.Fprintf(out, "next: %s (%s)\n", hint.Message, hint.Progress)
	}
	return nil
}
