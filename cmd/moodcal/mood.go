package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/model"
)

func newMoodCmd() *cobra.Command {
	moodCmd := &cobra.Command{
		Use:   "mood",
		Short: "Record or clear the mood of a day",
	}
	moodCmd.AddCommand(
		&cobra.Command{
			Use:   "set <mood> [date]",
			Short: "Record a mood; it must be unlocked for that day",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  runMoodSet,
		},
		&cobra.Command{
			Use:   "clear [date]",
			Short: "Remove the recorded mood of a day",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runMoodClear,
		},
		&cobra.Command{
			Use:   "list [date]",
			Short: "List every mood and whether it is unlocked",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runMoodList,
		},
	)
	return moodCmd
}

func runMoodSet(cmd *cobra.Command, args []string) error {
	mood, err := model.ParseMoodTag(args[0])
	if err != nil {
		return fmt.Errorf("mood set: %w", err)
	}
	date, err := dateArg(args, 1)
	if err != nil {
		return fmt.Errorf("mood set: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.journal.SelectMood(cmd.Context(), date, mood)
	if err != nil {
		return fmt.Errorf("mood set: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d)\n", rec.Date, rec.Mood.Label(), rec.Score)
	return nil
}

func runMoodClear(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return fmt.Errorf("mood clear: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.journal.ClearMood(cmd.Context(), date); err != nil {
		return fmt.Errorf("mood clear: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: mood cleared\n", date)
	return nil
}

func runMoodList(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return fmt.Errorf("mood list: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, mood := range model.AllMoods() {
		check := a.engine.ValidateMoodSelection(ctx, date, mood)
		if check.Valid {
			fmt.Fprintf(out, "  %-9s %d\n", mood, mood.Score())
			continue
		}
		fmt.Fprintf(out, "x %-9s %d  %s\n", mood, mood.Score(), check.Reason)
	}
	return nil
}
