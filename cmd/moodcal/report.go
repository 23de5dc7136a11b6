package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func newTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend [days]",
		Short: "Show the mood scores of the last days",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrend,
	}
}

func newCleanupCmd() *cobra.Command {
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Drop todos older than the retention window",
		Args:  cobra.NoArgs,
		RunE:  runCleanup,
	}
	cleanupCmd.Flags().Int("keep-days", -1, "days of todos to keep (default retention_days)")
	return cleanupCmd
}

func runTrend(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	days := a.cfg.TrendDays
	if len(args) == 1 {
		days, err = strconv.Atoi(args[0])
		if err != nil || days < 1 {
			return fmt.Errorf("trend: days must be a positive integer, got %q", args[0])
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	trend := a.journal.Trend(ctx, days)
	stats := a.todoStore.RecentStats(ctx, days)
	done := make(map[string]model.DayStats, len(stats))
	for _, s := range stats {
		done[s.Date] = s
	}

	scores := make([]int, 0, len(trend.Points))
	for _, p := range trend.Points {
		scores = append(scores, p.Score)
		mood := "-"
		if p.IsSet() {
			mood = fmt.Sprintf("%s (%d)", p.Mood.Label(), p.Score)
		}
		s := done[p.Date]
		fmt.Fprintf(out, "%s  %-14s todos %d/%d\n", p.Date, mood, s.Completed, s.Total)
	}
	fmt.Fprintf(out, "%s\n", views.Sparkline(scores, model.SuperMood.Score()))
	if trend.Recorded == 0 {
		fmt.Fprintln(out, "average: no moods recorded")
		return nil
	}
	fmt.Fprintf(out, "average: %.1f over %d day(s)\n", trend.Average, trend.Recorded)
	return nil
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	keep, _ := cmd.Flags().GetInt("keep-days")
	if keep < 0 {
		keep = a.cfg.RetentionDays
	}
	removed, err := a.todoStore.Cleanup(cmd.Context(), keep)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	cutoff := model.FormatDate(time.Now().AddDate(0, 0, -keep))
	fmt.Fprintf(cmd.OutOrStdout(), "removed todos of %d day(s) before %s\n", removed, cutoff)
	return nil
}
