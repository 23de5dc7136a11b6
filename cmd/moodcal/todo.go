package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/moodcal/internal/model"
)

func newTodoCmd() *cobra.Command {
	todoCmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todos of a day",
	}
	todoCmd.PersistentFlags().String("date", "", "day to work on, YYYY-MM-DD (default today)")

	doneCmd := &cobra.Command{
		Use:   "done <n>",
		Short: "Complete todo n and lock it for good",
		Args:  cobra.ExactArgs(1),
		RunE:  runTodoDone,
	}
	doneCmd.Flags().Bool("yes", false, "confirm the completion; locked todos cannot be changed again")

	todoCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the todos of the day",
			Args:  cobra.NoArgs,
			RunE:  runTodoList,
		},
		&cobra.Command{
			Use:   "add <content...>",
			Short: "Add a todo",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runTodoAdd,
		},
		&cobra.Command{
			Use:   "reward",
			Short: "Add a suggested reward todo",
			Args:  cobra.NoArgs,
			RunE:  runTodoReward,
		},
		doneCmd,
		&cobra.Command{
			Use:   "toggle <n>",
			Short: "Flip the completed flag of todo n",
			Args:  cobra.ExactArgs(1),
			RunE:  runTodoToggle,
		},
		&cobra.Command{
			Use:   "edit <n> <content...>",
			Short: "Replace the text of todo n",
			Args:  cobra.MinimumNArgs(2),
			RunE:  runTodoEdit,
		},
		&cobra.Command{
			Use:     "rm <n>",
			Aliases: []string{"delete"},
			Short:   "Delete todo n",
			Args:    cobra.ExactArgs(1),
			RunE:    runTodoRemove,
		},
	)
	return todoCmd
}

func todoDate(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("date")
	return dateArg([]string{raw}, 0)
}

// todoAt resolves a 1-based position as printed by "todo list".
func (a *app) todoAt(ctx context.Context, date, raw string) (model.TodoItem, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return model.TodoItem{}, model.ValidationError(fmt.Sprintf("todo number must be an integer, got %q", raw))
	}
	items := a.todos.List(ctx, date)
	if n < 1 || n > len(items) {
		return model.TodoItem{}, model.NotFoundError(fmt.Sprintf("there is no todo #%d", n))
	}
	return items[n-1], nil
}

func checkbox(item model.TodoItem) string {
	switch item.State() {
	case model.TodoStateLocked:
		return "[#]"
	case model.TodoStateCompleted:
		return "[x]"
	default:
		return "[ ]"
	}
}

func runTodoList(cmd *cobra.Command, _ []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo list: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	items := a.todos.List(cmd.Context(), date)
	if len(items) == 0 {
		fmt.Fprintf(out, "%s: no todos\n", date)
		return nil
	}
	for i, item := range items {
		fmt.Fprintf(out, "%d. %s %s\n", i+1, checkbox(item), item.Content)
	}
	return nil
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo add: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	item, err := a.todos.Add(cmd.Context(), date, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("todo add: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", item.Content)
	return nil
}

func runTodoReward(cmd *cobra.Command, _ []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo reward: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	item, err := a.todos.AddReward(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("todo reward: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reward added: %s\n", item.Content)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo done: %w", err)
	}
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return errors.New("todo done: completing locks the todo for good, pass --yes to confirm")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	target, err := a.todoAt(ctx, date, args[0])
	if err != nil {
		return fmt.Errorf("todo done: %w", err)
	}
	stop := a.announceUnlocks(cmd.OutOrStdout())
	defer stop()
	item, err := a.todos.ConfirmCompletion(ctx, date, target.ID)
	if err != nil {
		return fmt.Errorf("todo done: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "completed: %s\n", item.Content)
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo toggle: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	target, err := a.todoAt(ctx, date, args[0])
	if err != nil {
		return fmt.Errorf("todo toggle: %w", err)
	}
	stop := a.announceUnlocks(cmd.OutOrStdout())
	defer stop()
	item, err := a.todos.ToggleCompletion(ctx, date, target.ID)
	if err != nil {
		return fmt.Errorf("todo toggle: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(item), item.Content)
	return nil
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo edit: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	target, err := a.todoAt(ctx, date, args[0])
	if err != nil {
		return fmt.Errorf("todo edit: %w", err)
	}
	item, err := a.todos.Edit(ctx, date, target.ID, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("todo edit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated: %s\n", item.Content)
	return nil
}

func runTodoRemove(cmd *cobra.Command, args []string) error {
	date, err := todoDate(cmd)
	if err != nil {
		return fmt.Errorf("todo rm: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	target, err := a.todoAt(ctx, date, args[0])
	if err != nil {
		return fmt.Errorf("todo rm: %w", err)
	}
	if err := a.todos.Delete(ctx, date, target.ID); err != nil {
		return fmt.Errorf("todo rm: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", target.Content)
	return nil
}
