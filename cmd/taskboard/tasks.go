package main

import (
	"encoding/json"
	"fmt"
	"io"

	"taskboard/pkg/task"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty tasks file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := task.InitFile(a.cfg.TasksFile)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", a.cfg.TasksFile)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", a.cfg.TasksFile)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.store().List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tasks)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var f task.Fields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Long: `Create a task. All fields are required and the start date must not be
after the end date.

Examples:
  taskboard add --title "Inventory" --employee Bob \
    --start 2024-01-01 --end 2024-01-05 --description "Count the stock"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store().Create(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	bindFieldFlags(cmd, &f)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f task.Fields
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store().Update(cmd.Context(), args[0], f)
			if err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	bindFieldFlags(cmd, &f)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
}

func bindFieldFlags(cmd *cobra.Command, f *task.Fields) {
	cmd.Flags().StringVar(&f.Title, "title", "", "task title")
	cmd.Flags().StringVar(&f.Employee, "employee", "", "assigned employee")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Description, "description", "", "task description")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
