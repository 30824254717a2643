package main

import (
	"log/slog"
	"os"

	"taskboard/internal/config"
	"taskboard/pkg/task"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (a *app) store() *task.FileStore {
	return task.NewFileStore(a.cfg.TasksFile, task.Options{DisableLocking: !a.cfg.FileLock})
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var dataFile string

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Task board backend",
		Long: `taskboard keeps task records (title, employee, start and end date,
description) in a JSON file and serves them over a small REST API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.TasksFile = dataFile
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "tasks file (overrides TASKS_FILE)")

	root.AddCommand(
		newServeCmd(a),
		newInitCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}
