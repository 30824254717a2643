package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/api"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and front-end files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			if staticDir != "" {
				a.cfg.StaticDir = staticDir
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&staticDir, "static", "", "front-end directory (overrides STATIC_DIR)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	if _, err := os.Stat(cfg.TasksFile); err != nil {
		a.logger.Warn("tasks file not readable, run `taskboard init` to create it",
			"path", cfg.TasksFile, "error", err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.New(a.store(), cfg.StaticDir, a.logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("taskboard listening",
			"url", "http://localhost:"+cfg.Port,
			"tasks_file", cfg.TasksFile,
			"static_dir", cfg.StaticDir,
			"file_lock", cfg.FileLock,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
