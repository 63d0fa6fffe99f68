package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yigit/erp-migrator/internal/app/services"
)

func newRunCmd(open func(context.Context) (migrationApp, error)) *cobra.Command {
	var req services.RunRequest

	cmd := &cobra.Command{
		Use:   "run [--resume] [--batch-size N] [--concurrency N]",
		Short: "Run the migration and print the report as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.BatchSize < 0 {
				return errors.New("--batch-size must be positive")
			}
			if req.Concurrency < 0 {
				return errors.New("--concurrency must be positive")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := open(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			report, runErr := app.Run(ctx, req)
			if report != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			if report.Cancelled {
				return fmt.Errorf("migration cancelled after %d rows; rerun with --resume to continue", report.Processed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&req.Resume, "resume", false, "continue from the stored checkpoint")
	cmd.Flags().IntVar(&req.BatchSize, "batch-size", 0, "rows per batch (default from config)")
	cmd.Flags().IntVar(&req.Concurrency, "concurrency", 0, "rows processed in parallel within a batch (default from config)")
	return cmd
}
