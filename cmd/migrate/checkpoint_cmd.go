package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

func newCheckpointCmd(open func(context.Context) (migrationApp, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect or clear the stored resume position",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored checkpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			cp, err := app.Checkpoint(cmd.Context())
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "no checkpoint stored")
				return nil
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the stored checkpoint so the next run starts at offset 0",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.ClearCheckpoint(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "checkpoint cleared")
			return nil
		},
	})
	return cmd
}
