package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yigit/erp-migrator/internal/bootstrap"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
	"github.com/yigit/erp-migrator/internal/server"
)

// @title Legacy Student Migration API
// @version 1.0
// @description Migrates legacy studentpersonaldetails rows into the normalized student schema
// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Serve the legacy migration HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			srv, err := server.NewServer(configPath)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to initialize server")
				return err
			}
			if err := srv.Run(); err != nil {
				logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
				return err
			}
			logger.Info().Msg("Application finished gracefully.")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
