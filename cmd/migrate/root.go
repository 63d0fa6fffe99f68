package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/app/services"
	"github.com/yigit/erp-migrator/internal/bootstrap"
)

// migrationApp is what the commands need from the wired application
type migrationApp interface {
	Run(ctx context.Context, req services.RunRequest) (*models.MigrationReport, error)
	Checkpoint(ctx context.Context) (*models.Checkpoint, error)
	ClearCheckpoint(ctx context.Context) error
	Close() error
}

type appFactory func(ctx context.Context, configPath string) (migrationApp, error)

type wiredApp struct {
	*services.MigrationService
	deps *bootstrap.Dependencies
}

func (a wiredApp) Close() error { return a.deps.Close() }

func newApp(ctx context.Context, configPath string) (migrationApp, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}
	deps, err := bootstrap.Setup(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	return wiredApp{MigrationService: deps.MigrationService, deps: deps}, nil
}

func newRootCmd(factory appFactory) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migrate legacy studentpersonaldetails rows into the normalized schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	open := func(ctx context.Context) (migrationApp, error) {
		return factory(ctx, configPath)
	}
	cmd.AddCommand(newRunCmd(open))
	cmd.AddCommand(newCheckpointCmd(open))
	return cmd
}

func Execute() {
	if err := newRootCmd(newApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
