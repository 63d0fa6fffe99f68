package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/app/services"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

type fakeApp struct {
	configPath string
	request    services.RunRequest
	report     *models.MigrationReport
	err        error
	checkpoint *models.Checkpoint
	cleared    bool
	closed     bool
}

func (f *fakeApp) Run(_ context.Context, req services.RunRequest) (*models.MigrationReport, error) {
	f.request = req
	return f.report, f.err
}

func (f *fakeApp) Checkpoint(context.Context) (*models.Checkpoint, error) {
	if f.checkpoint == nil {
		return nil, apperrors.NewResourceNotFoundError("no migration checkpoint stored")
	}
	return f.checkpoint, nil
}

func (f *fakeApp) ClearCheckpoint(context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeApp) Close() error {
	f.closed = true
	return nil
}

func execute(t *testing.T, app *fakeApp, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(_ context.Context, configPath string) (migrationApp, error) {
		app.configPath = configPath
		return app, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	app := &fakeApp{report: &models.MigrationReport{RunID: "run-1", Processed: 3, Migrated: 3}}

	out, err := execute(t, app, "run", "--resume", "--batch-size", "100", "--concurrency", "4", "--config", "test.yaml")

	require.NoError(t, err)
	assert.Equal(t, services.RunRequest{Resume: true, BatchSize: 100, Concurrency: 4}, app.request)
	assert.Equal(t, "test.yaml", app.configPath)
	assert.Contains(t, out, `"runId": "run-1"`)
	assert.True(t, app.closed)
}

func TestRunCmd_SourceFailure(t *testing.T) {
	app := &fakeApp{report: &models.MigrationReport{Processed: 500}, err: apperrors.ErrSourceUnavailable}

	out, err := execute(t, app, "run")

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.Contains(t, out, `"processed": 500`)
}

func TestRunCmd_Cancelled(t *testing.T) {
	app := &fakeApp{report: &models.MigrationReport{Processed: 500, Cancelled: true}}

	_, err := execute(t, app, "run")

	assert.ErrorContains(t, err, "--resume")
}

func TestRunCmd_RejectsNegativeFlags(t *testing.T) {
	app := &fakeApp{}

	_, err := execute(t, app, "run", "--batch-size", "-5")

	assert.Error(t, err)
	assert.False(t, app.closed)
}

func TestCheckpointShow(t *testing.T) {
	out, err := execute(t, &fakeApp{}, "checkpoint", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "no checkpoint stored")

	out, err = execute(t, &fakeApp{checkpoint: &models.Checkpoint{Name: "legacy-students", NextOffset: 1000}}, "checkpoint", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"nextOffset": 1000`)
}

func TestCheckpointClear(t *testing.T) {
	app := &fakeApp{}

	out, err := execute(t, app, "checkpoint", "clear")

	require.NoError(t, err)
	assert.True(t, app.cleared)
	assert.Contains(t, out, "checkpoint cleared")
}
