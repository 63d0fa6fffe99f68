package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/erp-migrator/internal/app/etl"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

type fakeRunner struct {
	started chan etl.Options
	release chan struct{}
	report  *models.MigrationReport
	err     error
}

func (r *fakeRunner) Run(ctx context.Context, opts etl.Options) (*models.MigrationReport, error) {
	if r.started != nil {
		r.started <- opts
	}
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
		}
	}
	if opts.OnProgress != nil {
		opts.OnProgress(models.MigrationReport{RunID: opts.RunID, Processed: 1})
	}
	if r.report == nil {
		return nil, r.err
	}
	report := *r.report
	report.RunID = opts.RunID
	return &report, r.err
}

type memCheckpoints struct {
	cp      *models.Checkpoint
	cleared bool
}

func (m *memCheckpoints) Load(context.Context) (*models.Checkpoint, error) { return m.cp, nil }
func (m *memCheckpoints) Save(_ context.Context, cp *models.Checkpoint) error {
	m.cp = cp
	return nil
}
func (m *memCheckpoints) Clear(context.Context) error {
	m.cp = nil
	m.cleared = true
	return nil
}

func finishedReport() *models.MigrationReport {
	done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.MigrationReport{TotalRows: 3, Processed: 3, Migrated: 3, FinishedAt: &done}
}

func TestMigrationService_StatusBeforeRun(t *testing.T) {
	svc := NewMigrationService(&fakeRunner{}, nil, etl.Options{}, zerolog.Nop())

	_, err := svc.Status()

	assert.ErrorIs(t, err, apperrors.ErrNoMigrationRun)
}

func TestMigrationService_Run(t *testing.T) {
	runner := &fakeRunner{started: make(chan etl.Options, 1), report: finishedReport()}
	svc := NewMigrationService(runner, nil, etl.Options{BatchSize: 500, Concurrency: 2, RowTimeout: time.Second}, zerolog.Nop())

	report, err := svc.Run(context.Background(), RunRequest{Resume: true, BatchSize: 50})

	require.NoError(t, err)
	opts := <-runner.started
	assert.True(t, opts.Resume)
	assert.Equal(t, 50, opts.BatchSize)
	assert.Equal(t, 2, opts.Concurrency)
	assert.Equal(t, time.Second, opts.RowTimeout)
	assert.NotEmpty(t, opts.RunID)
	assert.Equal(t, opts.RunID, report.RunID)

	status, err := svc.Status()
	require.NoError(t, err)
	assert.Equal(t, 3, status.Migrated)
	assert.False(t, status.Running())
	assert.False(t, svc.Running())
}

func TestMigrationService_RejectsConcurrentRun(t *testing.T) {
	runner := &fakeRunner{
		started: make(chan etl.Options, 1),
		release: make(chan struct{}),
		report:  finishedReport(),
	}
	svc := NewMigrationService(runner, nil, etl.Options{}, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), RunRequest{})
		done <- err
	}()
	<-runner.started

	assert.True(t, svc.Running())
	_, err := svc.Run(context.Background(), RunRequest{})
	assert.ErrorIs(t, err, apperrors.ErrMigrationRunning)
	assert.ErrorIs(t, svc.ClearCheckpoint(context.Background()), apperrors.ErrMigrationRunning)

	status, err := svc.Status()
	require.NoError(t, err)
	assert.True(t, status.Running())

	close(runner.release)
	require.NoError(t, <-done)

	runner.release = nil
	_, err = svc.Run(context.Background(), RunRequest{})
	<-runner.started
	assert.NoError(t, err)
}

func TestMigrationService_RunFailureKeepsPartialReport(t *testing.T) {
	partial := finishedReport()
	partial.Processed = 1
	runner := &fakeRunner{report: partial, err: apperrors.ErrSourceUnavailable}
	svc := NewMigrationService(runner, nil, etl.Options{}, zerolog.Nop())

	report, err := svc.Run(context.Background(), RunRequest{})

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	require.NotNil(t, report)
	status, statusErr := svc.Status()
	require.NoError(t, statusErr)
	assert.Equal(t, 1, status.Processed)
}

func TestMigrationService_RunFailureWithoutReport(t *testing.T) {
	boom := errors.New("boom")
	svc := NewMigrationService(&fakeRunner{err: boom}, nil, etl.Options{}, zerolog.Nop())

	_, err := svc.Run(context.Background(), RunRequest{})

	assert.ErrorIs(t, err, boom)
	status, statusErr := svc.Status()
	require.NoError(t, statusErr)
	assert.Equal(t, 1, status.Processed)
}

func TestMigrationService_Checkpoint(t *testing.T) {
	checkpoints := &memCheckpoints{}
	svc := NewMigrationService(&fakeRunner{}, checkpoints, etl.Options{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Checkpoint(ctx)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	checkpoints.cp = &models.Checkpoint{Name: etl.DefaultCheckpointName, NextOffset: 1000}
	cp, err := svc.Checkpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000, cp.NextOffset)

	require.NoError(t, svc.ClearCheckpoint(ctx))
	assert.True(t, checkpoints.cleared)
}

type memArchive struct {
	saved   []*models.MigrationReport
	saveErr error
}

func (a *memArchive) SaveReport(r *models.MigrationReport) (string, error) {
	if a.saveErr != nil {
		return "", a.saveErr
	}
	a.saved = append(a.saved, r)
	return "reports/" + r.RunID + ".json", nil
}

func (a *memArchive) LatestReport() (*models.MigrationReport, error) {
	if len(a.saved) == 0 {
		return nil, nil
	}
	return a.saved[len(a.saved)-1], nil
}

func TestMigrationService_ArchivesReports(t *testing.T) {
	archive := &memArchive{}
	svc := NewMigrationService(&fakeRunner{report: finishedReport()}, nil, etl.Options{}, zerolog.Nop()).WithArchive(archive)

	report, err := svc.Run(context.Background(), RunRequest{})

	require.NoError(t, err)
	require.Len(t, archive.saved, 1)
	assert.Equal(t, report.RunID, archive.saved[0].RunID)

	restarted := NewMigrationService(&fakeRunner{}, nil, etl.Options{}, zerolog.Nop()).WithArchive(archive)
	status, err := restarted.Status()
	require.NoError(t, err)
	assert.Equal(t, report.RunID, status.RunID)
}

func TestMigrationService_ArchiveFailureDoesNotFailRun(t *testing.T) {
	archive := &memArchive{saveErr: errors.New("disk full")}
	svc := NewMigrationService(&fakeRunner{report: finishedReport()}, nil, etl.Options{}, zerolog.Nop()).WithArchive(archive)

	_, err := svc.Run(context.Background(), RunRequest{})

	assert.NoError(t, err)
	status, err := svc.Status()
	require.NoError(t, err)
	assert.Equal(t, 3, status.Migrated)
}
