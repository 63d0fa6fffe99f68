package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/erp-migrator/internal/app/etl"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

// MigrationRunner runs one migration pass over the legacy table
type MigrationRunner interface {
	Run(ctx context.Context, opts etl.Options) (*models.MigrationReport, error)
}

// ReportArchiver persists finished run reports so the last one survives a restart
type ReportArchiver interface {
	SaveReport(report *models.MigrationReport) (string, error)
	LatestReport() (*models.MigrationReport, error)
}

// RunRequest carries per-run overrides. Zero values fall back to the
// service defaults.
type RunRequest struct {
	Resume      bool
	BatchSize   int
	Concurrency int
}

// MigrationService allows a single migration run at a time and keeps the
// report of the current or last run.
type MigrationService struct {
	runner      MigrationRunner
	checkpoints etl.CheckpointStore
	archive     ReportArchiver
	defaults    etl.Options
	logger      zerolog.Logger
	now         func() time.Time

	runMu sync.Mutex

	mu     sync.RWMutex
	report *models.MigrationReport
}

// NewMigrationService creates a new migration service. checkpoints may be nil.
func NewMigrationService(runner MigrationRunner, checkpoints etl.CheckpointStore, defaults etl.Options, logger zerolog.Logger) *MigrationService {
	if checkpoints == nil {
		checkpoints = etl.NopCheckpointStore{}
	}
	return &MigrationService{
		runner:      runner,
		checkpoints: checkpoints,
		defaults:    defaults,
		logger:      logger,
		now:         time.Now,
	}
}

// WithArchive makes the service store every finished report in archive and
// read the latest archived one when no run happened in this process.
func (s *MigrationService) WithArchive(archive ReportArchiver) *MigrationService {
	s.archive = archive
	return s
}

// Run executes a migration and blocks until it finishes. It returns
// ErrMigrationRunning when another run holds the service.
func (s *MigrationService) Run(ctx context.Context, req RunRequest) (*models.MigrationReport, error) {
	if !s.runMu.TryLock() {
		return nil, apperrors.ErrMigrationRunning
	}
	defer s.runMu.Unlock()

	opts := s.defaults
	opts.Resume = req.Resume
	opts.RunID = uuid.NewString()
	if req.BatchSize > 0 {
		opts.BatchSize = req.BatchSize
	}
	if req.Concurrency > 0 {
		opts.Concurrency = req.Concurrency
	}
	opts.OnProgress = func(r models.MigrationReport) {
		s.setReport(&r)
	}

	s.setReport(&models.MigrationReport{
		RunID:     opts.RunID,
		StartedAt: s.now(),
		Offsets:   []int{},
		Errors:    []models.RowError{},
	})
	s.logger.Info().Str("runId", opts.RunID).Bool("resume", opts.Resume).Msg("Migration run requested")

	report, err := s.runner.Run(ctx, opts)
	if report != nil {
		s.setReport(report.Clone())
		s.archiveReport(report)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("runId", opts.RunID).Msg("Migration run failed")
		return report, err
	}
	return report, nil
}

// Running reports whether a run currently holds the service.
func (s *MigrationService) Running() bool {
	if s.runMu.TryLock() {
		s.runMu.Unlock()
		return false
	}
	return true
}

// Status returns a copy of the current or last run report. Without a run in
// this process it falls back to the archive.
func (s *MigrationService) Status() (*models.MigrationReport, error) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()
	if report != nil {
		return report.Clone(), nil
	}

	if s.archive != nil {
		archived, err := s.archive.LatestReport()
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to read archived migration report")
		} else if archived != nil {
			return archived, nil
		}
	}
	return nil, apperrors.ErrNoMigrationRun
}

// Checkpoint returns the stored resume position, or ErrResourceNotFound.
func (s *MigrationService) Checkpoint(ctx context.Context) (*models.Checkpoint, error) {
	cp, err := s.checkpoints.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, apperrors.NewResourceNotFoundError("no migration checkpoint stored")
	}
	return cp, nil
}

// ClearCheckpoint removes the stored resume position. It refuses while a run
// is active.
func (s *MigrationService) ClearCheckpoint(ctx context.Context) error {
	if !s.runMu.TryLock() {
		return apperrors.ErrMigrationRunning
	}
	defer s.runMu.Unlock()
	return s.checkpoints.Clear(ctx)
}

func (s *MigrationService) archiveReport(report *models.MigrationReport) {
	if s.archive == nil {
		return
	}
	path, err := s.archive.SaveReport(report)
	if err != nil {
		s.logger.Warn().Err(err).Str("runId", report.RunID).Msg("Failed to archive migration report")
		return
	}
	s.logger.Info().Str("runId", report.RunID).Str("path", path).Msg("Migration report archived")
}

func (s *MigrationService) setReport(r *models.MigrationReport) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}
