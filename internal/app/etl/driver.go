package etl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/helpers"
	"golang.org/x/sync/errgroup"
)

// RowProcessor migrates one legacy row
type RowProcessor interface {
	Process(ctx context.Context, row *legacymodels.Student) (*models.Student, error)
}

// Options tune a single run
type Options struct {
	BatchSize   int
	Concurrency int
	RowTimeout  time.Duration
	Resume      bool
	RunID       string
	// OnProgress receives a copy of the report after every batch.
	OnProgress func(models.MigrationReport)
}

// Driver pages through the source and hands every row to the processor
type Driver struct {
	source      Source
	processor   RowProcessor
	checkpoints CheckpointStore
	metrics     *Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewDriver creates a Driver. checkpoints may be nil.
func NewDriver(source Source, processor RowProcessor, checkpoints CheckpointStore, metrics *Metrics, log zerolog.Logger) *Driver {
	if checkpoints == nil {
		checkpoints = NopCheckpointStore{}
	}
	return &Driver{
		source:      source,
		processor:   processor,
		checkpoints: checkpoints,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
	}
}

type rowResult struct {
	index   int
	row     *legacymodels.Student
	err     error
	skipped bool
}

// Run migrates the whole source table. Row failures are collected in the
// report and never stop the run. The returned error is non-nil only when the
// source itself fails; the partial report is returned alongside it.
// Cancelling ctx stops the run after the rows in flight and returns the
// report with Cancelled set.
func (d *Driver) Run(ctx context.Context, opts Options) (*models.MigrationReport, error) {
	size := helpers.NormalizeBatchSize(opts.BatchSize)
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	report := &models.MigrationReport{
		RunID:     runID,
		StartedAt: d.now(),
		Offsets:   []int{},
		Errors:    []models.RowError{},
	}
	log := d.log.With().Str("runId", runID).Logger()

	d.metrics.SetRunning(true)
	defer d.metrics.SetRunning(false)

	total, err := d.source.Count(ctx)
	if err != nil {
		if ctx.Err() != nil {
			report.Cancelled = true
			d.finish(report)
			log.Info().Msg("Legacy migration cancelled before counting rows")
			return report, nil
		}
		d.finish(report)
		return report, fmt.Errorf("counting legacy rows: %w", err)
	}
	report.TotalRows = total

	if opts.Resume {
		cp, err := d.checkpoints.Load(ctx)
		if err != nil {
			d.finish(report)
			return report, fmt.Errorf("loading checkpoint: %w", err)
		}
		if cp != nil && cp.NextOffset > 0 {
			report.StartOffset = cp.NextOffset
			log.Info().Int("offset", cp.NextOffset).Str("previousRunId", cp.RunID).Msg("Resuming from checkpoint")
		}
	}

	offsets := helpers.BatchOffsets(total, size, report.StartOffset)
	log.Info().Int("total", total).Int("batchSize", size).Int("batches", len(offsets)).
		Int("concurrency", concurrency).Msg("Starting legacy migration")

	for _, offset := range offsets {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		rows, err := d.source.Fetch(ctx, size, offset)
		if err != nil {
			if ctx.Err() != nil {
				report.Cancelled = true
				break
			}
			d.finish(report)
			return report, fmt.Errorf("fetching legacy rows at offset %d: %w", offset, err)
		}
		report.Offsets = append(report.Offsets, offset)
		log.Info().Int("batch", helpers.BatchNumber(offset, size)).Int("offset", offset).
			Int("rows", len(rows)).Int("total", total).Msg("Processing batch")

		for _, res := range d.processBatch(ctx, rows, offset, concurrency, opts.RowTimeout) {
			if res.skipped {
				continue
			}
			report.Processed++
			if res.err == nil {
				report.Migrated++
				continue
			}
			report.Failed++
			report.Errors = append(report.Errors, rowErrors(res)...)
		}

		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		d.saveCheckpoint(ctx, log, &models.Checkpoint{
			RunID:      runID,
			NextOffset: offset + size,
			TotalRows:  total,
			UpdatedAt:  d.now(),
		})
		if opts.OnProgress != nil {
			opts.OnProgress(*report.Clone())
		}
	}

	if !report.Cancelled {
		if err := d.checkpoints.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to clear checkpoint")
		}
	}

	d.finish(report)
	log.Info().Int("processed", report.Processed).Int("migrated", report.Migrated).Int("failed", report.Failed).
		Bool("cancelled", report.Cancelled).Msg("Legacy migration finished")
	return report, nil
}

func (d *Driver) finish(report *models.MigrationReport) {
	sort.SliceStable(report.Errors, func(i, j int) bool {
		return report.Errors[i].Index < report.Errors[j].Index
	})
	finished := d.now()
	report.FinishedAt = &finished
}

func (d *Driver) saveCheckpoint(ctx context.Context, log zerolog.Logger, cp *models.Checkpoint) {
	if err := d.checkpoints.Save(ctx, cp); err != nil {
		log.Warn().Err(err).Int("nextOffset", cp.NextOffset).Msg("Failed to save checkpoint")
	}
}

// processBatch runs the rows of one batch on a bounded task group. Results
// are indexed by position in the batch; rows never started because ctx was
// cancelled are marked skipped.
func (d *Driver) processBatch(ctx context.Context, rows []legacymodels.Student, offset, concurrency int, timeout time.Duration) []rowResult {
	results := make([]rowResult, len(rows))
	for i := range rows {
		results[i] = rowResult{index: offset + i, row: &rows[i], skipped: true}
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range rows {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			results[i] = d.processRow(ctx, results[i], timeout)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (d *Driver) processRow(ctx context.Context, res rowResult, timeout time.Duration) rowResult {
	if ctx.Err() != nil {
		return res
	}

	rowCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		rowCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	_, err := d.processor.Process(rowCtx, res.row)
	if err != nil && ctx.Err() != nil {
		// The run was cancelled while the row was in flight.
		return res
	}
	res.skipped = false

	if err != nil && errors.Is(rowCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", apperrors.ErrRowTimeout, timeout, err)
	}
	res.err = err

	result := ResultMigrated
	if err != nil {
		result = ResultFailed
		for _, re := range rowErrors(res) {
			d.log.Warn().Int("index", re.Index).Int64("legacyId", re.LegacyID).Str("codeNumber", re.CodeNumber).
				Str("stage", re.Stage).Str("error", re.Message).Msg("Failed to migrate legacy row")
		}
	}
	d.metrics.RowDone(result, time.Since(started))
	return res
}

// rowErrors converts a row failure into one report entry per failed stage.
func rowErrors(res rowResult) []models.RowError {
	prefix := ""
	if errors.Is(res.err, apperrors.ErrRowTimeout) {
		prefix = apperrors.ErrRowTimeout.Error() + ": "
	}

	stageErrs := StageErrors(res.err)
	if len(stageErrs) == 0 {
		return []models.RowError{{
			Index:      res.index,
			LegacyID:   res.row.ID,
			CodeNumber: res.row.Code(),
			Message:    res.err.Error(),
		}}
	}

	out := make([]models.RowError, 0, len(stageErrs))
	for _, se := range stageErrs {
		out = append(out, models.RowError{
			Index:      res.index,
			LegacyID:   res.row.ID,
			CodeNumber: res.row.Code(),
			Stage:      se.Stage,
			Message:    prefix + se.Err.Error(),
		})
	}
	return out
}
