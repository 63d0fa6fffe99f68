package etl

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
)

func newTestDriver(source Source, db *memDB, checkpoints CheckpointStore) *Driver {
	return NewDriver(source, newTestOrchestrator(db), checkpoints, nil, zerolog.Nop())
}

func TestDriver_BatchBoundaries(t *testing.T) {
	source := &memSource{rows: legacyRows(1234)}
	db := newMemDB()

	report, err := newTestDriver(source, db, nil).Run(context.Background(), Options{BatchSize: 500})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 500, 1000}, source.offsets)
	assert.Equal(t, []int{500, 500, 500}, source.limits)
	assert.Equal(t, []int{0, 500, 1000}, report.Offsets)
	assert.Equal(t, 1234, report.TotalRows)
	assert.Equal(t, 1234, report.Processed)
	assert.Equal(t, 1234, report.Migrated)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)
	assert.False(t, report.Cancelled)
	assert.NotNil(t, report.FinishedAt)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1234, db.counts()["students"])
}

func TestDriver_DefaultBatchSize(t *testing.T) {
	source := &memSource{rows: legacyRows(3)}

	_, err := newTestDriver(source, newMemDB(), nil).Run(context.Background(), Options{})

	require.NoError(t, err)
	assert.Equal(t, []int{500}, source.limits)
}

func TestDriver_Idempotent(t *testing.T) {
	source := &memSource{rows: legacyRows(120)}
	db := newMemDB()
	driver := newTestDriver(source, db, nil)

	_, err := driver.Run(context.Background(), Options{BatchSize: 50})
	require.NoError(t, err)
	once := db.counts()

	report, err := driver.Run(context.Background(), Options{BatchSize: 50})
	require.NoError(t, err)

	assert.Equal(t, once, db.counts())
	assert.Equal(t, 120, report.Migrated)
}

func TestDriver_PartialFailureIsolation(t *testing.T) {
	source := &memSource{rows: legacyRows(500)}
	db := newMemDB()
	db.beforeCreate = func(table string, row any) error {
		if p, ok := row.(*models.Person); ok && p.Name != nil && *p.Name == "FATHER 37" {
			return errors.New("father insert failed")
		}
		return nil
	}

	report, err := newTestDriver(source, db, nil).Run(context.Background(), Options{BatchSize: 500})

	require.NoError(t, err)
	assert.Equal(t, 500, report.Processed)
	assert.Equal(t, 499, report.Migrated)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 36, report.Errors[0].Index)
	assert.Equal(t, int64(37), report.Errors[0].LegacyID)
	assert.Equal(t, "BCOM0037", report.Errors[0].CodeNumber)
	assert.Equal(t, StageParent, report.Errors[0].Stage)
	assert.Contains(t, report.Errors[0].Message, "father insert failed")

	counts := db.counts()
	assert.Equal(t, 500, counts["students"])
	assert.Equal(t, 499, counts["parents"])
	assert.Equal(t, 500, counts["guardians"])
	assert.Equal(t, 500, counts["transport_details"])
}

func TestDriver_Resume(t *testing.T) {
	source := &memSource{rows: legacyRows(1234)}
	checkpoints := &memCheckpoints{current: &models.Checkpoint{Name: DefaultCheckpointName, RunID: "previous", NextOffset: 1000}}

	report, err := newTestDriver(source, newMemDB(), checkpoints).Run(context.Background(), Options{BatchSize: 500, Resume: true})

	require.NoError(t, err)
	assert.Equal(t, []int{1000}, source.offsets)
	assert.Equal(t, 1000, report.StartOffset)
	assert.Equal(t, 234, report.Processed)
	assert.True(t, checkpoints.cleared)
}

func TestDriver_ResumeIgnoredWithoutFlag(t *testing.T) {
	source := &memSource{rows: legacyRows(20)}
	checkpoints := &memCheckpoints{current: &models.Checkpoint{NextOffset: 10}}

	report, err := newTestDriver(source, newMemDB(), checkpoints).Run(context.Background(), Options{BatchSize: 10})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 10}, source.offsets)
	assert.Zero(t, report.StartOffset)
}

func TestDriver_CheckpointsEveryBatch(t *testing.T) {
	source := &memSource{rows: legacyRows(25)}
	checkpoints := &memCheckpoints{}
	var progress []int

	_, err := newTestDriver(source, newMemDB(), checkpoints).Run(context.Background(), Options{
		BatchSize: 10,
		RunID:     "run-1",
		OnProgress: func(r models.MigrationReport) {
			progress = append(progress, r.Processed)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, checkpoints.saved)
	assert.Equal(t, []int{10, 20, 25}, progress)
	assert.True(t, checkpoints.cleared)
	assert.Nil(t, checkpoints.current)
}

func TestDriver_CancelBetweenBatches(t *testing.T) {
	source := &memSource{rows: legacyRows(1234)}
	checkpoints := &memCheckpoints{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report, err := newTestDriver(source, newMemDB(), checkpoints).Run(ctx, Options{
		BatchSize:  500,
		OnProgress: func(models.MigrationReport) { cancel() },
	})

	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, 500, report.Processed)
	assert.Equal(t, []int{0}, report.Offsets)
	assert.False(t, checkpoints.cleared)
	require.NotNil(t, checkpoints.current)
	assert.Equal(t, 500, checkpoints.current.NextOffset)
}

func TestDriver_CancelWhileCounting(t *testing.T) {
	source := &memSource{rows: legacyRows(10), countErr: context.Canceled}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestDriver(source, newMemDB(), nil).Run(ctx, Options{})

	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Zero(t, report.Processed)
	assert.Empty(t, source.offsets)
	assert.NotNil(t, report.FinishedAt)
}

func TestDriver_Concurrency(t *testing.T) {
	source := &memSource{rows: legacyRows(300)}
	db := newMemDB()
	db.beforeCreate = func(table string, row any) error {
		if h, ok := row.(*models.Health); ok && h.StudentID%50 == 0 {
			return errors.New("bad health row")
		}
		return nil
	}

	report, err := newTestDriver(source, db, nil).Run(context.Background(), Options{BatchSize: 100, Concurrency: 8})

	require.NoError(t, err)
	assert.Equal(t, 300, report.Processed)
	assert.Equal(t, report.Processed, report.Migrated+report.Failed)
	assert.Equal(t, 300, db.counts()["students"])
	assert.Equal(t, 300, db.counts()["users"])
	for i := 1; i < len(report.Errors); i++ {
		assert.LessOrEqual(t, report.Errors[i-1].Index, report.Errors[i].Index)
	}
}

type slowProcessor struct {
	slowID int64
	calls  atomic.Int32
}

func (p *slowProcessor) Process(ctx context.Context, row *legacymodels.Student) (*models.Student, error) {
	p.calls.Add(1)
	if row.ID != p.slowID {
		return &models.Student{LegacyStudentID: row.ID}, nil
	}
	<-ctx.Done()
	return nil, &StageError{Stage: StageHealth, Err: ctx.Err()}
}

func TestDriver_RowTimeout(t *testing.T) {
	source := &memSource{rows: legacyRows(5)}
	processor := &slowProcessor{slowID: 3}
	driver := NewDriver(source, processor, nil, nil, zerolog.Nop())

	report, err := driver.Run(context.Background(), Options{BatchSize: 10, RowTimeout: 20 * time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, int32(5), processor.calls.Load())
	assert.Equal(t, 5, report.Processed)
	assert.Equal(t, 4, report.Migrated)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Index)
	assert.Equal(t, StageHealth, report.Errors[0].Stage)
	assert.Contains(t, report.Errors[0].Message, apperrors.ErrRowTimeout.Error())
}

func TestDriver_SourceFailure(t *testing.T) {
	source := &memSource{countErr: fmt.Errorf("%w: connection refused", apperrors.ErrSourceUnavailable)}

	report, err := newTestDriver(source, newMemDB(), nil).Run(context.Background(), Options{})

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	require.NotNil(t, report)
	assert.NotNil(t, report.FinishedAt)
}

func TestDriver_FetchFailure(t *testing.T) {
	source := &memSource{rows: legacyRows(10), fetchErr: fmt.Errorf("%w: timeout", apperrors.ErrSourceUnavailable)}
	checkpoints := &memCheckpoints{}

	_, err := newTestDriver(source, newMemDB(), checkpoints).Run(context.Background(), Options{BatchSize: 5})

	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.False(t, checkpoints.cleared)
}
