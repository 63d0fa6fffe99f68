package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

// CheckpointRepository persists migration resume positions in migration_checkpoints
type CheckpointRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCheckpointRepository creates a new CheckpointRepository
func NewCheckpointRepository(q db.Querier) *CheckpointRepository {
	return &CheckpointRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get retrieves the checkpoint with the given name
func (r *CheckpointRepository) Get(ctx context.Context, name string) (*models.Checkpoint, error) {
	sql, args, err := r.sb.Select("name", "run_id", "next_offset", "total_rows", "updated_at").
		From("migration_checkpoints").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get checkpoint query: %w", err)
	}

	cp := &models.Checkpoint{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&cp.Name, &cp.RunID, &cp.NextOffset, &cp.TotalRows, &cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("checkpoint", name).Msg("Error reading checkpoint")
		return nil, fmt.Errorf("error reading checkpoint: %w", err)
	}
	return cp, nil
}

// Save inserts or replaces a checkpoint
func (r *CheckpointRepository) Save(ctx context.Context, cp *models.Checkpoint) error {
	sql, args, err := r.sb.Insert("migration_checkpoints").
		Columns("name", "run_id", "next_offset", "total_rows", "updated_at").
		Values(cp.Name, cp.RunID, cp.NextOffset, cp.TotalRows, cp.UpdatedAt).
		Suffix("ON CONFLICT (name) DO UPDATE SET run_id = EXCLUDED.run_id, next_offset = EXCLUDED.next_offset, " +
			"total_rows = EXCLUDED.total_rows, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save checkpoint query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("checkpoint", cp.Name).Msg("Error saving checkpoint")
		return fmt.Errorf("error saving checkpoint: %w", err)
	}
	return nil
}

// Delete removes a checkpoint; deleting a missing checkpoint is not an error
func (r *CheckpointRepository) Delete(ctx context.Context, name string) error {
	sql, args, err := r.sb.Delete("migration_checkpoints").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete checkpoint query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("checkpoint", name).Msg("Error deleting checkpoint")
		return fmt.Errorf("error deleting checkpoint: %w", err)
	}
	return nil
}
