package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/erp-migrator/internal/db"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/dberrors"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = apperrors.ErrResourceNotFound

// table maps a model onto one target table. columns excludes "id"; values
// returns the column values in the same order and dest returns scan targets
// for "id" followed by columns.
type table[T any] struct {
	db      db.Querier
	sb      squirrel.StatementBuilderType
	name    string
	columns []string
	values  func(*T) []interface{}
	dest    func(*T) []interface{}
	id      func(*T) *int64
}

func newTable[T any](q db.Querier, name string, columns []string,
	values func(*T) []interface{}, dest func(*T) []interface{}, id func(*T) *int64) *table[T] {
	return &table[T]{
		db:      q,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		name:    name,
		columns: columns,
		values:  values,
		dest:    dest,
		id:      id,
	}
}

func (t *table[T]) selectColumns() []string {
	return append([]string{"id"}, t.columns...)
}

// findOne returns the first row matching where, or ErrNotFound.
func (t *table[T]) findOne(ctx context.Context, where squirrel.Sqlizer) (*T, error) {
	sql, args, err := t.sb.Select(t.selectColumns()...).
		From(t.name).
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", t.name).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build %s select query: %w", t.name, err)
	}

	row := new(T)
	if err := t.db.QueryRow(ctx, sql, args...).Scan(t.dest(row)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("table", t.name).Msg("Error scanning row")
		return nil, fmt.Errorf("error reading %s: %w", t.name, err)
	}
	return row, nil
}

// Create inserts row and stores the generated id on it
func (t *table[T]) Create(ctx context.Context, row *T) error {
	sql, args, err := t.sb.Insert(t.name).
		Columns(t.columns...).
		Values(t.values(row)...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", t.name).Msg("Error building insert SQL")
		return fmt.Errorf("failed to build %s insert query: %w", t.name, err)
	}

	var id int64
	if err := t.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrResourceAlreadyExists, t.name)
		}
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s references a missing row: %w", t.name, err)
		}
		logger.Error().Err(err).Str("table", t.name).Msg("Error executing insert")
		return fmt.Errorf("error creating %s row: %w", t.name, err)
	}
	*t.id(row) = id
	return nil
}

// Update overwrites every mapped column of the row with the same id
func (t *table[T]) Update(ctx context.Context, row *T) error {
	id := *t.id(row)
	set := make(map[string]interface{}, len(t.columns))
	for i, v := range t.values(row) {
		set[t.columns[i]] = v
	}

	sql, args, err := t.sb.Update(t.name).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", t.name).Msg("Error building update SQL")
		return fmt.Errorf("failed to build %s update query: %w", t.name, err)
	}

	cmdTag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrResourceAlreadyExists, t.name)
		}
		logger.Error().Err(err).Str("table", t.name).Int64("id", id).Msg("Error executing update")
		return fmt.Errorf("error updating %s row: %w", t.name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StudentScopedRepository serves the tables holding one row per student
type StudentScopedRepository[T any] struct {
	*table[T]
}

// FindByStudentID retrieves the row owned by a student
func (r *StudentScopedRepository[T]) FindByStudentID(ctx context.Context, studentID int64) (*T, error) {
	return r.findOne(ctx, squirrel.Eq{"student_id": studentID})
}
