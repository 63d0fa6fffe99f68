// Package legacy reads the pre-migration MySQL database.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Reader pages through the legacy student table
type Reader struct {
	db    *sqlx.DB
	table string
}

// NewReader creates a Reader over table. The handle is wrapped in an unsafe
// sqlx.DB so that columns without a struct field are ignored by SELECT *.
func NewReader(conn *sql.DB, table string) (*Reader, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid legacy table name %q", table)
	}
	return &Reader{
		db:    sqlx.NewDb(conn, "mysql").Unsafe(),
		table: table,
	}, nil
}

// Count returns the number of rows in the legacy table
func (r *Reader) Count(ctx context.Context) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", r.table)
	if err := r.db.QueryRowxContext(ctx, query).Scan(&total); err != nil {
		logger.Error().Err(err).Str("table", r.table).Msg("Error counting legacy rows")
		return 0, fmt.Errorf("%w: count %s: %v", apperrors.ErrSourceUnavailable, r.table, err)
	}
	return total, nil
}

// Fetch returns up to limit rows starting at offset, ordered by id so that
// consecutive windows neither overlap nor skip rows.
func (r *Reader) Fetch(ctx context.Context, limit, offset int) ([]legacymodels.Student, error) {
	query := fmt.Sprintf("SELECT * FROM `%s` ORDER BY id LIMIT ? OFFSET ?", r.table)

	var rows []legacymodels.Student
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		logger.Error().Err(err).Str("table", r.table).Int("offset", offset).Int("limit", limit).Msg("Error fetching legacy rows")
		return nil, fmt.Errorf("%w: fetch %s at offset %d: %v", apperrors.ErrSourceUnavailable, r.table, offset, err)
	}
	return rows, nil
}
