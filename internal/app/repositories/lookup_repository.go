package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/db"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

// lookupTables maps each lookup kind to its target table
var lookupTables = map[models.LookupKind]string{
	models.LookupOccupation:   "occupations",
	models.LookupBloodGroup:   "blood_groups",
	models.LookupNationality:  "nationalities",
	models.LookupCategory:     "categories",
	models.LookupReligion:     "religions",
	models.LookupMotherTongue: "language_mediums",
	models.LookupAnnualIncome: "annual_incomes",
}

// LookupRepository handles the name-keyed lookup tables
type LookupRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(q db.Querier) *LookupRepository {
	return &LookupRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func tableFor(kind models.LookupKind) (string, error) {
	name, ok := lookupTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown lookup kind %q", kind)
	}
	return name, nil
}

// FindByName retrieves a lookup row by case-insensitive name
func (r *LookupRepository) FindByName(ctx context.Context, kind models.LookupKind, name string) (*models.Lookup, error) {
	tbl, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Select("id", "name", "code", "legacy_id").
		From(tbl).
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s lookup query: %w", tbl, err)
	}

	l := &models.Lookup{Kind: kind}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&l.ID, &l.Name, &l.Code, &l.LegacyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("table", tbl).Str("name", name).Msg("Error reading lookup")
		return nil, fmt.Errorf("error reading %s: %w", tbl, err)
	}
	return l, nil
}

// FindOrCreate returns the lookup row named name, inserting it when missing.
// A concurrent insert of the same name is absorbed by ON CONFLICT and the
// winner's row is returned.
func (r *LookupRepository) FindOrCreate(ctx context.Context, kind models.LookupKind, name string, code *string, legacyID *int64) (*models.Lookup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("lookup %s: empty name", kind)
	}

	existing, err := r.FindByName(ctx, kind, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	tbl, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Insert(tbl).
		Columns("name", "code", "legacy_id").
		Values(name, code, legacyID).
		Suffix("ON CONFLICT DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s insert query: %w", tbl, err)
	}

	l := &models.Lookup{Kind: kind, Name: name, Code: code, LegacyID: legacyID}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&l.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.FindByName(ctx, kind, name)
		}
		logger.Error().Err(err).Str("table", tbl).Str("name", name).Msg("Error creating lookup")
		return nil, fmt.Errorf("error creating %s: %w", tbl, err)
	}
	return l, nil
}
