package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/erp-migrator/internal/app/etl"
	appModels "github.com/yigit/erp-migrator/internal/app/models"
)

// LookupCreator finds or creates rows of the target lookup tables
type LookupCreator interface {
	FindOrCreate(ctx context.Context, kind appModels.LookupKind, name string, code *string, legacyID *int64) (*appModels.Lookup, error)
}

// AnnualIncomeRanges are the income categories rows are classified into,
// in ascending order.
var AnnualIncomeRanges = []string{
	etl.IncomeBelow3Lakh,
	etl.Income3To5Lakh,
	etl.Income5To8Lakh,
	etl.Income8To10Lakh,
	etl.Income10LakhAbove,
}

// CreateDefaultData makes sure the fixed lookup rows exist before the first
// run, so their ids follow the category order. Each failure is logged and
// the remaining rows are still attempted.
func CreateDefaultData(ctx context.Context, lookups LookupCreator, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (annual income ranges)...")
	var finalErr error

	for _, name := range AnnualIncomeRanges {
		if _, err := lookups.FindOrCreate(ctx, appModels.LookupAnnualIncome, name, nil, nil); err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Failed to create annual income range")
			finalErr = errors.Join(finalErr, fmt.Errorf("annual income %q: %w", name, err))
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(AnnualIncomeRanges)).Msg("Default data ready")
	}
	return finalErr
}
