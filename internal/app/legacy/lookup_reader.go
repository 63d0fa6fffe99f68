package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/yigit/erp-migrator/internal/app/models"
	legacymodels "github.com/yigit/erp-migrator/internal/app/models/legacy"
)

// lookupQueries reads one legacy lookup row by id, aliased onto LookupValue
var lookupQueries = map[models.LookupKind]string{
	models.LookupOccupation:   "SELECT id, occupationName AS name, NULL AS code FROM parentoccupation WHERE id = ?",
	models.LookupBloodGroup:   "SELECT id, name, NULL AS code FROM bloodgroup WHERE id = ?",
	models.LookupNationality:  "SELECT id, nationalityName AS name, CAST(code AS CHAR) AS code FROM nationality WHERE id = ?",
	models.LookupCategory:     "SELECT id, category AS name, code FROM category WHERE id = ?",
	models.LookupReligion:     "SELECT id, religionName AS name, NULL AS code FROM religion WHERE id = ?",
	models.LookupMotherTongue: "SELECT id, mothertongueName AS name, NULL AS code FROM mothertongue WHERE id = ?",
}

type lookupKey struct {
	kind models.LookupKind
	id   int64
}

// LookupReader resolves legacy foreign keys to lookup names. Results,
// including misses, are cached for the lifetime of the reader.
type LookupReader struct {
	db *sqlx.DB

	mu    sync.RWMutex
	cache map[lookupKey]*legacymodels.LookupValue
}

// NewLookupReader creates a LookupReader
func NewLookupReader(conn *sql.DB) *LookupReader {
	return &LookupReader{
		db:    sqlx.NewDb(conn, "mysql"),
		cache: make(map[lookupKey]*legacymodels.LookupValue),
	}
}

// Lookup returns the legacy lookup row, or nil when the id does not exist
func (r *LookupReader) Lookup(ctx context.Context, kind models.LookupKind, id int64) (*legacymodels.LookupValue, error) {
	query, ok := lookupQueries[kind]
	if !ok {
		return nil, fmt.Errorf("no legacy table for lookup kind %q", kind)
	}

	key := lookupKey{kind: kind, id: id}
	r.mu.RLock()
	cached, hit := r.cache[key]
	r.mu.RUnlock()
	if hit {
		return cached, nil
	}

	var v legacymodels.LookupValue
	err := r.db.GetContext(ctx, &v, query, id)
	var result *legacymodels.LookupValue
	switch {
	case err == nil:
		result = &v
	case errors.Is(err, sql.ErrNoRows):
		result = nil
	default:
		return nil, fmt.Errorf("legacy %s lookup %d: %w", kind, id, err)
	}

	r.mu.Lock()
	r.cache[key] = result
	r.mu.Unlock()
	return result, nil
}
