package models

import "time"

// Checkpoint is the persisted resume position of a migration
type Checkpoint struct {
	Name       string    `json:"name" db:"name"`
	RunID      string    `json:"runId" db:"run_id"`
	NextOffset int       `json:"nextOffset" db:"next_offset"`
	TotalRows  int       `json:"totalRows" db:"total_rows"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// RowError records one failed stage of one legacy row
type RowError struct {
	Index      int    `json:"index"`
	LegacyID   int64  `json:"legacyId"`
	CodeNumber string `json:"codeNumber"`
	Stage      string `json:"stage"`
	Message    string `json:"message"`
}

// MigrationReport summarises a migration run
type MigrationReport struct {
	RunID       string     `json:"runId"`
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	TotalRows   int        `json:"totalRows"`
	StartOffset int        `json:"startOffset"`
	Processed   int        `json:"processed"`
	Migrated    int        `json:"migrated"`
	Failed      int        `json:"failed"`
	Offsets     []int      `json:"offsets"`
	Errors      []RowError `json:"errors"`
	Cancelled   bool       `json:"cancelled"`
}

// Running reports whether the run has not finished yet.
func (r *MigrationReport) Running() bool {
	return r.FinishedAt == nil
}

// Clone returns a copy that does not share slices with r.
func (r *MigrationReport) Clone() *MigrationReport {
	c := *r
	c.Offsets = append([]int(nil), r.Offsets...)
	c.Errors = append([]RowError(nil), r.Errors...)
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}
