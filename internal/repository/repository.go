package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// The service owns only the draft tables; authoritative timesheet data lives
// in the upstream HR system. Date columns are TEXT because drafts round-trip
// entry values verbatim, including raw date forms the save normalizer fixes
// only at save time.
const schema = `
	CREATE TABLE IF NOT EXISTS timesheet_drafts (
		id BIGSERIAL PRIMARY KEY,
		employee_id TEXT NOT NULL,
		week_start_date TEXT NOT NULL,
		week_end_date TEXT NOT NULL,
		timesheet_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		version INTEGER NOT NULL DEFAULT 1,
		UNIQUE (employee_id, week_start_date)
	);

	CREATE TABLE IF NOT EXISTS timesheet_draft_entries (
		id BIGSERIAL PRIMARY KEY,
		draft_id BIGINT NOT NULL REFERENCES timesheet_drafts (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		entry_id TEXT NOT NULL DEFAULT '',
		work_date TEXT NOT NULL DEFAULT '',
		hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		project_id TEXT NOT NULL DEFAULT '',
		project_type TEXT NOT NULL DEFAULT '',
		is_holiday BOOLEAN NOT NULL DEFAULT FALSE,
		source TEXT NOT NULL DEFAULT '',
		clock_in TEXT NOT NULL DEFAULT '',
		clock_out TEXT NOT NULL DEFAULT '',
		manual_in TEXT NOT NULL DEFAULT '',
		manual_out TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS timesheet_draft_entries_draft_position_idx
		ON timesheet_draft_entries (draft_id, position);
`

// Migrate applies the draft store schema. Safe to run on every startup.
func (r *Repository) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schema)
	return err
}
