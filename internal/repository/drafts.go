package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

func (r *Repository) GetDraft(employeeID string, weekStartDate string) (*domain.TimesheetDraft, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			d.id,
			d.employee_id,
			d.week_start_date,
			d.week_end_date,
			d.timesheet_id,
			d.status,
			d.created_at,
			d.updated_at,
			d.version,
			e.id,
			e.entry_id,
			e.work_date,
			e.hours,
			e.description,
			e.notes,
			e.project_id,
			e.project_type,
			e.is_holiday,
			e.source,
			e.clock_in,
			e.clock_out,
			e.manual_in,
			e.manual_out
		FROM timesheet_drafts d
		LEFT JOIN timesheet_draft_entries e ON d.id = e.draft_id
		WHERE d.employee_id = $1 AND d.week_start_date = $2
		ORDER BY e.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, weekStartDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var draft *domain.TimesheetDraft

	for rows.Next() {
		var row struct {
			ID            int64
			EmployeeID    string
			WeekStartDate string
			WeekEndDate   string
			TimesheetID   string
			Status        string
			CreatedAt     time.Time
			UpdatedAt     time.Time
			Version       int32

			RowID       sql.NullInt64
			EntryID     sql.NullString
			WorkDate    sql.NullString
			Hours       sql.NullFloat64
			Description sql.NullString
			Notes       sql.NullString
			ProjectID   sql.NullString
			ProjectType sql.NullString
			IsHoliday   sql.NullBool
			Source      sql.NullString
			ClockIn     sql.NullString
			ClockOut    sql.NullString
			ManualIn    sql.NullString
			ManualOut   sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.EmployeeID,
			&row.WeekStartDate,
			&row.WeekEndDate,
			&row.TimesheetID,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.Version,
			&row.RowID,
			&row.EntryID,
			&row.WorkDate,
			&row.Hours,
			&row.Description,
			&row.Notes,
			&row.ProjectID,
			&row.ProjectType,
			&row.IsHoliday,
			&row.Source,
			&row.ClockIn,
			&row.ClockOut,
			&row.ManualIn,
			&row.ManualOut,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if draft == nil {
			draft = &domain.TimesheetDraft{
				ID:            row.ID,
				EmployeeID:    row.EmployeeID,
				WeekStartDate: row.WeekStartDate,
				WeekEndDate:   row.WeekEndDate,
				TimesheetID:   row.TimesheetID,
				Status:        domain.TimesheetStatus(row.Status),
				Entries:       make([]domain.TimesheetEntry, 0),
				CreatedAt:     row.CreatedAt,
				UpdatedAt:     row.UpdatedAt,
				Version:       row.Version,
			}
		}

		// a draft saved with no entries produces a single row with NULL entry columns
		if !row.RowID.Valid {
			continue
		}

		draft.Entries = append(draft.Entries, domain.TimesheetEntry{
			ID:          row.EntryID.String,
			WorkDate:    row.WorkDate.String,
			Hours:       row.Hours.Float64,
			Description: row.Description.String,
			Notes:       row.Notes.String,
			ProjectID:   row.ProjectID.String,
			ProjectType: row.ProjectType.String,
			IsHoliday:   row.IsHoliday.Bool,
			Source:      row.Source.String,
			ClockIn:     row.ClockIn.String,
			ClockOut:    row.ClockOut.String,
			ManualIn:    row.ManualIn.String,
			ManualOut:   row.ManualOut.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if draft == nil {
		return nil, sql.ErrNoRows
	}

	return draft, nil
}

func (r *Repository) CreateDraft(draft *domain.TimesheetDraft) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO timesheet_drafts (employee_id, week_start_date, week_end_date, timesheet_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version
	`
	params := []any{draft.EmployeeID, draft.WeekStartDate, draft.WeekEndDate, draft.TimesheetID, string(draft.Status)}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&draft.ID, &draft.CreatedAt, &draft.UpdatedAt, &draft.Version); err != nil {
		return err
	}

	if err := insertDraftEntries(ctx, tx, draft.ID, draft.Entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateDraft replaces the head row and all entry rows. It fails with
// sql.ErrNoRows when the stored version no longer matches, which means a
// concurrent request rewrote the draft first.
func (r *Repository) UpdateDraft(draft *domain.TimesheetDraft) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE timesheet_drafts
		SET
			week_end_date = $1,
			timesheet_id = $2,
			status = $3,
			updated_at = now(),
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING updated_at, version
	`
	params := []any{draft.WeekEndDate, draft.TimesheetID, string(draft.Status), draft.ID, draft.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&draft.UpdatedAt, &draft.Version); err != nil {
		return err
	}

	query = `DELETE FROM timesheet_draft_entries WHERE draft_id = $1`
	if _, err := tx.ExecContext(ctx, query, draft.ID); err != nil {
		return err
	}

	if err := insertDraftEntries(ctx, tx, draft.ID, draft.Entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDraft(employeeID string, weekStartDate string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM timesheet_drafts WHERE employee_id = $1 AND week_start_date = $2
	`

	_, err := r.dbpool.ExecContext(ctx, query, employeeID, weekStartDate)
	if err != nil {
		return err
	}

	return nil
}

// insertDraftEntries writes entries with their slice index as position, so
// reads restore the exact order the reconciliation engine produced.
func insertDraftEntries(ctx context.Context, tx *sql.Tx, draftID int64, entries []domain.TimesheetEntry) error {
	query := `
		INSERT INTO timesheet_draft_entries (
			draft_id, position, entry_id, work_date, hours, description, notes,
			project_id, project_type, is_holiday, source,
			clock_in, clock_out, manual_in, manual_out
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for i := range entries {
		params := []any{
			draftID,
			i,
			entries[i].ID,
			entries[i].WorkDate,
			entries[i].Hours,
			entries[i].Description,
			entries[i].Notes,
			entries[i].ProjectID,
			entries[i].ProjectType,
			entries[i].IsHoliday,
			entries[i].Source,
			entries[i].ClockIn,
			entries[i].ClockOut,
			entries[i].ManualIn,
			entries[i].ManualOut,
		}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	return nil
}
