package hrapi

import (
	"context"
	"net/url"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// Timesheet fetches the persisted sheet for one employee week. Returns
// ErrNotFound when the week has never been saved.
func (c *Client) Timesheet(ctx context.Context, employeeID, weekStart, weekEnd string) (*domain.Timesheet, error) {
	q := url.Values{}
	q.Set("employee_id", employeeID)
	q.Set("week_start", weekStart)
	q.Set("week_end", weekEnd)

	var ts domain.Timesheet
	if err := c.get(ctx, "/timesheets", q, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// SaveTimesheet persists the full entry payload for a week. The upstream
// service creates the sheet on first save and recomputes its own totals;
// totalHours is advisory.
func (c *Client) SaveTimesheet(ctx context.Context, employeeID, weekStart, weekEnd string, totalHours float64, entries []domain.TimesheetEntry) (*domain.Timesheet, error) {
	payload := struct {
		EmployeeID    string                  `json:"employee_id"`
		WeekStartDate string                  `json:"week_start_date"`
		WeekEndDate   string                  `json:"week_end_date"`
		TotalHours    float64                 `json:"total_hours"`
		Entries       []domain.TimesheetEntry `json:"entries"`
	}{
		EmployeeID:    employeeID,
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		TotalHours:    totalHours,
		Entries:       entries,
	}

	var ts domain.Timesheet
	if err := c.post(ctx, "/timesheets", payload, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// SubmitTimesheet moves a saved sheet into pending_approval. Only valid
// while the sheet is editable; the upstream service enforces that.
func (c *Client) SubmitTimesheet(ctx context.Context, timesheetID string) error {
	return c.post(ctx, "/timesheets/"+url.PathEscape(timesheetID)+"/submit", nil, nil)
}
