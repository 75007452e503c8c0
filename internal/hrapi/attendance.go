package hrapi

import (
	"context"
	"net/url"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// AttendanceTimesheet fetches clock punches for an employee over a date
// range, one record per day.
func (c *Client) AttendanceTimesheet(ctx context.Context, employeeID, startDate, endDate string) ([]domain.AttendanceEntry, error) {
	q := url.Values{}
	q.Set("employee_id", employeeID)
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	var resp struct {
		Entries []domain.AttendanceEntry `json:"entries"`
	}
	if err := c.get(ctx, "/attendance/timesheet", q, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}
