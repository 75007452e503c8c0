package hrapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// Holidays fetches the flat holiday list applicable to one employee.
// state narrows to one state's calendar; domain.StateAll returns every
// applicable holiday.
func (c *Client) Holidays(ctx context.Context, employeeID string, year int, state string) ([]domain.Holiday, error) {
	q := url.Values{}
	q.Set("employee_id", employeeID)
	q.Set("year", strconv.Itoa(year))
	if state != "" {
		q.Set("state", state)
	}

	var resp struct {
		Holidays []domain.Holiday `json:"holidays"`
	}
	if err := c.get(ctx, "/holidays", q, &resp); err != nil {
		return nil, err
	}
	return resp.Holidays, nil
}

// HolidayCalendar fetches the org-wide calendar grouped by state.
func (c *Client) HolidayCalendar(ctx context.Context, year int, state string) (*domain.HolidayCalendar, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	if state != "" {
		q.Set("state", state)
	}

	var cal domain.HolidayCalendar
	if err := c.get(ctx, "/holidays/calendar", q, &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}
