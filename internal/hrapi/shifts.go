package hrapi

import (
	"context"
	"net/url"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// ShiftsForEmployee fetches the employee's scheduled shift assignments.
func (c *Client) ShiftsForEmployee(ctx context.Context, employeeID string) ([]domain.Shift, error) {
	var shifts []domain.Shift
	if err := c.get(ctx, "/employees/"+url.PathEscape(employeeID)+"/shifts", nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}
