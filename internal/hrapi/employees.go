package hrapi

import (
	"context"
	"net/url"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
)

// EmployeeProfile fetches the employee record, used for notification
// addressing.
func (c *Client) EmployeeProfile(ctx context.Context, employeeID string) (*domain.EmployeeProfile, error) {
	var profile domain.EmployeeProfile
	if err := c.get(ctx, "/employees/"+url.PathEscape(employeeID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
