package domain

import "strings"

type Role string

const (
	RoleEmployee  Role = "employee"
	RoleManager   Role = "manager"
	RoleHRManager Role = "hr_manager"
	RoleAdmin     Role = "admin"
)

type EmployeeProfile struct {
	ID                 string `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	ReportingManagerID string `json:"reporting_manager_id,omitempty"`
}

func (p *EmployeeProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
