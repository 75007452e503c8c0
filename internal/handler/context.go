package handler

type ContextKey string

var (
	RequestIDCtxKey ContextKey = "requestID"
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	// EmployeeIDCtxKey holds the employee whose data the request operates
	// on. Usually the caller; a manager may target a report instead.
	EmployeeIDCtxKey ContextKey = "employeeID"
	WeekStartCtxKey  ContextKey = "weekStart"
	WeekEndCtxKey    ContextKey = "weekEnd"
)
