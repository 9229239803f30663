package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBalanceNotFound  = errors.New("leave balance not found for employee")
)
