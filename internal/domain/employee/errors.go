package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeInactive      = errors.New("employee account is inactive")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrOwnerAccessRequired   = errors.New("owner access required")
)
