package worker

import "errors"

var (
	ErrWorkerNotFound         = errors.New("worker not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrNationalIDExists       = errors.New("national id already registered")
	ErrAdminExists            = errors.New("an admin account already exists")
	ErrCannotDeleteSelf       = errors.New("you cannot delete your own account")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrForbidden              = errors.New("not allowed to access another worker's data")
)
