package company

import "errors"

var (
	ErrCompanyNotFound         = errors.New("company not found")
	ErrDefaultCompanyProtected = errors.New("the default company cannot be deleted")
)
