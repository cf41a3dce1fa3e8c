package report

import "errors"

var (
	ErrNoRecords = errors.New("worker has no attendance records")
)
