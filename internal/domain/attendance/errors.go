package attendance

import "errors"

// Attendance domain errors
var (
	ErrForbiddenWorker  = errors.New("you cannot record attendance for another worker")
	ErrShiftCapExceeded = errors.New("a worker cannot have more than two shifts per day")
)
