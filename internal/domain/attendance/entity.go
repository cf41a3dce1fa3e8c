package attendance

import "time"

const (
	// ShiftMorning is the first shift of a day.
	ShiftMorning = 1
	// ShiftAfternoon is the second and last shift of a day.
	ShiftAfternoon = 2

	// MaxShiftsPerDay is the hard cap of records per worker per date.
	MaxShiftsPerDay = 2
)

// Record is one shift on one date for one worker. Together WorkerID, Date
// and Shift form its key; the JSON tags define the stored document format.
type Record struct {
	WorkerID       string    `json:"workerId"`
	WorkerName     string    `json:"workerName"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Shift          int       `json:"shift"`
	EntryTime      string    `json:"entryTime"`          // HH:MM
	ExitTime       string    `json:"exitTime,omitempty"` // HH:MM, empty while the shift is open
	EntrySignature string    `json:"entrySignature,omitempty"`
	ExitSignature  string    `json:"exitSignature,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsOpen reports whether the shift has no exit time yet.
func (r Record) IsOpen() bool {
	return r.ExitTime == ""
}

// SameSlot reports whether two records address the same (worker, date, shift).
func (r Record) SameSlot(o Record) bool {
	return r.WorkerID == o.WorkerID && r.Date == o.Date && r.Shift == o.Shift
}

// Submission is an incoming entry/exit pair for a worker and a date.
// A nil signature means "no change": an update keeps the slot's previous
// value. A non-nil signature, even an empty one, is written as given.
type Submission struct {
	WorkerID       string
	WorkerName     string
	Date           string
	EntryTime      string
	ExitTime       string
	EntrySignature *string
	ExitSignature  *string
}

// Action tells what reconciliation did with a submission.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// ReconcileResult is the outcome of matching a submission against a
// worker's existing records.
type ReconcileResult struct {
	Record  Record
	Action  Action
	Records []Record // full collection after the write
}
