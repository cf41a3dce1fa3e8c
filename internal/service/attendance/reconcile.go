package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

// sameShiftWindow is how close a submitted entry time must be to a lone
// existing shift's entry time to be treated as a correction of that shift.
const sameShiftWindow = time.Hour

// Reconcile decides whether sub updates one of the worker's existing shifts
// for sub.Date or creates a new one, and returns the record to persist
// together with the whole collection after the write.
//
// records is never modified. The returned collection preserves the order of
// records, replacing an updated record in place and appending a created one.
func Reconcile(records []attendance.Record, sub attendance.Submission, now time.Time) (attendance.ReconcileResult, error) {
	if err := sub.Validate(); err != nil {
		return attendance.ReconcileResult{}, err
	}

	entry, err := clock.Parse(sub.EntryTime)
	if err != nil {
		return attendance.ReconcileResult{}, fmt.Errorf("entry time: %w", err)
	}

	var sameDay []int
	for i, r := range records {
		if r.WorkerID == sub.WorkerID && r.Date == sub.Date {
			sameDay = append(sameDay, i)
		}
	}
	sort.SliceStable(sameDay, func(a, b int) bool {
		return records[sameDay[a]].Shift < records[sameDay[b]].Shift
	})

	target := -1
	switch len(sameDay) {
	case 0:
	case 1:
		if entryDistance(records[sameDay[0]], entry) < sameShiftWindow {
			target = sameDay[0]
		}
	default:
		// More than two same-day records would be corrupt storage; only the
		// two lowest shifts take part.
		d1 := entryDistance(records[sameDay[0]], entry)
		d2 := entryDistance(records[sameDay[1]], entry)
		if d1 < d2 {
			target = sameDay[0]
		} else {
			target = sameDay[1]
		}
	}

	out := make([]attendance.Record, len(records), len(records)+1)
	copy(out, records)

	if target >= 0 {
		prev := records[target]
		updated := prev
		updated.WorkerName = sub.WorkerName
		updated.EntryTime = sub.EntryTime
		updated.ExitTime = sub.ExitTime
		updated.EntrySignature = pick(sub.EntrySignature, prev.EntrySignature)
		updated.ExitSignature = pick(sub.ExitSignature, prev.ExitSignature)
		updated.UpdatedAt = now
		out[target] = updated

		return attendance.ReconcileResult{
			Record:  updated,
			Action:  attendance.ActionUpdated,
			Records: out,
		}, nil
	}

	shift := attendance.ShiftMorning
	if len(sameDay) > 0 {
		shift = attendance.ShiftAfternoon
	}

	created := attendance.Record{
		WorkerID:       sub.WorkerID,
		WorkerName:     sub.WorkerName,
		Date:           sub.Date,
		Shift:          shift,
		EntryTime:      sub.EntryTime,
		ExitTime:       sub.ExitTime,
		EntrySignature: pick(sub.EntrySignature, ""),
		ExitSignature:  pick(sub.ExitSignature, ""),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	out = append(out, created)

	return attendance.ReconcileResult{
		Record:  created,
		Action:  attendance.ActionCreated,
		Records: out,
	}, nil
}

// entryDistance is the absolute gap between a record's entry time and t.
// A stored record with an unreadable entry time is treated as infinitely
// far away so it is never chosen over a valid one.
func entryDistance(r attendance.Record, t clock.Clock) time.Duration {
	c, err := clock.Parse(r.EntryTime)
	if err != nil {
		return time.Duration(1<<63 - 1)
	}
	return clock.AbsDiff(c, t)
}

func pick(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
