package focus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrMergeValidation matches every *MergeError.
var ErrMergeValidation = errors.New("merge validation failed")

// MergeReason is the machine-readable cause of a rejected merge.
type MergeReason string

const (
	MergeTooFew        MergeReason = "too_few"
	MergeLookup        MergeReason = "lookup"
	MergeTaskMismatch  MergeReason = "task_mismatch"
	MergeDayMismatch   MergeReason = "day_mismatch"
	MergeNotStopped    MergeReason = "not_stopped"
	MergeNotContiguous MergeReason = "not_contiguous"
)

// MergeError reports why a merge was rejected. Nothing is mutated when it is returned.
type MergeError struct {
	Reason MergeReason
	ID     string
	Err    error
}

func (e *MergeError) Error() string {
	var b strings.Builder
	b.WriteString("merge: ")
	switch e.Reason {
	case MergeTooFew:
		b.WriteString("need at least two distinct events")
	case MergeLookup:
		fmt.Fprintf(&b, "cannot load event %s", e.ID)
	case MergeTaskMismatch:
		fmt.Fprintf(&b, "event %s belongs to a different task", e.ID)
	case MergeDayMismatch:
		fmt.Fprintf(&b, "event %s started on a different day", e.ID)
	case MergeNotStopped:
		fmt.Fprintf(&b, "event %s is not stopped", e.ID)
	case MergeNotContiguous:
		b.WriteString("events are not adjacent")
	default:
		b.WriteString(string(e.Reason))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MergeError) Unwrap() error { return e.Err }

// Is matches ErrMergeValidation and any *MergeError with the same reason.
func (e *MergeError) Is(target error) bool {
	if target == ErrMergeValidation {
		return true
	}
	if t, ok := target.(*MergeError); ok {
		return t.Reason == e.Reason
	}
	return false
}

// EventSource is the part of the store the merge operator reads from.
type EventSource interface {
	GetEventByID(id string) (*Event, error)
	CountEventsInRange(start, end int64) (int, error)
}

// MergePlan is a validated merge. Merged replaces the earliest event's record;
// Absorbed lists the ids to delete.
type MergePlan struct {
	Merged   *Event
	Sources  []*Event
	Absorbed []string
}

// PlanMerge validates ids against src and builds the merged event without
// writing anything. loc decides calendar days.
func PlanMerge(src EventSource, ids []string, loc *time.Location) (MergePlan, error) {
	if loc == nil {
		loc = time.Local
	}
	distinct := dedupe(ids)
	if len(distinct) < 2 {
		return MergePlan{}, &MergeError{Reason: MergeTooFew}
	}

	events := make([]*Event, 0, len(distinct))
	for _, id := range distinct {
		e, err := src.GetEventByID(id)
		if err != nil {
			return MergePlan{}, &MergeError{Reason: MergeLookup, ID: id, Err: err}
		}
		events = append(events, e)
	}

	first := events[0]
	day := calendarDay(first.Started, loc)
	for _, e := range events[1:] {
		if e.TaskID != first.TaskID {
			return MergePlan{}, &MergeError{Reason: MergeTaskMismatch, ID: e.ID}
		}
	}
	for _, e := range events[1:] {
		if calendarDay(e.Started, loc) != day {
			return MergePlan{}, &MergeError{Reason: MergeDayMismatch, ID: e.ID}
		}
	}
	for _, e := range events {
		if e.Status != StatusStopped {
			return MergePlan{}, &MergeError{Reason: MergeNotStopped, ID: e.ID}
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Started < events[j].Started })
	earliest, latest := events[0], events[len(events)-1]
	n, err := src.CountEventsInRange(earliest.Started, latest.Started)
	if err != nil {
		return MergePlan{}, &MergeError{Reason: MergeLookup, Err: err}
	}
	if n != len(events) {
		return MergePlan{}, &MergeError{
			Reason: MergeNotContiguous,
			Err:    fmt.Errorf("%d events in range, merging %d", n, len(events)),
		}
	}

	return MergePlan{
		Merged:   combine(events),
		Sources:  events,
		Absorbed: idsOf(events[1:]),
	}, nil
}

func combine(events []*Event) *Event {
	merged := events[0].Clone()
	var notes []string
	if n := strings.TrimSpace(merged.Notes); n != "" {
		notes = append(notes, n)
	}
	for _, e := range events[1:] {
		merged.Laps = append(merged.Laps, e.Laps.Clone()...)
		merged.Work += e.Work
		if n := strings.TrimSpace(e.Notes); n != "" {
			notes = append(notes, n)
		}
	}
	merged.Notes = strings.Join(notes, " ")
	merged.Status = StatusStopped
	return merged
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idsOf(events []*Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func calendarDay(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(time.DateOnly)
}
