package focus

import (
	"errors"
	"fmt"
)

// Status is the event state. Stopped is terminal.
type Status int

const (
	StatusRunning Status = iota
	StatusPausing
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusPausing:
		return "Pausing"
	case StatusStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus parses a persisted status name.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "Running":
		return StatusRunning, nil
	case "Pausing":
		return StatusPausing, nil
	case "Stopped":
		return StatusStopped, nil
	default:
		return 0, fmt.Errorf("unknown event status %q", name)
	}
}

// ErrInvalidTransition marks a transition attempted in the wrong status.
var ErrInvalidTransition = errors.New("invalid transition")

// TransitionError is the panic value of a wrong-status transition and the
// error returned by CheckTransition.
type TransitionError struct {
	Op     Op
	Status Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s event", ErrInvalidTransition, e.Op, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Event is one tracked work session. Work is in seconds.
type Event struct {
	ID      string
	TaskID  string
	Started int64
	Status  Status
	Laps    Ledger
	Work    int64
	Notes   string
}

// NewEvent starts a Running event with an open Split lap at now.
func NewEvent(taskID string, now int64) *Event {
	e := &Event{
		ID:      DateID(now),
		TaskID:  taskID,
		Started: now,
		Status:  StatusRunning,
	}
	e.Laps.append(LapSplit, now)
	return e
}

// CheckTransition reports whether op is allowed in the current status.
func (e *Event) CheckTransition(op Op) error {
	ok := false
	switch op {
	case OpSplit, OpPause:
		ok = e.Status == StatusRunning
	case OpResume:
		ok = e.Status == StatusPausing
	case OpStop:
		ok = e.Status != StatusStopped
	}
	if !ok {
		return &TransitionError{Op: op, Status: e.Status}
	}
	return nil
}

func (e *Event) mustAllow(op Op) {
	if err := e.CheckTransition(op); err != nil {
		panic(err)
	}
}

// Split ends the running Split lap and starts a new one at its end. A lap not
// longer than split_min is put back as if Split was never called.
func (e *Event) Split(now int64, cfg Config) Verdict {
	e.mustAllow(OpSplit)
	lap := e.Laps.closeLast(now)
	v := Decide(OpSplit, lap.Kind, lap.Length(), cfg)
	if v == DiscardCarry {
		e.Laps.cancelLastClose()
		return v
	}
	e.Work += lap.Length()
	e.Laps.append(LapSplit, lap.End())
	return v
}

// Pause ends the running Split lap and opens a Pause lap.
func (e *Event) Pause(now int64, cfg Config) Verdict {
	e.mustAllow(OpPause)
	lap := e.Laps.closeLast(now)
	v := Decide(OpPause, lap.Kind, lap.Length(), cfg)
	if v == DiscardShort {
		e.Laps.dropLast()
		e.Laps.append(LapPause, now)
	} else {
		e.Work += lap.Length()
		e.Laps.append(LapPause, lap.End())
	}
	e.Status = StatusPausing
	return v
}

// Resume ends the Pause lap and returns the resulting lap count. A pause of at
// least pause_max stops the event; the caller starts a replacement.
func (e *Event) Resume(now int64, cfg Config) (int, Verdict) {
	e.mustAllow(OpResume)
	lap := e.Laps.closeLast(now)
	v := Decide(OpResume, lap.Kind, lap.Length(), cfg)
	switch v {
	case Terminate:
		e.Laps.dropLast()
		e.Status = StatusStopped
	case DiscardShort:
		e.Laps.dropLast()
		e.Laps.append(LapSplit, now)
		e.Status = StatusRunning
	default:
		e.Laps.append(LapSplit, lap.End())
		e.Status = StatusRunning
	}
	return len(e.Laps), v
}

// Stop closes the open lap and makes the event terminal.
func (e *Event) Stop(now int64, cfg Config) Verdict {
	e.mustAllow(OpStop)
	running := e.Status == StatusRunning
	lap := e.Laps.closeLast(now)
	v := Decide(OpStop, lap.Kind, lap.Length(), cfg)
	if v == DiscardShort {
		e.Laps.dropLast()
	} else if lap.Kind == LapSplit && running {
		e.Work += lap.Length()
	}
	e.Status = StatusStopped
	return v
}

// ShouldDiscard reports whether a stopped event is too short to keep.
func (e *Event) ShouldDiscard(cfg Config) bool {
	return e.Status == StatusStopped && e.Work <= cfg.splitMinSec()
}

// Stopped returns the end of the last lap, or false if the event is not
// stopped or has no laps.
func (e *Event) Stopped() (int64, bool) {
	if e.Status != StatusStopped {
		return 0, false
	}
	last, ok := e.Laps.Last()
	if !ok {
		return 0, false
	}
	return last.End(), true
}

// LiveWork is Work plus the age of a running Split lap.
func (e *Event) LiveWork(now int64) int64 {
	last, ok := e.Laps.Last()
	if e.Status == StatusRunning && ok && last.Open() && last.Kind == LapSplit && now > last.Start {
		return e.Work + now - last.Start
	}
	return e.Work
}

// Clone returns a deep copy.
func (e *Event) Clone() *Event {
	c := *e
	c.Laps = e.Laps.Clone()
	return &c
}
