package focus

import (
	"encoding/json"
	"fmt"
)

// LapKind 区分工作段与休息段
// LapKind tells a working interval from a resting one
type LapKind int

const (
	LapSplit LapKind = iota
	LapPause
)

func (k LapKind) String() string {
	switch k {
	case LapSplit:
		return "Split"
	case LapPause:
		return "Pause"
	default:
		return fmt.Sprintf("LapKind(%d)", int(k))
	}
}

// ParseLapKind 解析持久化的名称
// ParseLapKind parses a persisted kind name
func ParseLapKind(name string) (LapKind, error) {
	switch name {
	case "Split":
		return LapSplit, nil
	case "Pause":
		return LapPause, nil
	default:
		return 0, fmt.Errorf("unknown lap kind %q", name)
	}
}

// LapClose holds the end of a finished lap.
type LapClose struct {
	End    int64
	Length int64
}

// Lap is one contiguous interval of an event. Closed is nil while the lap is running.
type Lap struct {
	Kind   LapKind
	Start  int64
	Closed *LapClose
}

// Open reports whether the lap is still running.
func (l Lap) Open() bool { return l.Closed == nil }

// End returns the end timestamp, 0 for the open lap.
func (l Lap) End() int64 {
	if l.Closed == nil {
		return 0
	}
	return l.Closed.End
}

// Length returns the closed length in seconds, 0 for the open lap.
func (l Lap) Length() int64 {
	if l.Closed == nil {
		return 0
	}
	return l.Closed.Length
}

// MarshalJSON writes the lap as ["Split", start, end, length].
func (l Lap) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Kind.String(), l.Start, l.End(), l.Length()})
}

// UnmarshalJSON reads the 4-tuple form; end == 0 && length == 0 means open.
func (l *Lap) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode lap: %w", err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("decode lap: want 4 fields, got %d", len(raw))
	}
	var (
		name               string
		start, end, length int64
	)
	if err := json.Unmarshal(raw[0], &name); err != nil {
		return fmt.Errorf("decode lap kind: %w", err)
	}
	kind, err := ParseLapKind(name)
	if err != nil {
		return err
	}
	for i, dst := range []*int64{&start, &end, &length} {
		if err := json.Unmarshal(raw[i+1], dst); err != nil {
			return fmt.Errorf("decode lap field %d: %w", i+1, err)
		}
	}
	*l = Lap{Kind: kind, Start: start}
	if end != 0 || length != 0 {
		l.Closed = &LapClose{End: end, Length: length}
	}
	return nil
}

// Ledger is the ordered lap sequence of one event. It enforces no policy; the
// mutators are only called by the state machine.
type Ledger []Lap

// Last returns the final lap and false when the ledger is empty.
func (g Ledger) Last() (Lap, bool) {
	if len(g) == 0 {
		return Lap{}, false
	}
	return g[len(g)-1], true
}

// HasOpen reports whether the last lap is running.
func (g Ledger) HasOpen() bool {
	last, ok := g.Last()
	return ok && last.Open()
}

func (g Ledger) closeLast(now int64) Lap {
	if !g.HasOpen() {
		panic("focus: closeLast on a ledger without an open lap")
	}
	last := &g[len(g)-1]
	last.Closed = &LapClose{End: now, Length: now - last.Start}
	return *last
}

func (g Ledger) cancelLastClose() {
	if len(g) == 0 || g[len(g)-1].Open() {
		panic("focus: cancelLastClose without a closed last lap")
	}
	g[len(g)-1].Closed = nil
}

func (g *Ledger) dropLast() {
	if len(*g) == 0 {
		panic("focus: dropLast on an empty ledger")
	}
	*g = (*g)[:len(*g)-1]
}

func (g *Ledger) append(kind LapKind, start int64) {
	*g = append(*g, Lap{Kind: kind, Start: start})
}

// Clone returns a deep copy.
func (g Ledger) Clone() Ledger {
	if g == nil {
		return nil
	}
	out := make(Ledger, len(g))
	for i, lap := range g {
		out[i] = lap
		if lap.Closed != nil {
			c := *lap.Closed
			out[i].Closed = &c
		}
	}
	return out
}
