package focus

// Productivity is work divided by the elapsed time from start to the end of
// the last lap. It is only defined for stopped events with a positive span.
func Productivity(e *Event) (float64, bool) {
	stopped, ok := e.Stopped()
	if !ok {
		return 0, false
	}
	elapsed := stopped - e.Started
	if elapsed <= 0 {
		return 0, false
	}
	return float64(e.Work) / float64(elapsed), true
}

// Clock supplies the current Unix time in seconds.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }
