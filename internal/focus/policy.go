package focus

import (
	"errors"
	"fmt"
)

// Default thresholds in minutes.
const (
	DefaultSplitMin = 5
	DefaultPauseMin = 5
	DefaultPauseMax = 60
)

// Config holds the lap thresholds in minutes.
type Config struct {
	SplitMin int `json:"split_min"`
	PauseMin int `json:"pause_min"`
	PauseMax int `json:"pause_max"`
}

// DefaultConfig returns {5, 5, 60}.
func DefaultConfig() Config {
	return Config{SplitMin: DefaultSplitMin, PauseMin: DefaultPauseMin, PauseMax: DefaultPauseMax}
}

// Validate requires every threshold to be positive.
func (c Config) Validate() error {
	var errs []error
	if c.SplitMin <= 0 {
		errs = append(errs, fmt.Errorf("split_min must be positive, got %d", c.SplitMin))
	}
	if c.PauseMin <= 0 {
		errs = append(errs, fmt.Errorf("pause_min must be positive, got %d", c.PauseMin))
	}
	if c.PauseMax <= 0 {
		errs = append(errs, fmt.Errorf("pause_max must be positive, got %d", c.PauseMax))
	}
	return errors.Join(errs...)
}

// Set updates one threshold by its persisted key.
func (c *Config) Set(key string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%s must be positive, got %d", key, minutes)
	}
	switch key {
	case "split_min":
		c.SplitMin = minutes
	case "pause_min":
		c.PauseMin = minutes
	case "pause_max":
		c.PauseMax = minutes
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func (c Config) splitMinSec() int64 { return int64(c.SplitMin) * 60 }
func (c Config) pauseMinSec() int64 { return int64(c.PauseMin) * 60 }
func (c Config) pauseMaxSec() int64 { return int64(c.PauseMax) * 60 }

// Op names a state-machine transition.
type Op int

const (
	OpSplit Op = iota
	OpPause
	OpResume
	OpStop
)

func (o Op) String() string {
	switch o {
	case OpSplit:
		return "split"
	case OpPause:
		return "pause"
	case OpResume:
		return "resume"
	case OpStop:
		return "stop"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Verdict is what happens to a freshly closed lap.
type Verdict int

const (
	// Keep commits the lap; Split laps count toward work.
	Keep Verdict = iota
	// DiscardShort drops the lap; the successor starts at now.
	DiscardShort
	// DiscardCarry cancels the close; the lap keeps running as if nothing happened.
	DiscardCarry
	// Terminate drops the lap and stops the event without a successor.
	Terminate
)

func (v Verdict) String() string {
	switch v {
	case Keep:
		return "keep"
	case DiscardShort:
		return "discard-short"
	case DiscardCarry:
		return "discard-carry"
	case Terminate:
		return "terminate"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Decide applies the threshold rules to a lap of the given kind and length
// (seconds) closed by op.
func Decide(op Op, kind LapKind, length int64, cfg Config) Verdict {
	switch op {
	case OpSplit:
		if length <= cfg.splitMinSec() {
			return DiscardCarry
		}
	case OpPause:
		// pause closes a Split lap, so the split threshold applies here.
		if length <= cfg.splitMinSec() {
			return DiscardShort
		}
	case OpResume:
		if length >= cfg.pauseMaxSec() {
			return Terminate
		}
		if length <= cfg.pauseMinSec() {
			return DiscardShort
		}
	case OpStop:
		if kind == LapSplit {
			if length <= cfg.splitMinSec() {
				return DiscardShort
			}
			return Keep
		}
		if length <= cfg.pauseMinSec() || length > cfg.pauseMaxSec() {
			return DiscardShort
		}
	}
	return Keep
}
