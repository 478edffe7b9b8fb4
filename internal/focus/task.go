package focus

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTaskName is returned for empty names or names with disallowed characters.
var ErrInvalidTaskName = errors.New("invalid task name")

var taskNameRe = regexp.MustCompile(`^[\p{L}\p{N}_.\-]+$`)

// Task is a kind of work events are recorded against. Name is unique.
type Task struct {
	ID    string
	Name  string
	Alias string
}

// NewTask validates name and alias and assigns a random id.
func NewTask(name, alias string) (Task, error) {
	if err := ValidateTaskName(name); err != nil {
		return Task{}, err
	}
	if alias != "" {
		if err := ValidateTaskName(alias); err != nil {
			return Task{}, err
		}
	}
	return Task{ID: RandID(), Name: name, Alias: alias}, nil
}

// ValidateTaskName accepts letters, digits, '_', '-' and '.' only.
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTaskName)
	}
	if !taskNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTaskName, name)
	}
	return nil
}

func (t Task) String() string {
	if t.Alias == "" {
		return fmt.Sprintf("%s (%s)", t.Name, t.ID)
	}
	return fmt.Sprintf("%s [%s] (%s)", t.Name, t.Alias, t.ID)
}
