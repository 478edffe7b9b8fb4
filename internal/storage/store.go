package storage

import (
	"errors"

	"ttfocus/internal/focus"
)

// ErrNotFound 请求的记录不存在
// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("storage: not found")

// ErrTaskExists 任务名已被占用
// ErrTaskExists is returned when a task name is already taken
var ErrTaskExists = errors.New("storage: task name exists")

// Store 持久化接口
// Store is the persistence interface for tasks, events and thresholds
type Store interface {
	// 阈值配置 / Threshold config
	GetConfig() (focus.Config, error)
	UpdateConfig(cfg focus.Config) error

	// Task 操作 / Task operations
	InsertTask(task focus.Task) error
	GetTaskByID(id string) (focus.Task, error)
	GetTaskByName(name string) (focus.Task, error)
	GetTaskByAlias(alias string) (focus.Task, error)
	ListTasks() ([]focus.Task, error)
	SetTaskAlias(name, alias string) error
	SetTaskName(oldName, newName string) error

	// Event 操作 / Event operations
	InsertEvent(e *focus.Event) error
	GetEventByID(id string) (*focus.Event, error)
	GetLastEvent() (*focus.Event, error)
	GetRecentEvents(n int) ([]*focus.Event, error)
	GetEventsInRange(start, end int64) ([]*focus.Event, error)
	CountEventsInRange(start, end int64) (int, error)
	UpdateLaps(e *focus.Event) error
	SetEventNotes(id, notes string) error
	DeleteEvent(id string) error
	ApplyMerge(merged *focus.Event, absorbed []string) error

	// 生命周期 / Lifecycle
	Close() error
}
