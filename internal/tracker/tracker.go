package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
)

// Tracker 读取最新事件，执行状态迁移并写回存储
// Tracker loads the current event, applies a transition and persists the result.
type Tracker struct {
	store storage.Store
	clock focus.Clock
	log   *slog.Logger
	loc   *time.Location
}

func New(opts Options) *Tracker {
	if opts.Store == nil {
		panic("tracker: nil store")
	}
	clock := opts.Clock
	if clock == nil {
		clock = focus.ClockFunc(func() int64 { return time.Now().Unix() })
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{store: opts.Store, clock: clock, log: logger, loc: loc}
}

// Now 当前时间（Unix 秒）/ Now returns the tracker clock's time.
func (t *Tracker) Now() int64 { return t.clock.Now() }

// Location 返回用于划分日历日的时区
func (t *Tracker) Location() *time.Location { return t.loc }

// --- Tasks ---

func (t *Tracker) AddTask(name, alias string) (focus.Task, error) {
	task, err := focus.NewTask(strings.TrimSpace(name), strings.TrimSpace(alias))
	if err != nil {
		return focus.Task{}, err
	}
	if err := t.store.InsertTask(task); err != nil {
		return focus.Task{}, err
	}
	t.log.Debug("task added", "task", task.ID, "name", task.Name, "alias", task.Alias)
	return task, nil
}

func (t *Tracker) Tasks() ([]focus.Task, error) {
	return t.store.ListTasks()
}

func (t *Tracker) SetAlias(name, alias string) error {
	alias = strings.TrimSpace(alias)
	if err := focus.ValidateTaskName(alias); err != nil {
		return err
	}
	return t.store.SetTaskAlias(strings.TrimSpace(name), alias)
}

func (t *Tracker) RenameTask(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := focus.ValidateTaskName(newName); err != nil {
		return err
	}
	return t.store.SetTaskName(strings.TrimSpace(oldName), newName)
}

// ResolveTask 先按名称查找，再按别名查找
// ResolveTask looks a task up by name, then by alias.
func (t *Tracker) ResolveTask(ref string) (focus.Task, error) {
	task, err := t.store.GetTaskByName(ref)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return focus.Task{}, err
	}
	return t.store.GetTaskByAlias(ref)
}

// TaskOf 返回事件所属任务 / TaskOf returns the task an event belongs to.
func (t *Tracker) TaskOf(e *focus.Event) (focus.Task, error) {
	return t.store.GetTaskByID(e.TaskID)
}

// --- Thresholds ---

func (t *Tracker) Thresholds() (focus.Config, error) {
	return t.store.GetConfig()
}

func (t *Tracker) SetThreshold(key string, minutes int) (focus.Config, error) {
	cfg, err := t.store.GetConfig()
	if err != nil {
		return focus.Config{}, err
	}
	if err := cfg.Set(strings.TrimSpace(strings.ToLower(key)), minutes); err != nil {
		return focus.Config{}, err
	}
	if err := t.store.UpdateConfig(cfg); err != nil {
		return focus.Config{}, err
	}
	t.log.Info("threshold updated", "key", key, "minutes", minutes)
	return cfg, nil
}

// --- Helpers ---

// current 返回最新事件；没有任何事件时返回 ErrNoActiveEvent
func (t *Tracker) current() (*focus.Event, error) {
	e, err := t.store.GetLastEvent()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoActiveEvent
		}
		return nil, fmt.Errorf("load last event: %w", err)
	}
	return e, nil
}

// checkOp 把状态机的非法迁移映射成业务错误
// checkOp maps a wrong-status transition to a reportable error.
func checkOp(e *focus.Event, op focus.Op) error {
	if e.CheckTransition(op) == nil {
		return nil
	}
	switch {
	case e.Status == focus.StatusStopped:
		return ErrAlreadyStopped
	case op == focus.OpResume:
		return ErrNotPausing
	default:
		return ErrNotRunning
	}
}

func (t *Tracker) logTransition(op focus.Op, e *focus.Event, v focus.Verdict) {
	t.log.Debug("transition",
		"op", op.String(),
		"event", e.ID,
		"task", e.TaskID,
		"status", e.Status.String(),
		"laps", len(e.Laps),
		"work", e.Work,
		"verdict", v.String(),
	)
}

func (t *Tracker) persist(e *focus.Event) error {
	if err := t.store.UpdateLaps(e); err != nil {
		t.log.Error("persist event failed", "event", e.ID, "err", err)
		return fmt.Errorf("save event %s: %w", e.ID, err)
	}
	return nil
}
