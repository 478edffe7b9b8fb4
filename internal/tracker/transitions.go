package tracker

import (
	"errors"
	"fmt"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
)

// Start 为任务（名称或别名）开始新事件；上一个事件必须已结束
// Start begins a new event for the task named by ref. The last event must be stopped.
func (t *Tracker) Start(ref string) (*focus.Event, error) {
	task, err := t.ResolveTask(ref)
	if err != nil {
		return nil, err
	}
	last, err := t.store.GetLastEvent()
	switch {
	case err == nil:
		if last.Status != focus.StatusStopped {
			return nil, fmt.Errorf("%w: %s", ErrEventInProgress, last.ID)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("load last event: %w", err)
	}
	return t.startEvent(task.ID)
}

func (t *Tracker) startEvent(taskID string) (*focus.Event, error) {
	e := focus.NewEvent(taskID, t.clock.Now())
	if err := t.store.InsertEvent(e); err != nil {
		t.log.Error("insert event failed", "event", e.ID, "err", err)
		return nil, err
	}
	t.log.Debug("event started", "event", e.ID, "task", taskID, "started", e.Started)
	return e, nil
}

func (t *Tracker) Split() (Result, error) {
	return t.apply(focus.OpSplit, func(e *focus.Event, now int64, cfg focus.Config) focus.Verdict {
		return e.Split(now, cfg)
	})
}

func (t *Tracker) Pause() (Result, error) {
	return t.apply(focus.OpPause, func(e *focus.Event, now int64, cfg focus.Config) focus.Verdict {
		return e.Pause(now, cfg)
	})
}

// Resume 结束暂停；暂停达到 pause_max 时事件自动结束并为同一任务开新事件
// Resume ends the pause. A pause reaching pause_max stops the event and a
// replacement event for the same task starts at now.
func (t *Tracker) Resume() (Result, error) {
	res, err := t.apply(focus.OpResume, func(e *focus.Event, now int64, cfg focus.Config) focus.Verdict {
		_, v := e.Resume(now, cfg)
		return v
	})
	if err != nil || res.Verdict != focus.Terminate {
		return res, err
	}
	next, err := t.startEvent(res.Event.TaskID)
	if err != nil {
		return res, err
	}
	res.Replacement = next
	return res, nil
}

func (t *Tracker) Stop() (Result, error) {
	return t.apply(focus.OpStop, func(e *focus.Event, now int64, cfg focus.Config) focus.Verdict {
		return e.Stop(now, cfg)
	})
}

type transition func(e *focus.Event, now int64, cfg focus.Config) focus.Verdict

// apply 载入最新事件 → 校验 → 迁移 → 写回（或删除过短事件）
func (t *Tracker) apply(op focus.Op, fn transition) (Result, error) {
	e, err := t.current()
	if err != nil {
		return Result{}, err
	}
	if err := checkOp(e, op); err != nil {
		return Result{Event: e}, err
	}
	cfg, err := t.store.GetConfig()
	if err != nil {
		return Result{}, fmt.Errorf("load thresholds: %w", err)
	}

	v := fn(e, t.clock.Now(), cfg)
	t.logTransition(op, e, v)
	res := Result{Event: e, Verdict: v}

	if v == focus.DiscardCarry {
		// 记录未变化 / nothing changed
		return res, nil
	}
	if e.ShouldDiscard(cfg) {
		if err := t.store.DeleteEvent(e.ID); err != nil {
			t.log.Error("delete short event failed", "event", e.ID, "err", err)
			return res, fmt.Errorf("delete event %s: %w", e.ID, err)
		}
		t.log.Info("short event discarded", "event", e.ID, "work", e.Work)
		res.Discarded = true
		return res, nil
	}
	return res, t.persist(e)
}
