package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
)

// Event 返回指定事件；id 为空时返回最新事件
// Event returns the event with id, or the latest one when id is empty.
func (t *Tracker) Event(id string) (*focus.Event, error) {
	if strings.TrimSpace(id) == "" {
		return t.current()
	}
	return t.store.GetEventByID(id)
}

func (t *Tracker) Recent(n int) ([]*focus.Event, error) {
	return t.store.GetRecentEvents(n)
}

// DaySpan 解析 YYYY-MM-DD，空字符串表示今天
// DaySpan parses YYYY-MM-DD in the tracker's location; empty means today.
func (t *Tracker) DaySpan(day string) (Span, error) {
	var start time.Time
	if day = strings.TrimSpace(day); day == "" {
		y, m, d := time.Unix(t.clock.Now(), 0).In(t.loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, t.loc)
	} else {
		parsed, err := time.ParseInLocation(time.DateOnly, day, t.loc)
		if err != nil {
			return Span{}, fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrBadDate, day)
		}
		start = parsed
	}
	end := start.AddDate(0, 0, 1)
	return Span{Label: start.Format(time.DateOnly), Start: start.Unix(), End: end.Unix()}, nil
}

// MonthSpan 解析 YYYY-MM，空字符串表示本月
func (t *Tracker) MonthSpan(month string) (Span, error) {
	var start time.Time
	if month = strings.TrimSpace(month); month == "" {
		y, m, _ := time.Unix(t.clock.Now(), 0).In(t.loc).Date()
		start = time.Date(y, m, 1, 0, 0, 0, 0, t.loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01", month, t.loc)
		if err != nil {
			return Span{}, fmt.Errorf("%w: %q, want YYYY-MM", ErrBadDate, month)
		}
		start = parsed
	}
	end := start.AddDate(0, 1, 0)
	return Span{Label: start.Format("2006-01"), Start: start.Unix(), End: end.Unix()}, nil
}

func (t *Tracker) InSpan(s Span) ([]*focus.Event, error) {
	return t.store.GetEventsInRange(s.Start, s.End)
}

// Merge 校验并合并相邻事件；apply 为 false 时只返回预览
// Merge validates ids and returns the plan; the plan is written only when apply is set.
func (t *Tracker) Merge(ids []string, apply bool) (focus.MergePlan, error) {
	plan, err := focus.PlanMerge(t.store, ids, t.loc)
	if err != nil {
		t.log.Debug("merge rejected", "ids", ids, "err", err)
		return focus.MergePlan{}, err
	}
	if !apply {
		return plan, nil
	}
	if err := t.store.ApplyMerge(plan.Merged, plan.Absorbed); err != nil {
		t.log.Error("apply merge failed", "event", plan.Merged.ID, "err", err)
		return plan, fmt.Errorf("apply merge: %w", err)
	}
	t.log.Info("events merged", "event", plan.Merged.ID, "absorbed", plan.Absorbed, "work", plan.Merged.Work)
	return plan, nil
}

func (t *Tracker) SetNotes(id, notes string) error {
	return t.store.SetEventNotes(strings.TrimSpace(id), strings.TrimSpace(notes))
}

// Delete 删除事件；未结束的事件同样可以删除
// Delete removes an event regardless of its status.
func (t *Tracker) Delete(id string) error {
	if err := t.store.DeleteEvent(strings.TrimSpace(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	t.log.Info("event deleted", "event", id)
	return nil
}
