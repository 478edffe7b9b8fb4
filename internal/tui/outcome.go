package tui

import (
	"errors"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
	"ttfocus/internal/tracker"
)

// Outcome 描述一次状态迁移的结果
// Outcome describes the result of a transition in one localized line.
func (p Printer) Outcome(op focus.Op, res tracker.Result, cfg focus.Config) string {
	e := res.Event
	if res.Discarded {
		return p.Theme.WarningStyle.Render(p.Locale.T("event.discarded", e.ID, cfg.SplitMin))
	}
	switch op {
	case focus.OpSplit:
		if res.Verdict == focus.DiscardCarry {
			return p.Theme.MutedStyle.Render(p.Locale.T("event.split_carried", cfg.SplitMin))
		}
		return p.Theme.SuccessStyle.Render(p.Locale.T("event.split", FormatDuration(e.Work)))
	case focus.OpPause:
		if res.Verdict == focus.DiscardShort {
			return p.Theme.WarningStyle.Render(p.Locale.T("event.pause_short"))
		}
		return p.Theme.SuccessStyle.Render(p.Locale.T("event.paused"))
	case focus.OpResume:
		switch res.Verdict {
		case focus.Terminate:
			next := ""
			if res.Replacement != nil {
				next = res.Replacement.ID
			}
			return p.Theme.WarningStyle.Render(p.Locale.T("event.auto_stopped", cfg.PauseMax, e.ID, next))
		case focus.DiscardShort:
			return p.Theme.WarningStyle.Render(p.Locale.T("event.resume_short"))
		}
		return p.Theme.SuccessStyle.Render(p.Locale.T("event.resumed"))
	default:
		return p.Theme.SuccessStyle.Render(p.Locale.T("event.stopped", e.ID, FormatDuration(e.Work)))
	}
}

// Error 把已知错误转成本地化提示，其余原样输出
// Error maps known errors to localized messages.
func (p Printer) Error(err error) string {
	if err == nil {
		return ""
	}
	var (
		mergeErr *focus.MergeError
		msg      string
	)
	switch {
	case errors.Is(err, tracker.ErrNoActiveEvent):
		msg = p.Locale.T("error.no_event")
	case errors.Is(err, tracker.ErrEventInProgress):
		msg = p.Locale.T("error.in_progress")
	case errors.Is(err, tracker.ErrNotRunning):
		msg = p.Locale.T("error.not_running")
	case errors.Is(err, tracker.ErrNotPausing):
		msg = p.Locale.T("error.not_pausing")
	case errors.Is(err, tracker.ErrAlreadyStopped):
		msg = p.Locale.T("error.already_stopped")
	case errors.Is(err, tracker.ErrBadDate):
		msg = p.Locale.T("error.bad_date", err.Error())
	case errors.As(err, &mergeErr):
		msg = p.Locale.T("error.merge", mergeErr.Error())
	case errors.Is(err, focus.ErrInvalidTaskName):
		msg = p.Locale.T("error.bad_task_name", err.Error())
	case errors.Is(err, storage.ErrTaskExists):
		msg = p.Locale.T("error.task_exists", err.Error())
	case errors.Is(err, storage.ErrNotFound):
		msg = p.Locale.T("error.not_found", err.Error())
	default:
		msg = p.Locale.T("error.generic", err)
	}
	return p.Theme.ErrorStyle.Render(msg)
}
