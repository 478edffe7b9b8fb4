package tracker

import (
	"errors"
	"log/slog"
	"time"

	"ttfocus/internal/focus"
	"ttfocus/internal/storage"
)

// 业务错误：由命令层转成本地化提示
// Business errors; the command layer turns them into localized messages.
var (
	ErrNoActiveEvent   = errors.New("no event has been started yet")
	ErrEventInProgress = errors.New("the last event is still in progress")
	ErrNotRunning      = errors.New("the event is not running")
	ErrNotPausing      = errors.New("the event is not paused")
	ErrAlreadyStopped  = errors.New("the event is already stopped")
	ErrBadDate         = errors.New("malformed date")
)

type Options struct {
	Store    storage.Store
	Clock    focus.Clock  // nil → wall clock
	Logger   *slog.Logger // nil → slog.Default()
	Location *time.Location
}

// Result 一次状态迁移的结果
// Result describes the outcome of one transition.
type Result struct {
	Event   *focus.Event
	Verdict focus.Verdict
	// Discarded 为 true 表示事件因工作时长过短已被删除
	// Discarded is set when the stopped event was too short and got deleted.
	Discarded bool
	// Replacement 是 resume 自动结束后新开的事件
	// Replacement is the event started after a resume that auto-stopped.
	Replacement *focus.Event
}

// Span 一个查询时间窗 [Start, End)
type Span struct {
	Label      string
	Start, End int64
}
