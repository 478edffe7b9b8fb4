package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"ttfocus/internal/config"
	"ttfocus/internal/focus"
	"ttfocus/internal/i18n"
	"ttfocus/internal/storage"
	"ttfocus/internal/tracker"
	"ttfocus/internal/tui"
)

// BuildResult 与 UI 无关的构建结果，供 cmd/tt 使用
// BuildResult is UI-agnostic; cmd/tt drives it
type BuildResult struct {
	Tracker    *tracker.Tracker
	Store      *storage.SQLiteStore
	Thresholds focus.Config
}

// Options 测试时替换时钟与时区 / Options lets tests swap the clock and location.
type Options struct {
	Clock    focus.Clock
	Logger   *slog.Logger
	Location *time.Location
}

// Build 按顺序初始化：数据库 → 阈值 → tracker；调用方负责 defer result.Store.Close()
// Build opens the database, loads the thresholds and creates the tracker.
// The caller must defer result.Store.Close().
func Build(cfg config.Config, opts Options) (*BuildResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	thresholds, err := store.GetConfig()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	logger.Debug("storage ready",
		"db", store.Path(),
		"split_min", thresholds.SplitMin,
		"pause_min", thresholds.PauseMin,
		"pause_max", thresholds.PauseMax,
	)

	tr := tracker.New(tracker.Options{
		Store:    store,
		Clock:    opts.Clock,
		Logger:   logger,
		Location: opts.Location,
	})
	return &BuildResult{Tracker: tr, Store: store, Thresholds: thresholds}, nil
}

// NewLogger stderr 上的文本日志，级别取自配置
// NewLogger returns a text logger on w at the configured level.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// NewPrinter 按配置的主题和语言创建 Printer
func NewPrinter(cfg config.Config, loc *time.Location) tui.Printer {
	return tui.NewPrinter(tui.ThemeByName(cfg.Theme), i18n.New(cfg.Lang), loc)
}
