package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ttfocus/internal/focus"

	_ "modernc.org/sqlite"
)

const configKey = "config"

// SQLiteStore 基于 SQLite (WAL 模式) 的持久化实现
// SQLiteStore implements Store using SQLite with WAL mode
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore 创建并初始化 SQLite 数据库
// NewSQLiteStore creates and initializes a SQLite database
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// 单连接，保证 PRAGMA 与事务作用于同一连接 / one connection so pragmas and tx share it
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := store.initConfig(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init config: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metadata (
		name  TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS task (
		id    TEXT PRIMARY KEY COLLATE NOCASE,
		name  TEXT NOT NULL UNIQUE COLLATE NOCASE,
		alias TEXT NOT NULL DEFAULT '' COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS event (
		id      TEXT PRIMARY KEY COLLATE NOCASE,
		task_id TEXT NOT NULL REFERENCES task(id) COLLATE NOCASE,
		started INTEGER NOT NULL,
		status  TEXT NOT NULL,
		laps    TEXT NOT NULL DEFAULT '[]',
		work    INTEGER NOT NULL DEFAULT 0,
		notes   TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_task_alias ON task(alias);
	CREATE INDEX IF NOT EXISTS idx_event_task_id ON event(task_id);
	CREATE INDEX IF NOT EXISTS idx_event_started ON event(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) initConfig() error {
	if _, err := s.GetConfig(); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	data, err := json.Marshal(focus.DefaultConfig())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO metadata (name, value) VALUES (?, ?)`, configKey, string(data))
	return err
}

// Path 返回数据库文件路径 / Path returns the database file path
func (s *SQLiteStore) Path() string { return s.path }

// Close 关闭数据库连接 / Close the database connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// --- Config ---

func (s *SQLiteStore) GetConfig() (focus.Config, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE name=?`, configKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return focus.Config{}, fmt.Errorf("config: %w", ErrNotFound)
		}
		return focus.Config{}, fmt.Errorf("load config: %w", err)
	}
	var cfg focus.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return focus.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (s *SQLiteStore) UpdateConfig(cfg focus.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	res, err := s.db.Exec(`UPDATE metadata SET value=? WHERE name=?`, string(data), configKey)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return expectAffected(res, "config")
}

// --- Task Operations ---

func (s *SQLiteStore) InsertTask(task focus.Task) error {
	if old, err := s.GetTaskByName(task.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrTaskExists, old)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO task (id, name, alias) VALUES (?, ?, ?)`,
		task.ID, task.Name, task.Alias)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTaskByID(id string) (focus.Task, error) {
	return s.getTask(`SELECT id, name, alias FROM task WHERE id=?`, id)
}

func (s *SQLiteStore) GetTaskByName(name string) (focus.Task, error) {
	return s.getTask(`SELECT id, name, alias FROM task WHERE name=?`, name)
}

func (s *SQLiteStore) GetTaskByAlias(alias string) (focus.Task, error) {
	if strings.TrimSpace(alias) == "" {
		return focus.Task{}, fmt.Errorf("task alias is empty: %w", ErrNotFound)
	}
	return s.getTask(`SELECT id, name, alias FROM task WHERE alias=? ORDER BY name LIMIT 1`, alias)
}

func (s *SQLiteStore) getTask(query, value string) (focus.Task, error) {
	var t focus.Task
	err := s.db.QueryRow(query, strings.TrimSpace(value)).Scan(&t.ID, &t.Name, &t.Alias)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return focus.Task{}, fmt.Errorf("task %s: %w", value, ErrNotFound)
		}
		return focus.Task{}, fmt.Errorf("load task: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTasks() ([]focus.Task, error) {
	rows, err := s.db.Query(`SELECT id, name, alias FROM task ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []focus.Task
	for rows.Next() {
		var t focus.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Alias); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) SetTaskAlias(name, alias string) error {
	res, err := s.db.Exec(`UPDATE task SET alias=? WHERE name=?`, alias, name)
	if err != nil {
		return fmt.Errorf("set task alias: %w", err)
	}
	return expectAffected(res, "task "+name)
}

func (s *SQLiteStore) SetTaskName(oldName, newName string) error {
	if other, err := s.GetTaskByName(newName); err == nil && !strings.EqualFold(oldName, newName) {
		return fmt.Errorf("%w: %s", ErrTaskExists, other)
	}
	res, err := s.db.Exec(`UPDATE task SET name=? WHERE name=?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("set task name: %w", err)
	}
	return expectAffected(res, "task "+oldName)
}

// --- Event Operations ---

const eventColumns = `id, task_id, started, status, laps, work, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*focus.Event, error) {
	var (
		e            focus.Event
		status, laps string
	)
	if err := row.Scan(&e.ID, &e.TaskID, &e.Started, &status, &laps, &e.Work, &e.Notes); err != nil {
		return nil, err
	}
	st, err := focus.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", e.ID, err)
	}
	e.Status = st
	if err := json.Unmarshal([]byte(laps), &e.Laps); err != nil {
		return nil, fmt.Errorf("event %s laps: %w", e.ID, err)
	}
	return &e, nil
}

func encodeLaps(laps focus.Ledger) (string, error) {
	if laps == nil {
		return "[]", nil
	}
	data, err := json.Marshal(laps)
	if err != nil {
		return "", fmt.Errorf("encode laps: %w", err)
	}
	return string(data), nil
}

func (s *SQLiteStore) InsertEvent(e *focus.Event) error {
	laps, err := encodeLaps(e.Laps)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO event (id, task_id, started, status, laps, work, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TaskID, e.Started, e.Status.String(), laps, e.Work, e.Notes)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEventByID(id string) (*focus.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM event WHERE id=?`, strings.TrimSpace(id))
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) GetLastEvent() (*focus.Event, error) {
	events, err := s.GetRecentEvents(1)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("last event: %w", ErrNotFound)
	}
	return events[0], nil
}

func (s *SQLiteStore) GetRecentEvents(n int) ([]*focus.Event, error) {
	if n <= 0 {
		n = 1
	}
	return s.queryEvents(`SELECT `+eventColumns+` FROM event ORDER BY started DESC LIMIT ?`, n)
}

// GetEventsInRange 返回 started ∈ [start, end) 的事件
// GetEventsInRange returns events with start <= started < end, oldest first
func (s *SQLiteStore) GetEventsInRange(start, end int64) ([]*focus.Event, error) {
	return s.queryEvents(`SELECT `+eventColumns+` FROM event
		WHERE started >= ? AND started < ? ORDER BY started`, start, end)
}

func (s *SQLiteStore) queryEvents(query string, args ...any) ([]*focus.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*focus.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEventsInRange 统计 started ∈ [start, end] 的事件数（闭区间）
// CountEventsInRange counts events with start <= started <= end
func (s *SQLiteStore) CountEventsInRange(start, end int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT count(*) FROM event WHERE started >= ? AND started <= ?`, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) UpdateLaps(e *focus.Event) error {
	return updateLaps(s.db, e)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func updateLaps(db execer, e *focus.Event) error {
	laps, err := encodeLaps(e.Laps)
	if err != nil {
		return err
	}
	res, err := db.Exec(`UPDATE event SET status=?, laps=?, work=? WHERE id=?`,
		e.Status.String(), laps, e.Work, e.ID)
	if err != nil {
		return fmt.Errorf("update laps: %w", err)
	}
	return expectAffected(res, "event "+e.ID)
}

func (s *SQLiteStore) SetEventNotes(id, notes string) error {
	res, err := s.db.Exec(`UPDATE event SET notes=? WHERE id=?`, notes, id)
	if err != nil {
		return fmt.Errorf("set event notes: %w", err)
	}
	return expectAffected(res, "event "+id)
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	return deleteEvent(s.db, id)
}

func deleteEvent(db execer, id string) error {
	res, err := db.Exec(`DELETE FROM event WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return expectAffected(res, "event "+id)
}

// ApplyMerge 在一个事务中写入合并结果并删除被吸收的事件
// ApplyMerge writes the merged event and deletes the absorbed ones in one transaction
func (s *SQLiteStore) ApplyMerge(merged *focus.Event, absorbed []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := updateLaps(tx, merged); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE event SET notes=? WHERE id=?`, merged.Notes, merged.ID)
	if err != nil {
		return fmt.Errorf("merge notes: %w", err)
	}
	if err := expectAffected(res, "event "+merged.ID); err != nil {
		return err
	}
	for _, id := range absorbed {
		if err := deleteEvent(tx, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- Helpers ---

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
