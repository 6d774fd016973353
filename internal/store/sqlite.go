package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/pattern"
)

// timeFormat is RFC3339 with a fixed-width fraction so that lexicographic
// order of stored timestamps matches time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// entryColumns is the SELECT list matching scanEntry.
const entryColumns = "id, kind, content, file_path, language, workspace, importance, timestamp, tags"

// SQLiteStore implements Store using SQLite. The write lock serializes
// mutations end to end, including derived pattern updates; reads run
// concurrently under the read lock.
type SQLiteStore struct {
	db      *sql.DB
	mu      sync.RWMutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Debug("store opened", "path", dbPath)
	return s, nil
}

// newID must be called with the write lock held; the entropy source is not
// goroutine-safe.
func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		content    TEXT NOT NULL,
		file_path  TEXT,
		language   TEXT,
		workspace  TEXT,
		importance INTEGER NOT NULL DEFAULT 5,
		timestamp  TEXT NOT NULL,
		tags       TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);
	CREATE INDEX IF NOT EXISTS idx_entries_language ON entries(language);
	CREATE INDEX IF NOT EXISTS idx_entries_file ON entries(file_path);
	CREATE INDEX IF NOT EXISTS idx_entries_rank ON entries(importance DESC, timestamp DESC);

	CREATE TABLE IF NOT EXISTS patterns (
		id            TEXT PRIMARY KEY,
		pattern_key   TEXT NOT NULL UNIQUE,
		description   TEXT NOT NULL,
		examples      TEXT,
		frequency     INTEGER NOT NULL DEFAULT 1,
		last_used     TEXT NOT NULL,
		effectiveness INTEGER NOT NULL DEFAULT 5
	);
	CREATE INDEX IF NOT EXISTS idx_patterns_used ON patterns(last_used DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, p InsertParams) (*model.MemoryEntry, error) {
	if err := validateInsert(&p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	id := s.newID()

	var tagsJSON *string
	if len(p.Tags) > 0 {
		b, _ := json.Marshal(p.Tags)
		t := string(b)
		tagsJSON = &t
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, kind, content, file_path, language, workspace, importance, timestamp, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(p.Kind), p.Content, nullable(p.FilePath), nullable(p.Language), nullable(p.Workspace),
		p.Importance, now.Format(timeFormat), tagsJSON)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	// The entry is durable from here; pattern updates are best-effort and
	// must never fail the insert.
	for _, o := range pattern.Extract(p.Content, p.Kind, p.Language) {
		if err := s.upsertPattern(ctx, o, p.Content, now); err != nil {
			slog.Warn("pattern update failed", "key", o.Key, "error", err)
		}
	}

	return &model.MemoryEntry{
		ID:      id,
		Kind:    p.Kind,
		Content: p.Content,
		Context: model.EntryContext{
			FilePath:        p.FilePath,
			Language:        p.Language,
			Timestamp:       now,
			WorkspaceFolder: p.Workspace,
		},
		Importance: p.Importance,
		Tags:       p.Tags,
	}, nil
}

func (s *SQLiteStore) Query(ctx context.Context, p QueryParams) ([]model.MemoryEntry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var where []string
	var args []interface{}

	if p.Language != "" {
		where = append(where, "language = ?")
		args = append(args, p.Language)
	}
	if p.FilePath != "" {
		where = append(where, "file_path = ?")
		args = append(args, p.FilePath)
	}
	if len(p.Kinds) > 0 {
		ph := make([]string, len(p.Kinds))
		for i, k := range p.Kinds {
			ph[i] = "?"
			args = append(args, string(k))
		}
		where = append(where, "kind IN ("+strings.Join(ph, ", ")+")")
	}

	query := "SELECT " + entryColumns + " FROM entries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY importance DESC, timestamp DESC LIMIT ?"
	args = append(args, limit)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryEntries(ctx, query, args...)
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.MemoryEntry, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY timestamp DESC LIMIT ?", limit)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryEntries runs a SELECT over entryColumns. Rows that fail to scan are
// skipped with a warning so one bad row cannot poison a whole query.
func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...interface{}) ([]model.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []model.MemoryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			slog.Warn("skipping malformed entry row", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.MemoryEntry, error) {
	var e model.MemoryEntry
	var kind, ts string
	var filePath, language, workspace, tagsJSON sql.NullString

	err := row.Scan(&e.ID, &kind, &e.Content, &filePath, &language, &workspace,
		&e.Importance, &ts, &tagsJSON)
	if err != nil {
		return e, err
	}

	e.Kind = model.Kind(kind)
	e.Context.Timestamp = parseTime(ts)
	if filePath.Valid {
		e.Context.FilePath = filePath.String
	}
	if language.Valid {
		e.Context.Language = language.String
	}
	if workspace.Valid {
		e.Context.WorkspaceFolder = workspace.String
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &e.Tags); err != nil {
			slog.Warn("malformed tags, dropping", "id", e.ID, "error", err)
			e.Tags = nil
		}
	}

	return e, nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
