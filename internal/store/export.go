package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ExportVersion identifies the dump format.
const ExportVersion = 1

// Export dumps all entries and patterns. Entries come out in insertion order,
// patterns in key order, so dumps of the same state are comparable.
func (s *SQLiteStore) Export(ctx context.Context) (*ExportData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.queryEntries(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY timestamp, id")
	if err != nil {
		return nil, err
	}
	patterns, err := s.queryPatterns(ctx,
		"SELECT "+patternColumns+" FROM patterns ORDER BY pattern_key")
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Entries:    entries,
		Patterns:   patterns,
	}, nil
}

// Import restores a dump produced by Export, preserving ids and timestamps.
// No re-extraction runs: patterns come back exactly as dumped. Rows whose id
// or pattern key already exists are skipped and counted.
func (s *SQLiteStore) Import(ctx context.Context, data *ExportData) (*ImportResult, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil import data", ErrInvalidArgument)
	}
	if data.Version != ExportVersion {
		return nil, fmt.Errorf("%w: unsupported export version %d", ErrInvalidArgument, data.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &ImportResult{}

	for _, e := range data.Entries {
		var tagsJSON *string
		if len(e.Tags) > 0 {
			b, _ := json.Marshal(e.Tags)
			t := string(b)
			tagsJSON = &t
		}
		id := e.ID
		if id == "" {
			id = s.newID()
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entries (id, kind, content, file_path, language, workspace, importance, timestamp, tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, string(e.Kind), e.Content,
			nullable(e.Context.FilePath), nullable(e.Context.Language), nullable(e.Context.WorkspaceFolder),
			e.Importance, e.Context.Timestamp.UTC().Format(timeFormat), tagsJSON)
		if err != nil {
			return nil, fmt.Errorf("import entry %s: %w", id, err)
		}
		if n, _ := r.RowsAffected(); n == 0 {
			res.SkippedEntries++
		} else {
			res.Entries++
		}
	}

	for _, p := range data.Patterns {
		var examplesJSON *string
		if len(p.Examples) > 0 {
			b, _ := json.Marshal(p.Examples)
			e := string(b)
			examplesJSON = &e
		}
		id := p.ID
		if id == "" {
			id = s.newID()
		}
		r, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO patterns (id, pattern_key, description, examples, frequency, last_used, effectiveness)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.PatternKey, p.Description, examplesJSON,
			p.Frequency, p.LastUsed.UTC().Format(timeFormat), p.Effectiveness)
		if err != nil {
			return nil, fmt.Errorf("import pattern %s: %w", p.PatternKey, err)
		}
		if n, _ := r.RowsAffected(); n == 0 {
			res.SkippedPatterns++
		} else {
			res.Patterns++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}
