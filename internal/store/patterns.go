package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/pattern"
)

// maxExampleRunes bounds the content snippet stored as a pattern example.
const maxExampleRunes = 200

// patternColumns is the SELECT list matching scanPattern.
const patternColumns = "id, pattern_key, description, examples, frequency, last_used, effectiveness"

// upsertPattern records one observation. Caller holds the write lock. An
// existing key bumps frequency and last_used and appends an example snippet;
// the description and effectiveness of an existing pattern are never touched.
func (s *SQLiteStore) upsertPattern(ctx context.Context, o pattern.Observation, content string, now time.Time) error {
	snippet := exampleSnippet(content)

	row := s.db.QueryRowContext(ctx,
		"SELECT "+patternColumns+" FROM patterns WHERE pattern_key = ?", o.Key)
	existing, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		examples, _ := json.Marshal([]string{snippet})
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO patterns (id, pattern_key, description, examples, frequency, last_used, effectiveness)
			 VALUES (?, ?, ?, ?, 1, ?, ?)`,
			s.newID(), o.Key, o.Description, string(examples), now.Format(timeFormat), model.DefaultEffectiveness)
		if err != nil {
			return fmt.Errorf("insert pattern: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load pattern: %w", err)
	}

	examples := appendExample(existing.Examples, snippet)
	b, _ := json.Marshal(examples)
	_, err = s.db.ExecContext(ctx,
		`UPDATE patterns SET frequency = frequency + 1, last_used = ?, examples = ? WHERE pattern_key = ?`,
		now.Format(timeFormat), string(b), o.Key)
	if err != nil {
		return fmt.Errorf("update pattern: %w", err)
	}
	return nil
}

// Patterns returns all learned patterns, most recently used first.
func (s *SQLiteStore) Patterns(ctx context.Context) ([]model.LearningPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPatterns(ctx,
		"SELECT "+patternColumns+" FROM patterns ORDER BY last_used DESC, id")
}

func (s *SQLiteStore) queryPatterns(ctx context.Context, query string, args ...interface{}) ([]model.LearningPattern, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()

	patterns := []model.LearningPattern{}
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			slog.Warn("skipping malformed pattern row", "error", err)
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func scanPattern(row scanner) (model.LearningPattern, error) {
	var p model.LearningPattern
	var examplesJSON sql.NullString
	var lastUsed string

	err := row.Scan(&p.ID, &p.PatternKey, &p.Description, &examplesJSON,
		&p.Frequency, &lastUsed, &p.Effectiveness)
	if err != nil {
		return p, err
	}

	p.LastUsed = parseTime(lastUsed)
	if examplesJSON.Valid && examplesJSON.String != "" {
		if err := json.Unmarshal([]byte(examplesJSON.String), &p.Examples); err != nil {
			slog.Warn("malformed examples, dropping", "key", p.PatternKey, "error", err)
			p.Examples = nil
		}
	}

	return p, nil
}

// appendExample adds a snippet at the end, evicting the oldest entries beyond
// the cap.
func appendExample(examples []string, snippet string) []string {
	examples = append(examples, snippet)
	if len(examples) > model.MaxPatternExamples {
		examples = examples[len(examples)-model.MaxPatternExamples:]
	}
	return examples
}

func exampleSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= maxExampleRunes {
		return content
	}
	return string(runes[:maxExampleRunes])
}
