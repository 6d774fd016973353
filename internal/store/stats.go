package store

import (
	"context"
)

// Stats returns store statistics. Counts are best-effort reads; a missing
// table count shows as zero rather than failing the whole call.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &Stats{ByKind: map[string]int{}}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&st.TotalEntries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patterns`).Scan(&st.TotalPatterns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE tags IS NOT NULL AND tags != '' AND tags != '[]'`).Scan(&st.TaggedEntries)

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM entries GROUP BY kind ORDER BY kind`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		rows.Scan(&kind, &count)
		st.ByKind[kind] = count
	}

	var oldest, newest string
	if err := s.db.QueryRowContext(ctx,
		`SELECT MIN(timestamp), MAX(timestamp) FROM entries`).Scan(&oldest, &newest); err == nil {
		if t := parseTime(oldest); !t.IsZero() {
			st.OldestEntry = &t
		}
		if t := parseTime(newest); !t.IsZero() {
			st.NewestEntry = &t
		}
	}

	return st, nil
}
