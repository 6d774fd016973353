package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/qoder-labs/devmemory/internal/model"
)

// Search finds entries whose content contains the query substring,
// case-insensitively. Results follow the same ordering and cap rules as
// Query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.MemoryEntry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	like := "%" + strings.ToLower(p.Query) + "%"
	where := []string{"LOWER(content) LIKE ?"}
	args := []interface{}{like}

	if p.Language != "" {
		where = append(where, "language = ?")
		args = append(args, p.Language)
	}

	query := "SELECT " + entryColumns + " FROM entries WHERE " + strings.Join(where, " AND ") +
		" ORDER BY importance DESC, timestamp DESC LIMIT ?"
	args = append(args, limit)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryEntries(ctx, query, args...)
}

// Workspaces lists the distinct workspace folders seen in the store with
// entry counts, busiest first.
func (s *SQLiteStore) Workspaces(ctx context.Context) ([]WorkspaceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT workspace, COUNT(*) AS cnt, MAX(timestamp) AS last
		FROM entries WHERE workspace IS NOT NULL AND workspace != ''
		GROUP BY workspace ORDER BY cnt DESC, workspace`)
	if err != nil {
		return nil, fmt.Errorf("query workspaces: %w", err)
	}
	defer rows.Close()

	infos := []WorkspaceInfo{}
	for rows.Next() {
		var w WorkspaceInfo
		var last string
		if err := rows.Scan(&w.Workspace, &w.Entries, &last); err != nil {
			return nil, err
		}
		w.LastEntry = parseTime(last)
		infos = append(infos, w)
	}
	return infos, rows.Err()
}
