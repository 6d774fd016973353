// Package store provides the memory storage interface and its SQLite and
// Postgres implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qoder-labs/devmemory/internal/model"
)

// ErrInvalidArgument marks rejected input: empty content, an out-of-range
// importance, an unknown kind. Matched with errors.Is. A rejected call leaves
// stored state untouched.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultQueryLimit caps query and search results when no limit is given.
const DefaultQueryLimit = 20

// InsertParams holds parameters for recording a memory entry.
type InsertParams struct {
	Kind       model.Kind // defaults to interaction
	Content    string
	FilePath   string
	Language   string
	Workspace  string
	Importance int // 0 means default (5); 1..10 otherwise
	Tags       []string
}

// QueryParams holds equality filters for querying entries. All set fields
// must match (AND). Kinds matches any of the listed kinds.
type QueryParams struct {
	Language string
	FilePath string
	Kinds    []model.Kind
	Limit    int // 0 means DefaultQueryLimit
}

// SearchParams holds parameters for substring search over entry content.
type SearchParams struct {
	Query    string
	Language string
	Limit    int
}

// SuggestParams describes the context suggestions are requested for.
type SuggestParams struct {
	FilePath string
	Language string
	Query    string // reserved; not used by ranking
}

// WorkspaceInfo summarizes one workspace folder seen in the store.
type WorkspaceInfo struct {
	Workspace string    `json:"workspace"`
	Entries   int       `json:"entries"`
	LastEntry time.Time `json:"last_entry"`
}

// Stats summarizes store contents.
type Stats struct {
	TotalEntries  int            `json:"total_entries"`
	ByKind        map[string]int `json:"by_kind"`
	TotalPatterns int            `json:"total_patterns"`
	TaggedEntries int            `json:"tagged_entries"`
	OldestEntry   *time.Time     `json:"oldest_entry,omitempty"`
	NewestEntry   *time.Time     `json:"newest_entry,omitempty"`
}

// ExportData is the versioned dump format produced by Export and consumed by
// Import.
type ExportData struct {
	Version    int                     `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Entries    []model.MemoryEntry     `json:"entries"`
	Patterns   []model.LearningPattern `json:"patterns"`
}

// ImportResult reports what an Import call did.
type ImportResult struct {
	Entries         int `json:"entries"`
	Patterns        int `json:"patterns"`
	SkippedEntries  int `json:"skipped_entries"`
	SkippedPatterns int `json:"skipped_patterns"`
}

// Store defines the memory storage interface. Implementations serialize
// mutations internally; reads may run concurrently.
type Store interface {
	// Insert validates and durably records an entry, then updates derived
	// patterns best-effort. Returns the stored entry.
	Insert(ctx context.Context, p InsertParams) (*model.MemoryEntry, error)

	// Query returns entries matching all set filters, ordered by importance
	// then recency. An empty result is an empty slice, not an error.
	Query(ctx context.Context, p QueryParams) ([]model.MemoryEntry, error)

	// Recent returns the newest entries regardless of importance.
	Recent(ctx context.Context, limit int) ([]model.MemoryEntry, error)

	// Search returns entries whose content contains the query text.
	Search(ctx context.Context, p SearchParams) ([]model.MemoryEntry, error)

	// Suggestions returns ranked suggestion strings for the given context.
	Suggestions(ctx context.Context, p SuggestParams) ([]string, error)

	// Patterns returns all learned patterns, most recently used first.
	Patterns(ctx context.Context) ([]model.LearningPattern, error)

	// Workspaces returns the distinct workspace folders with entry counts.
	Workspaces(ctx context.Context) ([]WorkspaceInfo, error)

	// Stats returns store statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Export dumps all entries and patterns.
	Export(ctx context.Context) (*ExportData, error)

	// Import restores a dump, preserving ids and timestamps. Rows whose id
	// already exists are skipped.
	Import(ctx context.Context, data *ExportData) (*ImportResult, error)

	// Close releases the storage handle. Safe to call more than once.
	Close() error
}

// validateInsert normalizes and checks insert parameters. Shared by both
// backends so rejection semantics cannot drift.
func validateInsert(p *InsertParams) error {
	if p.Kind == "" {
		p.Kind = model.KindInteraction
	}
	if !model.ValidKinds[p.Kind] {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, p.Kind)
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrInvalidArgument)
	}
	if p.Importance == 0 {
		p.Importance = model.DefaultImportance
	}
	if p.Importance < model.MinImportance || p.Importance > model.MaxImportance {
		return fmt.Errorf("%w: importance must be %d..%d, got %d",
			ErrInvalidArgument, model.MinImportance, model.MaxImportance, p.Importance)
	}
	return nil
}
