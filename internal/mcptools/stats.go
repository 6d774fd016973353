package mcptools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qoder-labs/devmemory/internal/store"
)

// StatsTool handles the memory_stats MCP tool.
type StatsTool struct {
	store store.Store
}

// NewStatsTool creates a StatsTool with the given store.
func NewStatsTool(s store.Store) *StatsTool {
	return &StatsTool{store: s}
}

// Definition returns the MCP tool definition for memory_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_stats",
		mcp.WithDescription(
			"Show memory statistics: total entries, counts per kind, and learned patterns.",
		),
	)
}

// Handle processes the memory_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.store.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Memory Statistics\n\n")
	fmt.Fprintf(&sb, "- **Entries**: %d\n", stats.TotalEntries)
	fmt.Fprintf(&sb, "- **Patterns**: %d\n", stats.TotalPatterns)
	fmt.Fprintf(&sb, "- **Tagged entries**: %d\n", stats.TaggedEntries)

	if len(stats.ByKind) > 0 {
		kinds := make([]string, 0, len(stats.ByKind))
		for k := range stats.ByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		sb.WriteString("- **By kind**:\n")
		for _, k := range kinds {
			fmt.Fprintf(&sb, "  - %s: %d\n", k, stats.ByKind[k])
		}
	}

	if stats.OldestEntry != nil && stats.NewestEntry != nil {
		fmt.Fprintf(&sb, "- **Range**: %s to %s\n",
			stats.OldestEntry.Format(time.RFC3339), stats.NewestEntry.Format(time.RFC3339))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
