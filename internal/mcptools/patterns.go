package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qoder-labs/devmemory/internal/store"
)

// PatternsTool handles the memory_patterns MCP tool.
type PatternsTool struct {
	store store.Store
}

// NewPatternsTool creates a PatternsTool with the given store.
func NewPatternsTool(s store.Store) *PatternsTool {
	return &PatternsTool{store: s}
}

// Definition returns the MCP tool definition for memory_patterns.
func (t *PatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_patterns",
		mcp.WithDescription(
			"List the coding patterns learned from recorded memories, with how often "+
				"each has been seen and how effective it has proven.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Max patterns to show (default: 20)"),
		),
	)
}

// Handle processes the memory_patterns tool call.
func (t *PatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patterns, err := t.store.Patterns(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list patterns: %v", err)), nil
	}

	limit := intArg(req, "limit", 20)
	if limit > 0 && len(patterns) > limit {
		patterns = patterns[:limit]
	}

	if len(patterns) == 0 {
		return mcp.NewToolResultText("No patterns learned yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Learned patterns (%d):\n\n", len(patterns))
	for i, p := range patterns {
		fmt.Fprintf(&b, "[%d] %s\n    %s\n    seen %dx, effectiveness %d/10, last used %s\n",
			i+1, p.PatternKey, p.Description,
			p.Frequency, p.Effectiveness, p.LastUsed.Format("2006-01-02"))
		if len(p.Examples) > 0 {
			fmt.Fprintf(&b, "    latest example: %s\n", truncate(p.Examples[len(p.Examples)-1], 120))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
