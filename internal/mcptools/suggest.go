package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qoder-labs/devmemory/internal/store"
)

// SuggestTool handles the memory_suggest MCP tool.
type SuggestTool struct {
	store store.Store
}

// NewSuggestTool creates a SuggestTool with the given store.
func NewSuggestTool(s store.Store) *SuggestTool {
	return &SuggestTool{store: s}
}

// Definition returns the MCP tool definition for memory_suggest.
func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_suggest",
		mcp.WithDescription(
			"Get suggestions relevant to the current editing context, drawn from learned "+
				"coding patterns and past mistakes. Call this when starting work on a file.",
		),
		mcp.WithString("file_path",
			mcp.Description("File currently being edited"),
		),
		mcp.WithString("language",
			mcp.Description("Language of the current file"),
		),
	)
}

// Handle processes the memory_suggest tool call.
func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	suggestions, err := t.store.Suggestions(ctx, store.SuggestParams{
		FilePath: req.GetString("file_path", ""),
		Language: req.GetString("language", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build suggestions: %v", err)), nil
	}

	if len(suggestions) == 0 {
		return mcp.NewToolResultText("No suggestions for this context yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Suggestions (%d):\n\n", len(suggestions))
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	return mcp.NewToolResultText(b.String()), nil
}
