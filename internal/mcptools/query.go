package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/store"
)

// QueryTool handles the memory_query MCP tool.
type QueryTool struct {
	store store.Store
}

// NewQueryTool creates a QueryTool with the given store.
func NewQueryTool(s store.Store) *QueryTool {
	return &QueryTool{store: s}
}

// Definition returns the MCP tool definition for memory_query.
func (t *QueryTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_query",
		mcp.WithDescription(
			"Query recorded memories by language, file path, or kind. "+
				"Results come back most important first, then most recent. "+
				"Use this at session start to recover context about the current file or project.",
		),
		mcp.WithString("language",
			mcp.Description("Filter by programming language"),
		),
		mcp.WithString("file_path",
			mcp.Description("Filter by file path"),
		),
		mcp.WithString("kinds",
			mcp.Description("Comma-separated kinds to include: interaction, mistake, pattern, preference, success"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 20)"),
		),
	)
}

// Handle processes the memory_query tool call.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var kinds []model.Kind
	if raw := req.GetString("kinds", ""); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kinds = append(kinds, model.Kind(k))
			}
		}
	}

	entries, err := t.store.Query(ctx, store.QueryParams{
		Language: req.GetString("language", ""),
		FilePath: req.GetString("file_path", ""),
		Kinds:    kinds,
		Limit:    intArg(req, "limit", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No memories found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d memories:\n\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&b, "[%d] %s (%s, importance %d)\n    %s\n",
			i+1, e.ID, e.Kind, e.Importance, truncate(e.Content, 300))

		var details []string
		if e.Context.FilePath != "" {
			details = append(details, e.Context.FilePath)
		}
		if e.Context.Language != "" {
			details = append(details, e.Context.Language)
		}
		if e.Context.WorkspaceFolder != "" {
			details = append(details, "workspace: "+e.Context.WorkspaceFolder)
		}
		if len(e.Tags) > 0 {
			details = append(details, "tags: "+strings.Join(e.Tags, ", "))
		}
		if len(details) > 0 {
			fmt.Fprintf(&b, "    %s\n", strings.Join(details, " | "))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
