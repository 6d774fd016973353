package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/store"
)

// RecordTool handles the memory_record MCP tool.
type RecordTool struct {
	store store.Store
}

// NewRecordTool creates a RecordTool with the given store.
func NewRecordTool(s store.Store) *RecordTool {
	return &RecordTool{store: s}
}

// Definition returns the MCP tool definition for memory_record.
func (t *RecordTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_record",
		mcp.WithDescription(
			"Record a development memory: an interaction, mistake, pattern, preference, or success. "+
				"Call this after notable events so future sessions can learn from them.",
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("What happened, in plain text"),
		),
		mcp.WithString("kind",
			mcp.Description("Category: interaction, mistake, pattern, preference, success (default: interaction)"),
		),
		mcp.WithString("file_path",
			mcp.Description("Workspace-relative file the memory is about"),
		),
		mcp.WithString("language",
			mcp.Description("Programming language, e.g. typescript, go"),
		),
		mcp.WithString("workspace",
			mcp.Description("Workspace folder name"),
		),
		mcp.WithNumber("importance",
			mcp.Description("Importance from 1 to 10 (default: 5)"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

// Handle processes the memory_record tool call.
func (t *RecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	var tags []string
	if raw := req.GetString("tags", ""); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	entry, err := t.store.Insert(ctx, store.InsertParams{
		Kind:       model.Kind(req.GetString("kind", "")),
		Content:    content,
		FilePath:   req.GetString("file_path", ""),
		Language:   req.GetString("language", ""),
		Workspace:  req.GetString("workspace", ""),
		Importance: intArg(req, "importance", 0),
		Tags:       tags,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record memory: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Memory recorded: %s (%s, importance %d)", entry.ID, entry.Kind, entry.Importance,
	)), nil
}
