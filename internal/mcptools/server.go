package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/qoder-labs/devmemory/internal/store"
)

// NewServer creates an MCP server with all memory tools registered against
// the given store. The caller owns the store and closes it on shutdown.
func NewServer(st store.Store, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"devmemory",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	record := NewRecordTool(st)
	s.AddTool(record.Definition(), record.Handle)

	query := NewQueryTool(st)
	s.AddTool(query.Definition(), query.Handle)

	suggest := NewSuggestTool(st)
	s.AddTool(suggest.Definition(), suggest.Handle)

	patterns := NewPatternsTool(st)
	s.AddTool(patterns.Definition(), patterns.Handle)

	stats := NewStatsTool(st)
	s.AddTool(stats.Definition(), stats.Handle)

	return s
}

// serverInstructions tells the client model how to use the memory tools.
func serverInstructions() string {
	return `You have access to devmemory, a persistent development memory.

## When to record (memory_record)
Call memory_record PROACTIVELY after notable events, without being asked:
- The user corrects a mistake you made (kind: mistake)
- The user states a preference about style or tooling (kind: preference)
- A reusable coding habit shows up (kind: pattern)
- An approach works out well (kind: success)
Include file_path and language whenever the event concerns a specific file.

## When to query (memory_query, memory_suggest)
- At session start, call memory_suggest with the current file and language
  to surface learned patterns and past mistakes.
- Before editing a file you have history with, call memory_query with its
  file_path to recover prior context.

## Housekeeping
- memory_patterns lists what has been learned so far.
- memory_stats shows how much is stored.
Memory is append-only: recording never overwrites past entries.`
}
