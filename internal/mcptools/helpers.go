// Package mcptools provides MCP tool handlers over the memory store.
//
// Each tool follows the same pattern:
// - A struct with the store injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// truncate shortens s to at most max runes, appending an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
