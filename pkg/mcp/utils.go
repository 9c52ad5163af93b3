package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg returns a trimmed string argument, or "" when absent or not a string.
func stringArg(request mcp.CallToolRequest, name string) string {
	v, ok := request.Params.Arguments[name].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// intArg returns a numeric argument. JSON numbers arrive as float64.
func intArg(request mcp.CallToolRequest, name string, fallback int) int {
	switch v := request.Params.Arguments[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// jsonResult serializes v as the tool's text result.
func jsonResult(what string, v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize %s to JSON: %v", what, err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
