package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gcloud-datastore/implicitenv/internal/platform"
)

// toolError is the JSON body of a failed environment tool call.
type toolError struct {
	Code       string `json:"code"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// convertError reports err to the caller of environment_set_dataset and
// friends. A PlatformError keeps its code, so an agent can tell a missing
// dataset from a bad argument; anything else is sent as plain text.
func convertError(err error) *mcp.CallToolResult {
	var pe *platform.PlatformError
	if !errors.As(err, &pe) {
		return textResult(err.Error(), true)
	}
	b, merr := json.Marshal(toolError{Code: pe.Code, Error: pe.Message, Suggestion: pe.Suggestion})
	if merr != nil {
		return textResult(fmt.Sprintf("marshal error: %v", merr), true)
	}
	return textResult(string(b), true)
}

// jsonResult encodes a DetectResult or ShowResult as the tool's text content.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return textResult(fmt.Sprintf("marshal error: %v", err), true)
	}
	return textResult(string(b), false)
}

func boolPtr(b bool) *bool { return &b }
