package export

import (
	"testing"

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTools(t *testing.T) {
	nodes := []domain.Node{
		{ID: "1", Type: "mcp", Data: map[string]any{"mcpServer": "files", "mcpTool": "read"}},
		{ID: "2", Type: "mcp", Data: map[string]any{"mcpTool": "search"}}, // no server
		{ID: "3", Type: "mcp", Data: map[string]any{"mcpServer": "files"}}, // no tool: skipped
		{ID: "4", Type: "skill", Data: map[string]any{"skill": "review"}},
		{ID: "5", Type: "skill", Data: map[string]any{}}, // empty skill: skipped
		{ID: "6", Type: "prompt", Data: map[string]any{"prompt": "hi"}},
		{ID: "7", Type: "mcp", Data: map[string]any{"mcpServer": "files", "mcpTool": "read"}}, // duplicate kept
	}

	tools := ExtractTools(nodes)
	require.Len(t, tools, 4)
	assert.Equal(t, Tool{Type: "mcp", Name: "read", Server: "files"}, tools[0])
	assert.Equal(t, Tool{Type: "mcp", Name: "search", Server: "default"}, tools[1])
	assert.Equal(t, Tool{Type: "skill", Name: "review"}, tools[2])
	assert.Equal(t, tools[0], tools[3], "duplicates are not collapsed")
}

func TestExtractParametersFirstWriterWins(t *testing.T) {
	nodes := []domain.Node{
		{ID: "1", Type: "prompt", Data: map[string]any{
			"label":      "Plan",
			"parameters": map[string]any{"depth": float64(3), "dry_run": true},
		}},
		{ID: "2", Type: "action", Data: map[string]any{
			"parameters": map[string]any{"depth": float64(9), "target": "main"},
		}},
	}

	params := ExtractParameters(nodes)
	require.Len(t, params, 3)

	assert.Equal(t, Parameter{Name: "depth", Type: "number", Default: float64(3), Description: "Parameter from Plan"}, params[0])
	assert.Equal(t, Parameter{Name: "dry_run", Type: "boolean", Default: true, Description: "Parameter from Plan"}, params[1])
	// The second node's label is blank, so its kind names it.
	assert.Equal(t, Parameter{Name: "target", Type: "string", Default: "main", Description: "Parameter from action"}, params[2])
}

func TestExtractIdempotence(t *testing.T) {
	nodes := []domain.Node{
		{ID: "1", Type: "mcp", Data: map[string]any{"mcpTool": "read"}},
		{ID: "2", Type: "prompt", Data: map[string]any{"parameters": map[string]any{"a": 1, "b": "x", "c": nil}}},
	}
	assert.Equal(t, ExtractTools(nodes), ExtractTools(nodes))
	assert.Equal(t, ExtractParameters(nodes), ExtractParameters(nodes))
	// Untyped defaults report as objects.
	assert.Equal(t, "object", ExtractParameters(nodes)[2].Type)
}
