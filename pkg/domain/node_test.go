package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeKind(t *testing.T) {
	assert.Equal(t, KindPrompt, Node{Type: "prompt"}.Kind())
	assert.Equal(t, KindGitCommit, Node{Type: "gitCommit"}.Kind())

	// Unknown types degrade to the generic fallback, never an error.
	assert.Equal(t, KindUnknown, Node{Type: "hologram"}.Kind())
	assert.Equal(t, KindUnknown, Node{}.Kind())
}

func TestKindsIsClosedRegistry(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 15)
	for _, k := range kinds {
		assert.Equal(t, k, Node{Type: string(k)}.Kind())
	}
}

func TestNodeLabel(t *testing.T) {
	n := Node{Type: "prompt", Data: map[string]any{"label": "Ask the user"}}
	assert.Equal(t, "Ask the user", n.Label())

	// Missing or blank labels fall back to the type.
	assert.Equal(t, "prompt", Node{Type: "prompt"}.Label())
	assert.Equal(t, "prompt", Node{Type: "prompt", Data: map[string]any{"label": ""}}.Label())
}

func TestDecodePayload(t *testing.T) {
	n := Node{
		Type: "prompt",
		Data: map[string]any{
			"label":  "Summarize",
			"prompt": "Summarize {{topic}}",
			"variables": []any{
				map[string]any{"name": "topic", "defaultValue": "the diff"},
			},
		},
	}

	p, ok := DecodePayload[PromptData](n)
	assert.True(t, ok)
	assert.Equal(t, "Summarize {{topic}}", p.Prompt)
	if assert.Len(t, p.Variables, 1) {
		assert.Equal(t, "topic", p.Variables[0].Name)
		assert.Equal(t, "the diff", p.Variables[0].DefaultValue)
	}

	// A node of the wrong shape decodes to zero values, not an error.
	q, _ := DecodePayload[MCPData](Node{Type: "mcp", Data: map[string]any{"mcpServer": 5}})
	assert.Equal(t, "5", q.Server) // weakly typed input
	_, ok = DecodePayload[MCPData](Node{Type: "mcp"})
	assert.False(t, ok)
}

func TestNodeParameters(t *testing.T) {
	n := Node{Data: map[string]any{"parameters": map[string]any{"depth": 3}}}
	assert.Equal(t, map[string]any{"depth": 3}, n.Parameters())
	assert.Nil(t, Node{}.Parameters())
	assert.Nil(t, Node{Data: map[string]any{"parameters": "nope"}}.Parameters())
}
