package export

import (
	"testing"

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewSteps() []domain.Node {
	return []domain.Node{
		{ID: "n1", Type: "start", Data: map[string]any{"label": "开始"}},
		{ID: "n2", Type: "prompt", Data: map[string]any{"label": "Ask", "prompt": "Review the diff"}},
		{ID: "n3", Type: "end", Data: map[string]any{"label": "结束"}},
	}
}

func TestToCommandConfigInstructions(t *testing.T) {
	cfg := ToCommandConfig("My Flow", "reviews code", reviewSteps())

	assert.Equal(t, "my-flow", cfg.Name)
	assert.Equal(t, "Execute the following workflow:\n\n1. 开始\n\n2. Ask\n\n3. 结束", cfg.Instructions)
	assert.Empty(t, cfg.Tools)
	assert.Empty(t, cfg.Parameters)
}

func TestToAgentConfig(t *testing.T) {
	cfg := ToAgentConfig("My Flow", "reviews code", reviewSteps())

	assert.Equal(t, "My Flow", cfg.Name)
	assert.Equal(t, AgentVersion, cfg.Version)
	require.Len(t, cfg.Steps, 3)
	assert.Equal(t, "n2", cfg.Steps[1].ID)
	assert.Equal(t, "prompt", cfg.Steps[1].Type)
	assert.Equal(t, "Ask", cfg.Steps[1].Description)

	assert.Equal(t,
		"Execute the following workflow:\n\n"+
			"1. 开始 (start)\n\n"+
			"2. Ask (prompt)\n   Prompt: Review the diff\n\n"+
			"3. 结束 (end)",
		cfg.Instructions)
}

func TestAgentInstructionsDetailLines(t *testing.T) {
	steps := []domain.Node{
		{ID: "c", Type: "condition", Data: map[string]any{"label": "Gate", "condition": "tests pass"}},
		{ID: "a", Type: "action", Data: map[string]any{"label": "Fix", "action": "apply patch"}},
		{ID: "u", Type: "askUser", Data: map[string]any{"label": "Confirm"}},
		{ID: "m", Type: "mcp", Data: map[string]any{"label": "Search", "mcpTool": "web_search"}},
		{ID: "k", Type: "skill", Data: map[string]any{"label": "Lint", "skill": "golangci"}},
		{ID: "s", Type: "shell", Data: map[string]any{"label": "Build", "command": "make"}},
	}

	got := agentInstructions(steps)
	assert.Contains(t, got, "1. Gate (condition)\n   Condition: tests pass")
	assert.Contains(t, got, "2. Fix (action)\n   Action: apply patch")
	assert.Contains(t, got, "3. Confirm (askUser)\n   Ask user for confirmation")
	assert.Contains(t, got, "4. Search (mcp)\n   MCP Tool: web_search")
	assert.Contains(t, got, "5. Lint (skill)\n   Skill: golangci")
	// Kinds without a detail form get the header line only.
	assert.Contains(t, got, "6. Build (shell)")
	assert.NotContains(t, got, "6. Build (shell)\n   ")
}
