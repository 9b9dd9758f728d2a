package export

import (
	"fmt"
	"strings"

	"github.com/lxyhes/flowforge/pkg/domain"
)

const instructionsHeader = "Execute the following workflow:"

// agentInstructions renders the verbose prose form: one numbered header
// per step followed by kind-specific detail lines, blocks separated by
// a blank line.
func agentInstructions(steps []domain.Node) string {
	blocks := make([]string, 0, len(steps)+1)
	blocks = append(blocks, instructionsHeader)

	for i, n := range steps {
		var b strings.Builder
		fmt.Fprintf(&b, "%d. %s (%s)", i+1, n.Label(), n.Type)
		for _, detail := range detailLines(n) {
			b.WriteString("\n   ")
			b.WriteString(detail)
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

// commandInstructions renders the terse prose form: numbered labels
// only, one per block.
func commandInstructions(steps []domain.Node) string {
	blocks := make([]string, 0, len(steps)+1)
	blocks = append(blocks, instructionsHeader)
	for i, n := range steps {
		blocks = append(blocks, fmt.Sprintf("%d. %s", i+1, n.Label()))
	}
	return strings.Join(blocks, "\n\n")
}

// detailLines returns the kind-specific instruction details for a step.
// Kinds without a detail form contribute nothing; the step keeps its
// header line only.
func detailLines(n domain.Node) []string {
	switch n.Kind() {
	case domain.KindPrompt:
		p, _ := domain.DecodePayload[domain.PromptData](n)
		return []string{"Prompt: " + p.Prompt}
	case domain.KindCondition:
		c, _ := domain.DecodePayload[domain.ConditionData](n)
		return []string{"Condition: " + c.Condition}
	case domain.KindAction:
		a, _ := domain.DecodePayload[domain.ActionData](n)
		return []string{"Action: " + a.Action}
	case domain.KindAskUser:
		return []string{"Ask user for confirmation"}
	case domain.KindMCP:
		m, _ := domain.DecodePayload[domain.MCPData](n)
		return []string{"MCP Tool: " + m.Tool}
	case domain.KindSkill:
		s, _ := domain.DecodePayload[domain.SkillData](n)
		return []string{"Skill: " + s.Skill}
	default:
		return nil
	}
}
