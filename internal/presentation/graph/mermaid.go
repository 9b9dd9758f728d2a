package graph

import (
	"fmt"
	"strings"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a workflow.
// It applies semantic styling:
// - Start/End: ((Circle))
// - Condition: {Diamond}
// - MCP/Skill/SubAgent: [[Subroutine]]
// - Prompt/AskUser: [/Parallelogram/]
// - Default: [Rectangle]
func GenerateMermaid(w domain.Workflow) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range w.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind() {
		case domain.KindStart, domain.KindEnd:
			opener, closer = "((", "))"
		case domain.KindCondition:
			opener, closer = "{", "}"
		case domain.KindMCP, domain.KindSkill, domain.KindSubAgent:
			opener, closer = "[[", "]]"
		case domain.KindPrompt, domain.KindAskUser:
			opener, closer = "[/", "/]"
		}

		// Escape double quotes in labels for Mermaid
		safeLabel := strings.ReplaceAll(node.Label(), "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, safeLabel, closer))
	}

	for _, edge := range w.Edges {
		from := sanitizeMermaidID(edge.Source)
		to := sanitizeMermaidID(edge.Target)
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
