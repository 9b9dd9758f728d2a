package export

import (
	"fmt"
	"sort"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// ExtractTools collects the external tool requirements of a node list:
// one entry per mcp node with a non-empty tool name and per skill node
// with a non-empty skill name. Order follows node array order and
// duplicates are kept; the downstream runtime tolerates repeats.
func ExtractTools(nodes []domain.Node) []Tool {
	tools := make([]Tool, 0)
	for _, n := range nodes {
		switch n.Kind() {
		case domain.KindMCP:
			m, _ := domain.DecodePayload[domain.MCPData](n)
			if m.Tool == "" {
				continue
			}
			server := m.Server
			if server == "" {
				server = "default"
			}
			tools = append(tools, Tool{Type: "mcp", Name: m.Tool, Server: server})
		case domain.KindSkill:
			s, _ := domain.DecodePayload[domain.SkillData](n)
			if s.Skill == "" {
				continue
			}
			tools = append(tools, Tool{Type: "skill", Name: s.Skill})
		}
	}
	return tools
}

// ExtractParameters collects the free-form parameters maps attached to
// nodes into parameter descriptors. Across nodes the first writer of a
// name wins; within a node, keys are visited in sorted order so the
// output is deterministic.
func ExtractParameters(nodes []domain.Node) []Parameter {
	seen := make(map[string]bool)
	params := make([]Parameter, 0)

	for _, n := range nodes {
		raw := n.Parameters()
		if raw == nil {
			continue
		}

		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			params = append(params, Parameter{
				Name:        k,
				Type:        typeName(raw[k]),
				Default:     raw[k],
				Description: fmt.Sprintf("Parameter from %s", n.Label()),
			})
		}
	}
	return params
}

// typeName reports the runtime type of a parameter default the way the
// downstream config schema expects it.
func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64, float32, float64:
		return "number"
	default:
		return "object"
	}
}
