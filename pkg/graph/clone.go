package graph

import "github.com/lxyhes/flowforge/pkg/domain"

// Clone instantiates a template as a fresh workflow. The output graph
// is isomorphic to the template's (same edge topology) but shares no
// ids with it or with any other clone: every node and edge gets a new
// id, and edge endpoints are remapped through the node id map. An edge
// endpoint that does not resolve to a cloned node is passed through
// unchanged; dangling references are tolerated here and ignored by
// traversal.
func Clone(t domain.Template) domain.Workflow {
	idMap := make(map[string]string, len(t.Nodes))

	nodes := make([]domain.Node, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		fresh := NewID("node")
		idMap[n.ID] = fresh

		data := deepCopyMap(n.Data)
		if data == nil {
			data = make(map[string]any, 1)
		}
		if s, ok := data["label"].(string); !ok || s == "" {
			data["label"] = n.Type
		}

		nodes = append(nodes, domain.Node{
			ID:       fresh,
			Type:     n.Type,
			Position: n.Position,
			Data:     data,
		})
	}

	edges := make([]domain.Edge, 0, len(t.Edges))
	for _, e := range t.Edges {
		edges = append(edges, domain.Edge{
			ID:     NewID("edge"),
			Source: remap(idMap, e.Source),
			Target: remap(idMap, e.Target),
		})
	}

	return domain.Workflow{Nodes: nodes, Edges: edges}
}

func remap(idMap map[string]string, id string) string {
	if fresh, ok := idMap[id]; ok {
		return fresh
	}
	return id
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return val
	}
}
