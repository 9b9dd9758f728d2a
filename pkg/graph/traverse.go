package graph

import "github.com/lxyhes/flowforge/pkg/domain"

// DeriveStepSequence flattens a workflow graph into a linear step list
// by breadth-first discovery from the start node.
//
// The first node whose kind is "start" seeds the traversal; sibling
// order follows edge array order. Every node is emitted at most once,
// nodes unreachable from start are excluded, and cycles are cut by the
// visited set. The result is a best-effort flattening, not a
// topological sort: a node with several incoming edges sits at its
// first discovery position.
//
// A graph with no start node yields an empty sequence. This function
// never fails; a degenerate graph degrades to a shorter sequence.
func DeriveStepSequence(w domain.Workflow) []domain.Node {
	var start *domain.Node
	for i := range w.Nodes {
		if w.Nodes[i].Kind() == domain.KindStart {
			start = &w.Nodes[i]
			break
		}
	}
	if start == nil {
		return nil
	}

	byID := make(map[string]domain.Node, len(w.Nodes))
	for _, n := range w.Nodes {
		byID[n.ID] = n
	}

	adjacency := make(map[string][]string, len(w.Edges))
	for _, e := range w.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	visited := make(map[string]bool, len(w.Nodes))
	queue := []string{start.ID}
	sequence := make([]domain.Node, 0, len(w.Nodes))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		visited[id] = true

		node, ok := byID[id]
		if !ok {
			// Edge pointing at a node that does not exist.
			continue
		}
		sequence = append(sequence, node)
		queue = append(queue, adjacency[id]...)
	}

	return sequence
}

// Unreachable returns the ids of nodes that DeriveStepSequence would
// exclude. Used by presentation layers to warn about orphan branches.
func Unreachable(w domain.Workflow) []string {
	reached := make(map[string]bool)
	for _, n := range DeriveStepSequence(w) {
		reached[n.ID] = true
	}

	var orphans []string
	for _, n := range w.Nodes {
		if !reached[n.ID] {
			orphans = append(orphans, n.ID)
		}
	}
	return orphans
}

// CountStarts reports how many start-kind nodes the workflow holds.
// Traversal silently picks the first; callers may want to warn on
// zero or more than one.
func CountStarts(w domain.Workflow) int {
	count := 0
	for _, n := range w.Nodes {
		if n.Kind() == domain.KindStart {
			count++
		}
	}
	return count
}
