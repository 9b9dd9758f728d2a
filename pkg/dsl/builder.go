package dsl

import (
	"fmt"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// Builder manages the graph construction. Nodes keep their insertion
// order and edges keep their Go() call order, so the derived step
// sequence of the built workflow is deterministic.
type Builder struct {
	order []*NodeBuilder
	index map[string]*NodeBuilder
	edges []domain.Edge
}

// New creates a new workflow builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.index[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:   id,
			Data: map[string]any{},
		},
		builder: b,
	}
	b.index[id] = nb
	b.order = append(b.order, nb)
	return nb
}

func (b *Builder) connect(source, target string) {
	b.edges = append(b.edges, domain.Edge{
		ID:     fmt.Sprintf("e%d", len(b.edges)+1),
		Source: source,
		Target: target,
	})
}

// Build compiles the graph into a workflow.
func (b *Builder) Build() domain.Workflow {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, nb := range b.order {
		nodes = append(nodes, nb.node)
	}
	return domain.Workflow{
		Nodes: nodes,
		Edges: append([]domain.Edge(nil), b.edges...),
	}
}
