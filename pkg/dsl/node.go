package dsl

import "github.com/lxyhes/flowforge/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

func (n *NodeBuilder) kind(k domain.NodeKind) *NodeBuilder {
	n.node.Type = string(k)
	return n
}

func (n *NodeBuilder) set(key string, value any) *NodeBuilder {
	n.node.Data[key] = value
	return n
}

// Start marks the node as the workflow entry point.
func (n *NodeBuilder) Start() *NodeBuilder { return n.kind(domain.KindStart) }

// End marks the node as a workflow terminus.
func (n *NodeBuilder) End() *NodeBuilder { return n.kind(domain.KindEnd) }

// Prompt marks the node as a prompt step with the given text.
func (n *NodeBuilder) Prompt(text string) *NodeBuilder {
	return n.kind(domain.KindPrompt).set("prompt", text)
}

// Var declares a template variable on a prompt node.
func (n *NodeBuilder) Var(name, defaultValue string) *NodeBuilder {
	vars, _ := n.node.Data["variables"].([]any)
	vars = append(vars, map[string]any{
		"name":         name,
		"defaultValue": defaultValue,
	})
	return n.set("variables", vars)
}

// Condition marks the node as a branching condition.
func (n *NodeBuilder) Condition(expr string) *NodeBuilder {
	return n.kind(domain.KindCondition).set("condition", expr)
}

// Action marks the node as a generic action step.
func (n *NodeBuilder) Action(description string) *NodeBuilder {
	return n.kind(domain.KindAction).set("action", description)
}

// AskUser marks the node as a user-confirmation step.
func (n *NodeBuilder) AskUser() *NodeBuilder { return n.kind(domain.KindAskUser) }

// SubAgent marks the node as a sub-agent delegation.
func (n *NodeBuilder) SubAgent(agentName, task string) *NodeBuilder {
	return n.kind(domain.KindSubAgent).set("agentName", agentName).set("task", task)
}

// MCP marks the node as an MCP tool invocation.
func (n *NodeBuilder) MCP(server, tool string) *NodeBuilder {
	return n.kind(domain.KindMCP).set("mcpServer", server).set("mcpTool", tool)
}

// Skill marks the node as a skill invocation.
func (n *NodeBuilder) Skill(name string) *NodeBuilder {
	return n.kind(domain.KindSkill).set("skill", name)
}

// ReadFile marks the node as a file read.
func (n *NodeBuilder) ReadFile(path string) *NodeBuilder {
	return n.kind(domain.KindReadFile).set("filePath", path)
}

// WriteFile marks the node as a file write.
func (n *NodeBuilder) WriteFile(path string) *NodeBuilder {
	return n.kind(domain.KindWriteFile).set("filePath", path)
}

// SearchFiles marks the node as a file search.
func (n *NodeBuilder) SearchFiles(pattern string) *NodeBuilder {
	return n.kind(domain.KindSearchFiles).set("pattern", pattern)
}

// GitCommit marks the node as a git commit step.
func (n *NodeBuilder) GitCommit(command string) *NodeBuilder {
	return n.kind(domain.KindGitCommit).set("command", command)
}

// GitBranch marks the node as a git branch step.
func (n *NodeBuilder) GitBranch(command string) *NodeBuilder {
	return n.kind(domain.KindGitBranch).set("command", command)
}

// Shell marks the node as a shell command step.
func (n *NodeBuilder) Shell(command string) *NodeBuilder {
	return n.kind(domain.KindShell).set("command", command)
}

// Label sets the display label of the node.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	return n.set("label", label)
}

// Param adds an exported parameter to the node.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	params, _ := n.node.Data["parameters"].(map[string]any)
	if params == nil {
		params = make(map[string]any)
	}
	params[key] = value
	return n.set("parameters", params)
}

// At sets the canvas position of the node.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = domain.Position{X: x, Y: y}
	return n
}

// Go adds an edge from this node to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.builder.connect(n.node.ID, target)
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
