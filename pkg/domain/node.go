package domain

// NodeKind identifies the behavior of a node in a workflow graph.
// The set of kinds is closed; anything outside it is treated as a
// generic node with no kind-specific payload (see Node.Kind).
type NodeKind string

const (
	KindStart       NodeKind = "start"
	KindEnd         NodeKind = "end"
	KindPrompt      NodeKind = "prompt"
	KindCondition   NodeKind = "condition"
	KindAction      NodeKind = "action"
	KindAskUser     NodeKind = "askUser"
	KindSubAgent    NodeKind = "subAgent"
	KindMCP         NodeKind = "mcp"
	KindSkill       NodeKind = "skill"
	KindReadFile    NodeKind = "readFile"
	KindWriteFile   NodeKind = "writeFile"
	KindSearchFiles NodeKind = "searchFiles"
	KindGitCommit   NodeKind = "gitCommit"
	KindGitBranch   NodeKind = "gitBranch"
	KindShell       NodeKind = "shell"

	// KindUnknown is the forward-compatible fallback for node types
	// this version does not know about. It is never serialized.
	KindUnknown NodeKind = "unknown"
)

// knownKinds is the closed registry of node kinds.
var knownKinds = map[NodeKind]struct{}{
	KindStart:       {},
	KindEnd:         {},
	KindPrompt:      {},
	KindCondition:   {},
	KindAction:      {},
	KindAskUser:     {},
	KindSubAgent:    {},
	KindMCP:         {},
	KindSkill:       {},
	KindReadFile:    {},
	KindWriteFile:   {},
	KindSearchFiles: {},
	KindGitCommit:   {},
	KindGitBranch:   {},
	KindShell:       {},
}

// Kinds returns the closed set of node kinds in a stable order.
func Kinds() []NodeKind {
	return []NodeKind{
		KindStart, KindEnd, KindPrompt, KindCondition, KindAction,
		KindAskUser, KindSubAgent, KindMCP, KindSkill, KindReadFile,
		KindWriteFile, KindSearchFiles, KindGitCommit, KindGitBranch,
		KindShell,
	}
}

// Position is the canvas placement of a node. It is presentation-only
// and carries no semantic meaning for traversal or export.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a single step in a workflow graph.
// Data holds the kind-specific payload plus a display label; it is kept
// as a loose map on the wire and decoded into typed payloads on demand
// (see payload.go).
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Position Position       `json:"position" yaml:"position"`
	Data     map[string]any `json:"data" yaml:"data"`
}

// Kind maps the node's wire type onto the closed kind registry.
// Unknown types fall back to KindUnknown rather than erroring, so
// graphs produced by newer editors still traverse and export.
func (n Node) Kind() NodeKind {
	k := NodeKind(n.Type)
	if _, ok := knownKinds[k]; ok {
		return k
	}
	return KindUnknown
}

// Label returns the display label from the node data, falling back to
// the node type when the label is missing or blank.
func (n Node) Label() string {
	if s, ok := n.Data["label"].(string); ok && s != "" {
		return s
	}
	return n.Type
}

// Edge is a directed link between two nodes. Source and Target are node
// ids; references to missing nodes are tolerated by traversal.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Workflow is the full node/edge graph being edited.
type Workflow struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NodeByID returns the node with the given id, if present.
func (w Workflow) NodeByID(id string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
