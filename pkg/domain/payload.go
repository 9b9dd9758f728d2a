package domain

import "github.com/mitchellh/mapstructure"

// Kind-specific payload shapes. Each mirrors the loose Data map carried
// by a node of that kind. Decoding is lenient: missing or mistyped
// fields yield zero values, never errors, so a partially edited node
// still exports whatever it has.

// PromptData is the payload of a "prompt" node.
type PromptData struct {
	Prompt    string     `mapstructure:"prompt"`
	Variables []Variable `mapstructure:"variables"`
}

// Variable is a named placeholder inside a prompt.
type Variable struct {
	Name         string `mapstructure:"name"`
	DefaultValue string `mapstructure:"defaultValue"`
}

// ConditionData is the payload of a "condition" node.
type ConditionData struct {
	Condition string `mapstructure:"condition"`
}

// ActionData is the payload of an "action" node.
type ActionData struct {
	Action string `mapstructure:"action"`
}

// SubAgentData is the payload of a "subAgent" node.
type SubAgentData struct {
	AgentName string `mapstructure:"agentName"`
	Task      string `mapstructure:"task"`
}

// MCPData is the payload of an "mcp" node.
type MCPData struct {
	Server string `mapstructure:"mcpServer"`
	Tool   string `mapstructure:"mcpTool"`
}

// SkillData is the payload of a "skill" node.
type SkillData struct {
	Skill string `mapstructure:"skill"`
}

// FileData is the payload of the readFile/writeFile/searchFiles nodes.
// Content is only meaningful for writeFile; Pattern only for searchFiles.
type FileData struct {
	FilePath string `mapstructure:"filePath"`
	Content  string `mapstructure:"content"`
	Pattern  string `mapstructure:"pattern"`
}

// CommandData is the payload of the shell/gitCommit/gitBranch nodes.
type CommandData struct {
	Command string `mapstructure:"command"`
}

// DecodePayload decodes a node's loose Data map into a typed payload.
// It is best-effort: fields that do not fit are left at their zero
// value. The boolean reports whether anything decoded at all.
func DecodePayload[T any](n Node) (T, bool) {
	var out T
	if n.Data == nil {
		return out, false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, false
	}
	if err := dec.Decode(n.Data); err != nil {
		return out, false
	}
	return out, true
}

// Parameters returns the free-form parameters map attached to a node,
// or nil when the node carries none.
func (n Node) Parameters() map[string]any {
	if p, ok := n.Data["parameters"].(map[string]any); ok {
		return p
	}
	return nil
}
