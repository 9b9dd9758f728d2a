package export

import (
	"github.com/lxyhes/flowforge/pkg/domain"
)

// AgentVersion is stamped into every agent config artifact.
const AgentVersion = "1.0.0"

// Tool is a tool requirement surfaced to the downstream runtime.
type Tool struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Server string `json:"server,omitempty"`
}

// Parameter is an input the downstream command accepts.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     any    `json:"default"`
	Description string `json:"description"`
}

// Step is one entry of the flattened workflow inside an agent config.
type Step struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
}

// AgentConfig is the artifact consumed by an agent runtime.
type AgentConfig struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Version      string `json:"version"`
	Instructions string `json:"instructions"`
	Tools        []Tool `json:"tools"`
	Steps        []Step `json:"steps"`
}

// CommandConfig is the artifact consumed as a slash-command definition.
type CommandConfig struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Instructions string      `json:"instructions"`
	Tools        []Tool      `json:"tools"`
	Parameters   []Parameter `json:"parameters"`
}

// ToAgentConfig maps a derived step sequence into the agent schema.
func ToAgentConfig(name, description string, steps []domain.Node) AgentConfig {
	out := AgentConfig{
		Name:         name,
		Description:  description,
		Version:      AgentVersion,
		Instructions: agentInstructions(steps),
		Tools:        ExtractTools(steps),
	}
	out.Steps = make([]Step, 0, len(steps))
	for _, n := range steps {
		out.Steps = append(out.Steps, Step{
			ID:          n.ID,
			Type:        n.Type,
			Description: n.Label(),
			Config:      n.Data,
		})
	}
	return out
}

// ToCommandConfig maps a derived step sequence into the command schema.
func ToCommandConfig(name, description string, steps []domain.Node) CommandConfig {
	return CommandConfig{
		Name:         Slugify(name),
		Description:  description,
		Instructions: commandInstructions(steps),
		Tools:        ExtractTools(steps),
		Parameters:   ExtractParameters(steps),
	}
}
