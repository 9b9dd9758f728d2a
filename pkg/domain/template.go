package domain

// TemplateSource marks who owns a template.
type TemplateSource string

const (
	// SourceBuiltin templates ship with the catalog and are read-only.
	SourceBuiltin TemplateSource = "builtin"
	// SourceCustom templates are user-authored and persisted.
	SourceCustom TemplateSource = "custom"
)

// Template is a named, categorized snapshot of a workflow graph.
// Timestamps are ISO-8601 strings on the wire; they are informational
// and never interpreted by the core.
type Template struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Category    string         `json:"category" yaml:"category"`
	Tags        []string       `json:"tags" yaml:"tags"`
	Description string         `json:"description" yaml:"description"`
	Nodes       []Node         `json:"nodes" yaml:"nodes"`
	Edges       []Edge         `json:"edges" yaml:"edges"`
	Source      TemplateSource `json:"source" yaml:"source"`
	CreatedAt   string         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Workflow returns the graph snapshot held by the template.
func (t Template) Workflow() Workflow {
	return Workflow{Nodes: t.Nodes, Edges: t.Edges}
}

// ExportEnvelope is the single-template download artifact.
type ExportEnvelope struct {
	Version  int              `json:"version"`
	Template ExportedTemplate `json:"template"`
}

// ExportedTemplate is a template stamped with its export time.
type ExportedTemplate struct {
	Template
	ExportedAt string `json:"exported_at"`
}

// EnvelopeVersion is the current export envelope version.
const EnvelopeVersion = 1
