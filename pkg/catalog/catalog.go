// Package catalog ships the built-in template library. The catalog is
// parsed once from an embedded YAML document at startup and never
// mutated; users clone templates out of it instead of editing it.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/lxyhes/flowforge/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var rawCatalog []byte

var (
	once      sync.Once
	templates []domain.Template
)

func load() {
	once.Do(func() {
		var doc struct {
			Templates []domain.Template `yaml:"templates"`
		}
		if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
			// The catalog is compiled into the binary; failing to parse
			// it is a build defect, not a runtime condition.
			panic(fmt.Sprintf("catalog: embedded templates.yaml is invalid: %v", err))
		}
		for i := range doc.Templates {
			doc.Templates[i].Source = domain.SourceBuiltin
		}
		templates = doc.Templates
	})
}

// All returns the built-in templates. The returned slice and its
// contents are shared and must be treated as read-only; use
// graph.Clone to obtain an editable workflow.
func All() []domain.Template {
	load()
	return templates
}

// ByID returns the built-in template with the given id.
func ByID(id string) (domain.Template, bool) {
	load()
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Template{}, false
}

// ByCategory returns the built-in templates in a category.
func ByCategory(category string) []domain.Template {
	load()
	var out []domain.Template
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
