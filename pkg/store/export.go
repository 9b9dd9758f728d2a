package store

import (
	"encoding/json"
	"fmt"

	"github.com/lxyhes/flowforge/pkg/domain"
)

// ExportOne renders a template as the version-1 download envelope.
func (s *Service) ExportOne(t domain.Template) ([]byte, error) {
	envelope := domain.ExportEnvelope{
		Version: domain.EnvelopeVersion,
		Template: domain.ExportedTemplate{
			Template:   t,
			ExportedAt: s.timestamp(),
		},
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export envelope: %w", err)
	}
	return data, nil
}
