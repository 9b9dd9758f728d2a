package middleware

import "github.com/lxyhes/flowforge/pkg/ports"

// Middleware allows wrapping a TemplateRepository to add behavior.
type Middleware func(ports.TemplateRepository) ports.TemplateRepository
