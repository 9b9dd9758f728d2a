package domain

import "errors"

// ErrTemplateNotFound is returned when a template id cannot be found in the repository.
var ErrTemplateNotFound = errors.New("template not found")

// ErrBuiltinImmutable is returned on attempts to mutate a built-in template.
var ErrBuiltinImmutable = errors.New("built-in template is read-only")

// ErrNoUsableTemplate is returned when an import yields no usable templates.
var ErrNoUsableTemplate = errors.New("no usable template in import")
