package memory_test

import (
	"testing"

	"github.com/lxyhes/flowforge/pkg/adapters/memory"
	"github.com/lxyhes/flowforge/pkg/ports"
)

func TestRepository_Contract(t *testing.T) {
	ports.RunTemplateRepositoryContract(t, memory.New())
}
