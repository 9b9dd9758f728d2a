package graph

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID builds a workflow-local identifier from the current time plus a
// random suffix. Collisions are avoided without central coordination,
// which is sufficient for a single editing process; ids that cross
// device boundaries (template import) are re-keyed with UUIDs by the
// store instead.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), randomSuffix(4))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	// rand.Read on the crypto source does not fail on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
