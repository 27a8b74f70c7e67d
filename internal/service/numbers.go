package service

import (
	"strings"

	"github.com/google/uuid"
)

// newDocumentNumber builds a human-readable document number with a random
// suffix, e.g. "RO-3F2A9C1B". Unlike timestamp-based numbers, concurrent
// creations cannot collide.
func newDocumentNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + "-" + suffix
}
