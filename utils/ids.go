package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed, collision-resistant identifier such as
// "qr_9f06c1e24b8d4c36a81b2f07f1f05c55". Prefixes keep entity kinds
// recognisable in logs and deep links.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
