package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a short random identifier such as "ing_3f2a9c01b7de".
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:12]
}
