package utils

import (
	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier for a pipeline run. Run log rows are
// keyed by it.
func NewRunID() string {
	return uuid.NewString()
}
