package domain

import (
	"fmt"
)

// OutputError signals a failure writing one of the run's outputs (run log
// row or chart file). Non-fatal: reported, the computed results stand.
type OutputError struct {
	Target string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Target, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
