package domain

import (
	"context"
)

// Retriever fetches the complete remote log as one text snapshot. The remote
// writer appends continuously, so the snapshot may end mid-line; the parser
// tolerates a truncated trailing record. Implementations open exactly one
// session per call and release it on every exit path.
type Retriever interface {
	Fetch(ctx context.Context) (string, error)
}
