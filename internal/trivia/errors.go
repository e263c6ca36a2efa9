package trivia

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory reports a category id with no upstream mapping.
var ErrUnknownCategory = errors.New("unknown trivia category")

// UpstreamError reports a non-success response code from the trivia provider.
type UpstreamError struct {
	Reason string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("trivia provider error: %s", e.Reason)
}
