package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat means no strategy is registered for an extension.
	// Only whole files fail with it; unsupported archive members are dropped.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedInput wraps every structural failure of a subtitle block,
	// catalog record, entry comment or archive container.
	ErrMalformedInput = errors.New("malformed input")
)

// BatchMemberError reports the archive member whose conversion aborted a
// batch. Nested archives produce nested member errors.
type BatchMemberError struct {
	Member string
	Err    error
}

func (e *BatchMemberError) Error() string {
	return fmt.Sprintf("archive member %q: %v", e.Member, e.Err)
}

func (e *BatchMemberError) Unwrap() error {
	return e.Err
}

func malformed(err error) error {
	if errors.Is(err, ErrMalformedInput) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrMalformedInput, err)
}
