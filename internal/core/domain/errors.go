package domain

import (
	"errors"
	"fmt"
)

// Input failures all satisfy errors.Is(err, ErrInvalidInput) so transport
// adapters can map the whole family to one status class while still telling
// the specific kinds apart for user-facing messages.
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrInvalidInput)
	ErrDecode            = fmt.Errorf("%w: decode failure", ErrInvalidInput)
	ErrEmptyDocument     = fmt.Errorf("%w: empty document", ErrInvalidInput)
	ErrNoContent         = fmt.Errorf("%w: no content provided", ErrInvalidInput)
	ErrPayloadTooLarge   = fmt.Errorf("%w: payload too large", ErrInvalidInput)
	ErrEmptyContent      = fmt.Errorf("%w: empty content", ErrInvalidInput)
	ErrContentTooLong    = fmt.Errorf("%w: content too long", ErrInvalidInput)
)

var (
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamProtocol    = errors.New("upstream protocol error")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
