package numeral

import (
	"errors"
	"fmt"
)

// ErrNoSuchNumber reports that a literal has no image under the notation:
// a sign or shape mismatch against the target kind, or an Optional
// conversion that returned the absent arm.
var ErrNoSuchNumber = errors.New("no such number")

// ErrMalformedResult reports an unexpected term shape after reduction,
// e.g. an Optional conversion whose result is not option-shaped.
var ErrMalformedResult = errors.New("malformed conversion result")

// ErrTyping reports that the reduction engine rejected the built
// conversion application. At the interpretation boundary it is a hard
// failure; the uninterpretation boundary converts it into a decline.
var ErrTyping = errors.New("conversion application does not type-check")

// ConfigError reports an invalid notation registration: a conversion
// function whose type matches no supported shape. It aborts the
// registering declaration only.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
