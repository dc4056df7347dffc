package magick

import (
	"errors"
	"fmt"
)

var ErrMissingSourcePath = errors.New("magick: missing source image path")

// ConfigurationError reports an option combination the resolver cannot turn
// into a command. The current option set never produces one; the type exists
// so future options have a taxonomy to fail into.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("magick: configuration error: %s", e.Reason)
}
