package content

import "errors"

// ErrInvalidContent is returned when a content payload is missing required
// fields or carries out-of-range values.
var ErrInvalidContent = errors.New("invalid content payload")
