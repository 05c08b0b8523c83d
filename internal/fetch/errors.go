package fetch

import (
	"errors"
	"fmt"
)

// Error reports a failed fetch: either a transport failure (Err set) or a
// non-success response (StatusCode set).
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// IsFetchError reports whether err is a fetch failure.
func IsFetchError(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}
