package preload

import "errors"

var (
	ErrPreloadTimeout   = errors.New("preload timed out")
	ErrPreloadCancelled = errors.New("preload cancelled")
)
