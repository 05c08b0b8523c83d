package cache

import "errors"

// Sentinel errors for the cache package.
var (
	// ErrNotFound is returned when a row is absent or already expired.
	ErrNotFound = errors.New("cache entry not found")

	// ErrReservedKey is returned when a content id collides with one of the
	// reserved synthetic rows (playlist, store metadata).
	ErrReservedKey = errors.New("content id collides with reserved key")

	// ErrAssetTooLarge is returned when a binary asset exceeds the size cap.
	ErrAssetTooLarge = errors.New("binary asset exceeds size cap")
)
