package orchestrator

import "errors"

var (
	ErrNotAvailableOffline = errors.New("content not available offline")
	ErrNoActiveContent     = errors.New("no active content for current time")
)
