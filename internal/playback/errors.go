package playback

import "errors"

var ErrIndexOutOfRange = errors.New("playlist index out of range")
