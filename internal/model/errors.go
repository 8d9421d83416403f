package model

import "errors"

// ErrEventNotFound is returned by every backend when an event id is unknown.
// Handlers translate it into a 404.
var ErrEventNotFound = errors.New("event not found")
