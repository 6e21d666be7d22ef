package storage

import "errors"

// ErrNotFound is returned by every backend when no record has the requested id.
var ErrNotFound = errors.New("not found")
