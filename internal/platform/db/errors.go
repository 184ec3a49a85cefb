package db

import "errors"

// ErrNotFound is returned by repositories when a record does not exist.
// Handlers map it to 404 regardless of which domain raised it.
var ErrNotFound = errors.New("record not found")
