package repository

import "errors"

// ErrNotFound is returned when a lookup or delete matches no document.
var ErrNotFound = errors.New("document not found")
