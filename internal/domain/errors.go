package domain

import "errors"

// ErrNotFound indicates a cart, item index, or address that does not exist.
var ErrNotFound = errors.New("not found")
