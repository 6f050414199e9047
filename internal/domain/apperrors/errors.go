package apperrors

import "errors"

// ErrNotFound is returned when an update or delete targets an id with no matching row.
var ErrNotFound = errors.New("not found")
