package services

import "errors"

// Errors shared across services. Resource-specific sentinels live next to the
// service that returns them.
var (
	ErrForbidden = errors.New("access denied")
)
