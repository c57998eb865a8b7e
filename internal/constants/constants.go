package constants

import "time"

// Context keys
const (
	ContextKeyCaller = "caller"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation
const (
	MinPasswordLength = 8

	// MinEventDuration is the shortest allowed span between an event's
	// start and end dates.
	MinEventDuration = 15 * time.Minute
)
