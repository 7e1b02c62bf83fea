package postgres

import "github.com/pkg/errors"

// Typed failure kinds shared by the repositories. Controllers and clients
// branch on these instead of matching message strings.
var (
	ErrNotFound = errors.New("row not found")

	// ErrNoActiveSession: check-out with nothing open. Clients reset their
	// local state to OUT on this error.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionOpen: check-in while a session is still open. At most one
	// open session may exist per employee.
	ErrSessionOpen = errors.New("an open session already exists")

	ErrLocationUnavailable = errors.New("location unavailable")
	ErrEvidenceMissing     = errors.New("photo evidence missing")
	ErrOutsideGeofence     = errors.New("outside the office geofence")
)
