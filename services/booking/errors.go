// File: urbanserve/services/booking/errors.go
package booking

// ValidationError is a client-fault rejection with a human-readable reason.
// Never logged as an audit event.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// AuthorizationError signals the wrong party attempted a transition. Kept
// distinct from ValidationError for observability, though both are
// client-fault.
type AuthorizationError struct {
	Reason string
}

func (e AuthorizationError) Error() string {
	return e.Reason
}
