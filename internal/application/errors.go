package application

import "errors"

var (
	// ErrRemoteRejected marks a completed HTTP exchange that the API answered with a non-2xx status.
	ErrRemoteRejected = errors.New("application: remote rejected request")
	// ErrNotSignedIn is returned when an operation needs a stored session and none exists.
	ErrNotSignedIn = errors.New("application: not signed in")
	// ErrGuestNotFound is returned when no guest record matches the signed-in user.
	ErrGuestNotFound = errors.New("application: guest not found")
	// ErrAccessDenied is returned when the signed-in role may not use the admin console.
	ErrAccessDenied = errors.New("application: access denied")
	// ErrMissingUser is returned when a login response carries no user snapshot.
	ErrMissingUser = errors.New("application: login response has no user")
	// ErrInvalidCredentials is returned when the API refuses the supplied credentials.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error. The first message per field wins.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; exists {
		return
	}
	v.FieldErrors[field] = message
}
