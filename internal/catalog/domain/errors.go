package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrStoreUnavailable = errors.New("listing store unavailable")
	ErrBlobUnavailable  = errors.New("image storage unavailable")
	ErrPostInFlight     = errors.New("a post is already in progress")
)

// ValidationError is returned before any network call when a draft is not
// submittable. Field names the offending form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid draft: " + e.Field + ": " + e.Reason
}
