package domain

import "errors"

// Error taxonomy for the ranking pipeline. Validation errors abort the request
// before any collaborator is called; collaborator and malformed-response
// errors in enrichment stages degrade to the next-best ordering instead.
var (
	ErrValidation        = errors.New("validation error")
	ErrCollaborator      = errors.New("collaborator error")
	ErrMalformedResponse = errors.New("malformed collaborator response")
)
