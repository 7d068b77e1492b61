package esm

import "github.com/pkg/errors"

var (
	// ErrConfiguration is returned when required endpoint or credential
	// configuration is missing. It indicates a deployment defect.
	ErrConfiguration = errors.New("esm client configuration error")

	// ErrLoginFailed is returned when the session login call failed or
	// returned an unusable token.
	ErrLoginFailed = errors.New("esm login failed")

	// ErrCredentialRejected is returned when the upstream rejected the
	// credential twice in a row, post re-authentication.
	ErrCredentialRejected = errors.New("esm credential rejected after re-authentication")

	// ErrRequestTimeout is returned when a call exceeded its budget.
	ErrRequestTimeout = errors.New("esm request timed out")

	// ErrESMQuery is returned on a non-success status or malformed payload
	// from a data call.
	ErrESMQuery = errors.New("esm query returned error")

	// ErrNoParentGroup distinguishes a customer detached from any group
	// from an upstream failure.
	ErrNoParentGroup = errors.New("customer has no parent group")

	// ErrValidation is returned when caller supplied input violates a
	// precondition, before any network call is made.
	ErrValidation = errors.New("invalid request")
)
