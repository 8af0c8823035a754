// Package apperrors defines the failure kinds the API distinguishes.
// Callers classify errors with errors.Is; extra context is attached by
// wrapping with fmt.Errorf("...: %w", kind).
package apperrors

import "errors"

var (
	// ErrNotFound covers both a genuinely missing record and a record owned
	// by another user. The two are deliberately indistinguishable so the API
	// never leaks the existence of other users' data.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers uniqueness violations: duplicate category name
	// within one owner, duplicate email or username at registration.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput covers precondition failures on the payload itself,
	// e.g. a budget end date that is not after its start date.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReferentialViolation is returned when deleting a category that
	// still has expenses referencing it.
	ErrReferentialViolation = errors.New("record is still referenced")

	// ErrUnauthorized covers bad credentials and invalid or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
)
