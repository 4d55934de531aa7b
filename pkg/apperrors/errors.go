// Package apperrors defines sentinel errors shared across layers.
package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrGateSequence      = errors.New("governance gate processed out of sequence")
	ErrActivationBlocked = errors.New("activation blocked by governance gates")
	ErrEngagementLocked  = errors.New("engagement is locked")
)
