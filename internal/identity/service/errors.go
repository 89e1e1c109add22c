package service

import "errors"

// Provider errors. Their messages are surfaced to admins verbatim as the
// detail of an internal failure, so they read as user-facing sentences.
var (
	ErrInvalidEmail    = errors.New("The email address is improperly formatted.")
	ErrWeakPassword    = errors.New("The password must be a string with at least 6 characters.")
	ErrEmailExists     = errors.New("The email address is already in use by another account.")
	ErrInvalidName     = errors.New("The display name must be a non-empty string.")
	ErrAccountNotFound = errors.New("There is no user record corresponding to the provided identifier.")
)
