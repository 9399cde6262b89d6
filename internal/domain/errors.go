package domain

import "errors"

var (
	// ErrNotFound is returned by services when a referenced entity id does
	// not exist in storage.
	ErrNotFound = errors.New("not found")

	// ErrMessageNotFound is returned when an operation references a message
	// id absent from the loaded chat.
	ErrMessageNotFound = errors.New("message not found")

	// ErrInvalidTransition is returned for status changes that would move a
	// course or programme backwards.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrProviderFailure wraps errors coming back from a vendor call so the
	// transport layer can map them to an upstream failure.
	ErrProviderFailure = errors.New("provider request failed")
)
