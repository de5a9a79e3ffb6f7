// Package errors provides centralized error definitions for the bridge.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Link lifecycle errors. These are expected, recoverable conditions and are
// surfaced to the command layer as user-facing replies rather than logged
// as errors.
var (
	// ErrAlreadyLinked indicates a guild or channel already has a link.
	ErrAlreadyLinked = errors.New("already linked")

	// ErrNotLinked indicates a guild has no link.
	ErrNotLinked = errors.New("guild not linked")

	// ErrLinkNotFound indicates a channel or message link lookup missed.
	ErrLinkNotFound = errors.New("link not found")
)

// Delivery errors. Logged at warn/error level; they abort only the current
// operation and are never retried.
var (
	// ErrWebhookUnavailable indicates a webhook is missing or the platform
	// webhook API failed.
	ErrWebhookUnavailable = errors.New("webhook unavailable")

	// ErrRelayDeliveryFailed indicates a send, edit or delete through the
	// destination webhook failed.
	ErrRelayDeliveryFailed = errors.New("relay delivery failed")
)

// Entity resolution errors.
var (
	// ErrPlatformFetchFailed indicates a guild, channel or message could not
	// be fetched from its platform.
	ErrPlatformFetchFailed = errors.New("platform fetch failed")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
