package domain

import "errors"

var (
	// ErrInvalidAmount is thrown when creating a transfer with a non-positive amount
	ErrInvalidAmount = errors.New("transfer amount must be greater than zero")
	// ErrInvalidTransferType ...
	ErrInvalidTransferType = errors.New("transfer type is not valid")
	// ErrTransferNotFound ...
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrInconsistentSnapshot is thrown when a channel references a transfer
	// with no matching record. Recovered locally, never surfaced to callers.
	ErrInconsistentSnapshot = errors.New("channel references an unknown transfer")
	// ErrStaleData is thrown when a snapshot older than the last known version
	// is handed to the engine. The previous snapshot is retained.
	ErrStaleData = errors.New("snapshot is older than the current one")
	// ErrEmptyTag ...
	ErrEmptyTag = errors.New("tag must not be an empty string")
)
