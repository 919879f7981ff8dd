package application

import "errors"

var (
	// ErrSnapshotUnavailable is returned when no snapshot set has been
	// fetched yet and refreshing the collaborators failed.
	ErrSnapshotUnavailable = errors.New("no snapshot available from chain and node sources")
	// ErrEmptyActivityID ...
	ErrEmptyActivityID = errors.New("activity id must not be an empty string")
	// ErrEmptyTransferRef ...
	ErrEmptyTransferRef = errors.New("transfer reference must not be an empty string")
)
