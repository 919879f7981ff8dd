package domain

import "context"

// TransferRepository is the abstraction for any kind of database intended to
// persist Transfers. The history is auditable: records are only ever added or
// settled, never deleted.
type TransferRepository interface {
	// AddTransfer adds a new transfer to the repository.
	AddTransfer(ctx context.Context, transfer *Transfer) error
	// GetTransfer returns the transfer with the given id, or
	// ErrTransferNotFound.
	GetTransfer(ctx context.Context, id string) (*Transfer, error)
	// GetAllTransfers returns every transfer ever recorded.
	GetAllTransfers(ctx context.Context) ([]Transfer, error)
	// GetPendingTransfers returns the transfers still awaiting settlement.
	GetPendingTransfers(ctx context.Context) ([]Transfer, error)
	// UpdateTransfer updates the state of a transfer. The closure function
	// lets the caller commit multiple changes in a transactional way.
	UpdateTransfer(
		ctx context.Context,
		id string, updateFn func(t *Transfer) (*Transfer, error),
	) error
}
