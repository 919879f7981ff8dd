package ports

import (
	"context"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// DbManager interface defines the methods to access the repositories and to
// run atomic updates across them.
type DbManager interface {
	TransferRepository() domain.TransferRepository
	TagRepository() domain.TagRepository

	Close()

	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}

// Transaction interface defines the method to commit or discard a database
// transaction.
type Transaction interface {
	Commit() error
	Discard()
}
