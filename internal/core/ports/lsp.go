package ports

import "context"

// LspSource is the channel-purchase service collaborator. Orders are only
// used to learn the funding txid of a purchased channel so the matching
// on-chain transaction can be correlated with its transfer record.
type LspSource interface {
	// Orders returns the known channel-purchase orders.
	Orders(ctx context.Context) ([]OrderInfo, error)
}

// OrderInfo is a channel-purchase order as reported by the LSP.
type OrderInfo struct {
	ID          string
	State       string
	FundingTxID string
	AmountSat   uint64
	CreatedAt   int64
}
