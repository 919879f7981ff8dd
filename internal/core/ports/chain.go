package ports

import "context"

// ChainSource is the on-chain collaborator. It is the source of truth for
// the UTXO set and the transaction list; the engine only ever reads the
// snapshots it hands out.
type ChainSource interface {
	// OnchainBalanceSat returns the confirmed plus change balance of the
	// wallet. Amounts spent by a broadcast transaction are already excluded.
	OnchainBalanceSat(ctx context.Context) (uint64, error)
	// Utxos returns the current UTXO set.
	Utxos(ctx context.Context) ([]Utxo, error)
	// Transactions returns the wallet's confirmed and unconfirmed
	// transactions.
	Transactions(ctx context.Context) ([]TxInfo, error)
}

// Utxo is a single unspent output of the on-chain wallet.
type Utxo struct {
	TxID        string
	Vout        uint32
	ValueSat    uint64
	BlockHeight uint32
}

// TxInfo is a raw on-chain transaction as reported by the chain backend.
type TxInfo struct {
	TxID      string
	Timestamp int64
	// ValueSat is the net amount moved, fee excluded.
	ValueSat uint64
	FeeSat   uint64
	IsSend   bool
	// BlockHeight is zero while the transaction is unconfirmed.
	BlockHeight uint32
	ConfirmedAt int64
	VSizeVBytes int64
	// Exists turns false when the backend no longer finds the transaction,
	// eg. after a reorg or an RBF replacement.
	Exists bool
	// IsBoosted marks a transaction that has been fee-bumped via RBF or CPFP.
	IsBoosted bool
	// ReplacedTxID links a replacement to the transaction it evicted.
	ReplacedTxID string
}
