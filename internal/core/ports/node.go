package ports

import (
	"context"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// NodeSource is the Lightning node runtime collaborator. Channel management
// and payment routing happen behind this interface; the engine consumes the
// snapshots and the event stream.
type NodeSource interface {
	// Channels returns the current channel list.
	Channels(ctx context.Context) ([]domain.Channel, error)
	// Payments returns the sent and received Lightning payments.
	Payments(ctx context.Context) ([]PaymentInfo, error)
	// ClaimableBalanceSat returns the funds pending on-chain resolution
	// after a channel close.
	ClaimableBalanceSat(ctx context.Context) (uint64, error)
	// EventChannel returns the queue of node notifications. The channel is
	// closed when the runtime shuts down.
	EventChannel() <-chan NodeEvent
}

// PaymentInfo is a raw Lightning payment as reported by the node runtime.
type PaymentInfo struct {
	PaymentHash string
	Timestamp   int64
	AmountSat   uint64
	// FeeSat is the routing fee, zero for received payments.
	FeeSat  uint64
	IsSend  bool
	Status  domain.PaymentStatus
	Message string
}
