package ports

const (
	QuitSignal EventType = iota
	ChannelOpened
	ChannelClosed
	PaymentUpdated
	TransferResolved
)

// EventType enumerates the notifications the node runtime pushes to the
// engine between recomputation cycles.
type EventType int

func (et EventType) String() string {
	switch et {
	case QuitSignal:
		return "QuitSignal"
	case ChannelOpened:
		return "ChannelOpened"
	case ChannelClosed:
		return "ChannelClosed"
	case PaymentUpdated:
		return "PaymentUpdated"
	case TransferResolved:
		return "TransferResolved"
	default:
		return "Unknown"
	}
}

// NodeEvent is a discrete notification placed on the internal queue and
// consumed once per recomputation cycle.
type NodeEvent interface {
	Type() EventType
}

type QuitEvent struct{}

func (q QuitEvent) Type() EventType {
	return QuitSignal
}

// ChannelEvent notifies a channel becoming ready or being closed.
type ChannelEvent struct {
	EventType   EventType
	ChannelID   string
	FundingTxID string
}

func (c ChannelEvent) Type() EventType {
	return c.EventType
}

// PaymentEvent notifies a Lightning payment changing state.
type PaymentEvent struct {
	PaymentHash string
}

func (p PaymentEvent) Type() EventType {
	return PaymentUpdated
}

// TransferEvent notifies that a transfer settled outside the engine, eg. an
// LSP order confirming.
type TransferEvent struct {
	TransferID string
	ChannelID  string
}

func (t TransferEvent) Type() EventType {
	return TransferResolved
}
