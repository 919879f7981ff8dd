package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

// NodeListener consumes the node runtime's event stream: it settles the
// transfers resolved by channel events and records the channel-open
// notifications the balance computation consumes for its transient
// suppression rule.
type NodeListener interface {
	ChannelOpenedConsumer
	ObserveNode()
	StopObserveNode()
}

type nodeListener struct {
	nodeSvc     ports.NodeSource
	transferSvc TransferService

	lock          sync.Mutex
	channelOpened bool
	stopped       bool
}

// NewNodeListener returns a NodeListener consuming events from the given
// node source.
func NewNodeListener(
	nodeSvc ports.NodeSource, transferSvc TransferService,
) NodeListener {
	return &nodeListener{
		nodeSvc:     nodeSvc,
		transferSvc: transferSvc,
	}
}

func (l *nodeListener) ObserveNode() {
	go l.handleNodeEvents()
}

func (l *nodeListener) StopObserveNode() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.stopped = true
}

// ConsumeChannelOpened returns whether a channel-open notification arrived
// since the last call and clears it, so the suppression it drives lasts for
// exactly one computation cycle.
func (l *nodeListener) ConsumeChannelOpened() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	opened := l.channelOpened
	l.channelOpened = false
	return opened
}

func (l *nodeListener) handleNodeEvents() {
	for event := range l.nodeSvc.EventChannel() {
		if l.isStopped() {
			return
		}
		ctx := context.Background()

		switch e := event.(type) {
		case ports.ChannelEvent:
			l.handleChannelEvent(ctx, e)
		case ports.TransferEvent:
			l.handleTransferEvent(ctx, e)
		case ports.PaymentEvent:
			log.Debugf("payment %s updated", e.PaymentHash)
		case ports.QuitEvent:
			return
		}
	}
}

func (l *nodeListener) handleChannelEvent(ctx context.Context, e ports.ChannelEvent) {
	switch e.EventType {
	case ports.ChannelOpened:
		l.lock.Lock()
		l.channelOpened = true
		l.lock.Unlock()
		log.Debugf("channel %s is ready", e.ChannelID)

		// a ready channel with no matching transfer record is treated as a
		// plain open channel, the balance stays correct either way.
		if pending, err := l.transferSvc.PendingTransfers(
			ctx, domain.TransferTypeOpen,
		); err == nil && len(pending) == 0 {
			log.Warnf("channel %s: %s", e.ChannelID, domain.ErrInconsistentSnapshot)
		}
	case ports.ChannelClosed:
		log.Debugf("channel %s closed", e.ChannelID)
	}

	if err := l.transferSvc.ResolveTransferForChannel(
		ctx, e.ChannelID, e.FundingTxID,
	); err != nil {
		log.Warnf(
			"trying to resolve transfers for channel %s: %s", e.ChannelID, err,
		)
	}
}

func (l *nodeListener) handleTransferEvent(ctx context.Context, e ports.TransferEvent) {
	ref := e.TransferID
	if ref == "" {
		ref = e.ChannelID
	}
	if ref == "" {
		return
	}
	if err := l.transferSvc.ResolveTransfer(ctx, ref); err != nil {
		log.Warnf("trying to resolve transfer %s: %s", ref, err)
	}
}

func (l *nodeListener) isStopped() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.stopped
}
