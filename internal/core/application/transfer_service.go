package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
)

// TransferService maintains the transfer records correlating on-chain
// transactions with channel opens and closes.
type TransferService interface {
	// RecordTransferStart creates a pending transfer. The txid is optional
	// and may be correlated later. Fails with domain.ErrInvalidAmount on a
	// non-positive amount.
	RecordTransferStart(
		ctx context.Context,
		transferType domain.TransferType,
		amountSat int64,
		txid string,
	) (*domain.Transfer, error)
	// ResolveTransfer settles the pending transfer matching the given
	// transfer id or correlated channel id. Resolution events may arrive
	// after the transfer already settled, so an unmatched reference is a
	// no-op, not an error.
	ResolveTransfer(ctx context.Context, ref string) error
	// ResolveTransferForChannel settles the pending transfers correlated
	// with the given channel, matched by channel id or funding txid.
	ResolveTransferForChannel(
		ctx context.Context, channelID, fundingTxID string,
	) error
	// PendingTransfers returns the pending transfers, optionally restricted
	// to the given types.
	PendingTransfers(
		ctx context.Context, types ...domain.TransferType,
	) ([]domain.Transfer, error)
	// AddObserver registers an additional observer. Not safe for use once
	// transfers are being recorded concurrently.
	AddObserver(observer TransferObserver)
}

// TransferObserver is notified after every transfer mutation so read-side
// caches can drop derived figures.
type TransferObserver interface {
	OnTransfersChanged()
}

type transferService struct {
	transferRepo domain.TransferRepository
	observers    []TransferObserver
}

// NewTransferService returns a TransferService persisting through the given
// repository and notifying the given observers on every mutation.
func NewTransferService(
	transferRepo domain.TransferRepository,
	observers ...TransferObserver,
) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		observers:    observers,
	}
}

func (s *transferService) RecordTransferStart(
	ctx context.Context,
	transferType domain.TransferType,
	amountSat int64,
	txid string,
) (*domain.Transfer, error) {
	transfer, err := domain.NewTransfer(transferType, amountSat, txid)
	if err != nil {
		return nil, err
	}
	if err := s.transferRepo.AddTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	log.Debugf(
		"recorded %s transfer %s for %d sats", transfer.Type, transfer.ID,
		transfer.AmountSat,
	)
	s.notifyObservers()
	return transfer, nil
}

func (s *transferService) ResolveTransfer(ctx context.Context, ref string) error {
	if ref == "" {
		return ErrEmptyTransferRef
	}

	_, err := s.transferRepo.GetTransfer(ctx, ref)
	if err == nil {
		return s.settle(ctx, ref, "")
	}
	if !errors.Is(err, domain.ErrTransferNotFound) {
		return err
	}

	// not a transfer id, try matching the correlated channel.
	return s.ResolveTransferForChannel(ctx, ref, "")
}

func (s *transferService) ResolveTransferForChannel(
	ctx context.Context, channelID, fundingTxID string,
) error {
	pending, err := s.transferRepo.GetPendingTransfers(ctx)
	if err != nil {
		return err
	}

	for _, t := range pending {
		matched := (channelID != "" && t.ChannelID == channelID) ||
			(fundingTxID != "" && t.TxID == fundingTxID)
		if !matched {
			continue
		}
		if err := s.settle(ctx, t.ID, channelID); err != nil {
			return err
		}
	}
	return nil
}

func (s *transferService) PendingTransfers(
	ctx context.Context, types ...domain.TransferType,
) ([]domain.Transfer, error) {
	pending, err := s.transferRepo.GetPendingTransfers(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return pending, nil
	}

	filtered := make([]domain.Transfer, 0, len(pending))
	for _, t := range pending {
		for _, tt := range types {
			if t.Type == tt {
				filtered = append(filtered, t)
				break
			}
		}
	}
	return filtered, nil
}

func (s *transferService) settle(
	ctx context.Context, id, channelID string,
) error {
	err := s.transferRepo.UpdateTransfer(
		ctx, id, func(t *domain.Transfer) (*domain.Transfer, error) {
			t.Settle(channelID)
			return t, nil
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return nil
		}
		return err
	}

	log.Debugf("settled transfer %s", id)
	s.notifyObservers()
	return nil
}

func (s *transferService) AddObserver(observer TransferObserver) {
	s.observers = append(s.observers, observer)
}

func (s *transferService) notifyObservers() {
	for _, o := range s.observers {
		o.OnTransfersChanged()
	}
}
