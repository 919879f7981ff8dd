package staticsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/nimbuswallet/nimbusd/internal/core/domain"
	"github.com/nimbuswallet/nimbusd/internal/core/ports"
)

const eventQueueMaxSize = 100

// State is the JSON shape of a full wallet state served by the static
// sources.
type State struct {
	OnchainBalanceSat uint64              `json:"onchainBalanceSat"`
	Utxos             []ports.Utxo        `json:"utxos"`
	Transactions      []ports.TxInfo      `json:"transactions"`
	Channels          []domain.Channel    `json:"channels"`
	ClaimableSat      uint64              `json:"claimableSat"`
	Payments          []ports.PaymentInfo `json:"payments"`
	Orders            []ports.OrderInfo   `json:"orders"`
}

// Service serves a fixed wallet state as the chain, node and LSP
// collaborators. It backs local development runs and integration tests where
// no live Electrum backend or node runtime is available. State can be
// swapped at runtime and node events emitted by hand.
type Service struct {
	lock   sync.RWMutex
	state  State
	events chan ports.NodeEvent
}

// NewService returns a Service serving the given state.
func NewService(state State) *Service {
	return &Service{
		state:  state,
		events: make(chan ports.NodeEvent, eventQueueMaxSize),
	}
}

// NewServiceFromFile returns a Service serving the state decoded from the
// given JSON file.
func NewServiceFromFile(path string) (*Service, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	var state State
	if err := json.Unmarshal(buf, &state); err != nil {
		return nil, fmt.Errorf("decoding state file: %w", err)
	}
	return NewService(state), nil
}

// SetState replaces the served state.
func (s *Service) SetState(state State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = state
}

func (s *Service) OnchainBalanceSat(_ context.Context) (uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.OnchainBalanceSat, nil
}

func (s *Service) Utxos(_ context.Context) ([]ports.Utxo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Utxos, nil
}

func (s *Service) Transactions(_ context.Context) ([]ports.TxInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Transactions, nil
}

func (s *Service) Channels(_ context.Context) ([]domain.Channel, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Channels, nil
}

func (s *Service) Payments(_ context.Context) ([]ports.PaymentInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Payments, nil
}

func (s *Service) ClaimableBalanceSat(_ context.Context) (uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.ClaimableSat, nil
}

func (s *Service) Orders(_ context.Context) ([]ports.OrderInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Orders, nil
}

func (s *Service) EventChannel() <-chan ports.NodeEvent {
	return s.events
}

// EmitChannelOpened pushes a channel-ready notification on the event queue.
func (s *Service) EmitChannelOpened(channelID, fundingTxID string) {
	s.events <- ports.ChannelEvent{
		EventType:   ports.ChannelOpened,
		ChannelID:   channelID,
		FundingTxID: fundingTxID,
	}
}

// EmitChannelClosed pushes a channel-closed notification on the event queue.
func (s *Service) EmitChannelClosed(channelID string) {
	s.events <- ports.ChannelEvent{
		EventType: ports.ChannelClosed,
		ChannelID: channelID,
	}
}

// Close shuts the event queue down.
func (s *Service) Close() {
	s.events <- ports.QuitEvent{}
	close(s.events)
}

var (
	_ ports.ChainSource = (*Service)(nil)
	_ ports.NodeSource  = (*Service)(nil)
	_ ports.LspSource   = (*Service)(nil)
)
