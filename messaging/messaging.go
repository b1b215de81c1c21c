// Package messaging implements the message bridge protocol: inbound messages are
// announced by a relayer and consumed once, outbound messages are stored until
// the relayer drains them.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/0xPolygon/msgbridge/bridgestate"
	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/ethereum/go-ethereum/common"
)

// Service is the messaging endpoint of the bridge
type Service struct {
	logger *log.Logger
	state  *bridgestate.BridgeState
	halted atomic.Bool
}

func New(logger *log.Logger, state *bridgestate.BridgeState) *Service {
	return &Service{
		logger: logger,
		state:  state,
	}
}

// IsHalted reports whether the service stopped after an invariant violation
func (s *Service) IsHalted() bool {
	return s.halted.Load()
}

func (s *Service) halt(err error) {
	if s.halted.CompareAndSwap(false, true) {
		s.logger.Errorf("halting messaging service: %v", err)
	}
}

// AnnounceMessage registers an inbound message so it can be consumed. Announcing the
// same message again allows consuming it one more time.
func (s *Service) AnnounceMessage(
	caller common.Address, sender, receiver, nonce *big.Int, payload []*big.Int,
) (message.Fingerprint, error) {
	if s.IsHalted() {
		return message.Fingerprint{}, ErrInconsistentState
	}
	if err := s.state.CheckController(caller); err != nil {
		return message.Fingerprint{}, err
	}
	fp, err := message.InboundFingerprint(sender, receiver, nonce, payload)
	if err != nil {
		return message.Fingerprint{}, err
	}
	var count uint64
	_ = s.state.Update(func(l *bridgestate.Ledgers) error {
		count = l.Incoming.Announce(fp)
		return nil
	})
	s.logger.Debugf("announced message %s with nonce %s, pending: %d", fp.Hex(), nonce, count)
	return fp, nil
}

// ConsumeMessage marks the inbound message as processed. The nonce is checked against
// the consumed ones and the message must have been announced.
func (s *Service) ConsumeMessage(
	ctx context.Context, receiver, sender, nonce *big.Int, payload []*big.Int,
) (bool, error) {
	if s.IsHalted() {
		return false, ErrInconsistentState
	}
	fp, err := message.InboundFingerprint(sender, receiver, nonce, payload)
	if err != nil {
		return false, err
	}
	err = s.state.Update(func(l *bridgestate.Ledgers) error {
		if l.Nonces.Exists(nonce) {
			return fmt.Errorf("%w: nonce %s", ErrAlreadyConsumed, nonce)
		}
		if l.Incoming.Count(fp) == 0 {
			return fmt.Errorf("%w: message %s not found", ErrInvalidMessage, fp.Hex())
		}
		// from here on nothing can fail unless the ledgers are broken
		if err := l.Incoming.Consume(fp); err != nil {
			return &FatalError{Op: "consume message", Err: err}
		}
		added, err := l.Nonces.Record(nonce)
		if err != nil {
			return &FatalError{Op: "record nonce", Err: err}
		}
		if !added {
			return &FatalError{Op: "record nonce", Err: fmt.Errorf("nonce %s recorded twice", nonce)}
		}
		return nil
	})
	if err != nil {
		var fatal *FatalError
		if errors.As(err, &fatal) {
			s.halt(err)
		}
		return false, err
	}
	s.logger.Debugf("consumed message %s with nonce %s", fp.Hex(), nonce)
	return true, nil
}

// SendMessage stores an outbound message and returns the key needed to remove it
// once L1 picked it up
func (s *Service) SendMessage(
	ctx context.Context, sender, receiver *big.Int, payload []*big.Int,
) (message.Key, error) {
	if s.IsHalted() {
		return message.Key{}, ErrInconsistentState
	}
	fp, err := message.OutboundFingerprint(sender, receiver, payload)
	if err != nil {
		return message.Key{}, err
	}
	var key message.Key
	err = s.state.Update(func(l *bridgestate.Ledgers) error {
		key, err = l.Outgoing.Store(fp)
		return err
	})
	if err != nil {
		return message.Key{}, err
	}
	s.logger.Debugf("stored outgoing message %s with key %s", fp.Hex(), key.Hex())
	return key, nil
}

// GetMessages returns the outgoing messages ordered by sequence index
func (s *Service) GetMessages() []ledger.OutgoingMessage {
	var res []ledger.OutgoingMessage
	_ = s.state.View(func(l *bridgestate.Ledgers) error {
		res = l.Outgoing.List()
		return nil
	})
	return res
}

// RemoveMessages drops the outgoing messages already picked up. Unknown keys are ignored.
func (s *Service) RemoveMessages(caller common.Address, keys []message.Key) (int, error) {
	if s.IsHalted() {
		return 0, ErrInconsistentState
	}
	if err := s.state.CheckController(caller); err != nil {
		return 0, err
	}
	var removed int
	_ = s.state.Update(func(l *bridgestate.Ledgers) error {
		removed = l.Outgoing.RemoveBatch(keys)
		return nil
	})
	s.logger.Debugf("removed %d of %d outgoing messages", removed, len(keys))
	return removed, nil
}

// GetIncomingMessages returns the announced messages not consumed yet
func (s *Service) GetIncomingMessages() []ledger.IncomingEntry {
	var res []ledger.IncomingEntry
	_ = s.state.View(func(l *bridgestate.Ledgers) error {
		res = l.Incoming.Entries()
		return nil
	})
	return res
}

func (s *Service) GetNonces() []*big.Int {
	var res []*big.Int
	_ = s.state.View(func(l *bridgestate.Ledgers) error {
		res = l.Nonces.List()
		return nil
	})
	return res
}

// NonceExists reports whether an inbound message with the nonce has been consumed
func (s *Service) NonceExists(nonce *big.Int) (bool, error) {
	if _, err := message.ToUint256(nonce); err != nil {
		return false, fmt.Errorf("invalid nonce: %w", err)
	}
	var exists bool
	_ = s.state.View(func(l *bridgestate.Ledgers) error {
		exists = l.Nonces.Exists(nonce)
		return nil
	})
	return exists, nil
}

func (s *Service) AddController(caller, addr common.Address) (bool, error) {
	if err := s.state.CheckController(caller); err != nil {
		return false, err
	}
	var added bool
	_ = s.state.Update(func(l *bridgestate.Ledgers) error {
		added = l.Controllers.Add(addr)
		return nil
	})
	if added {
		s.logger.Infof("controller %s added by %s", addr.Hex(), caller.Hex())
	}
	return added, nil
}

// RemoveController drops addr from the authorization list. The last controller can
// not be removed.
func (s *Service) RemoveController(caller, addr common.Address) (bool, error) {
	if err := s.state.CheckController(caller); err != nil {
		return false, err
	}
	var removed bool
	err := s.state.Update(func(l *bridgestate.Ledgers) error {
		if l.Controllers.Len() == 1 && l.Controllers.IsController(addr) {
			return ErrLastController
		}
		removed = l.Controllers.Remove(addr)
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Infof("controller %s removed by %s", addr.Hex(), caller.Hex())
	}
	return removed, nil
}

func (s *Service) Controllers() []common.Address {
	var res []common.Address
	_ = s.state.View(func(l *bridgestate.Ledgers) error {
		res = l.Controllers.List()
		return nil
	})
	return res
}
