// Package bridgestate owns the whole state of the bridge: the ledgers behind the
// messaging service and the token bridge, their snapshots and their persistence.
package bridgestate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUnauthorized is returned when a privileged operation is called by an address
// that is not in the authorization list
var ErrUnauthorized = errors.New("caller is not a controller")

// Ledgers gives access to the ledgers of the state. It must not be retained
// outside of the Update or View call that provided it.
type Ledgers struct {
	Nonces       *ledger.NonceRegistry
	Incoming     *ledger.IncomingLedger
	MintStatuses *ledger.MintStatusLedger
	Outgoing     *ledger.OutgoingStore
	Claimable    *ledger.ClaimableLedger
	Controllers  *ledger.Controllers
}

// BridgeState is the aggregate of all the ledgers. Mutations are serialised by a
// single lock that is only held during synchronous sections, never across
// remote calls.
type BridgeState struct {
	mu          sync.RWMutex
	ledgers     Ledgers
	maxOutgoing int
	// generation grows on every Update, it tells the persister whether there is
	// something new to save
	generation uint64
}

// New creates an empty state
func New(maxOutgoing int, controllers ...common.Address) *BridgeState {
	return &BridgeState{
		maxOutgoing: maxOutgoing,
		ledgers: Ledgers{
			Nonces:       ledger.NewNonceRegistry(),
			Incoming:     ledger.NewIncomingLedger(),
			MintStatuses: ledger.NewMintStatusLedger(),
			Outgoing:     ledger.NewOutgoingStore(maxOutgoing),
			Claimable:    ledger.NewClaimableLedger(),
			Controllers:  ledger.NewControllers(controllers...),
		},
	}
}

// Update runs fn holding the write lock. fn must only do synchronous work and
// must validate its input before mutating anything, there is no rollback.
func (s *BridgeState) Update(fn func(l *Ledgers) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return fn(&s.ledgers)
}

// View runs fn holding the read lock
func (s *BridgeState) View(fn func(l *Ledgers) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.ledgers)
}

// Generation returns a counter that changes every time the state may have changed
func (s *BridgeState) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// IsController is a shortcut to check the authorization list
func (s *BridgeState) IsController(addr common.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledgers.Controllers.IsController(addr)
}

// CheckController returns ErrUnauthorized if addr is not a controller
func (s *BridgeState) CheckController(addr common.Address) error {
	if !s.IsController(addr) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, addr.Hex())
	}
	return nil
}
