package bridgestate

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// SnapshotVersion is the version of the snapshot layout written by this code
const SnapshotVersion uint64 = 1

var (
	// ErrUnsupportedSnapshotVersion is returned when restoring a snapshot written with another layout
	ErrUnsupportedSnapshotVersion = errors.New("unsupported snapshot version")
	// ErrNilSnapshot is returned when restoring nothing
	ErrNilSnapshot = errors.New("nil snapshot")
)

// Snapshot is the whole state of the bridge at a given time. Every list is sorted
// so the encoding of two equal states is the same.
type Snapshot struct {
	Version      uint64
	Nonces       []*big.Int
	Incoming     []ledger.IncomingEntry
	MintStatuses []ledger.MintStatusEntry
	Outgoing     []ledger.OutgoingMessage
	LastIndex    uint64
	Claimable    []ledger.ClaimableEntry
	Controllers  []common.Address
}

// Encode serialises the snapshot with RLP
func (s *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := rlp.Encode(&buf, s); err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot parses an encoded snapshot. The version is checked, the content is
// validated when restored.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := rlp.DecodeBytes(data, s); err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshotVersion, s.Version)
	}
	return s, nil
}

// Snapshot captures the current state
func (s *BridgeState) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// SnapshotWithGeneration captures the current state along with its generation
func (s *BridgeState) SnapshotWithGeneration() (*Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), s.generation
}

func (s *BridgeState) snapshot() *Snapshot {
	l := &s.ledgers
	return &Snapshot{
		Version:      SnapshotVersion,
		Nonces:       l.Nonces.List(),
		Incoming:     l.Incoming.Entries(),
		MintStatuses: l.MintStatuses.Entries(),
		Outgoing:     l.Outgoing.List(),
		LastIndex:    l.Outgoing.LastIndex(),
		Claimable:    l.Claimable.All(),
		Controllers:  l.Controllers.List(),
	}
}

// Restore replaces the whole state with the snapshot. Either every ledger is
// replaced or, if the snapshot is not valid, the state is left untouched.
func (s *BridgeState) Restore(snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedSnapshotVersion, snap.Version)
	}
	restored, err := s.ledgersFromSnapshot(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers = *restored
	s.generation++
	return nil
}

func (s *BridgeState) ledgersFromSnapshot(snap *Snapshot) (*Ledgers, error) {
	nonces := ledger.NewNonceRegistry()
	for _, n := range snap.Nonces {
		added, err := nonces.Record(n)
		if err != nil {
			return nil, fmt.Errorf("error restoring nonces: %w", err)
		}
		if !added {
			return nil, fmt.Errorf("error restoring nonces: duplicated nonce %s: %w", n, ledger.ErrInvalidEntry)
		}
	}
	incoming, err := ledger.NewIncomingLedgerFromEntries(snap.Incoming)
	if err != nil {
		return nil, fmt.Errorf("error restoring incoming messages: %w", err)
	}
	statuses, err := ledger.NewMintStatusLedgerFromEntries(snap.MintStatuses)
	if err != nil {
		return nil, fmt.Errorf("error restoring mint statuses: %w", err)
	}
	outgoing, err := ledger.NewOutgoingStoreFromEntries(s.maxOutgoing, snap.LastIndex, snap.Outgoing)
	if err != nil {
		return nil, fmt.Errorf("error restoring outgoing messages: %w", err)
	}
	claimable, err := ledger.NewClaimableLedgerFromEntries(snap.Claimable)
	if err != nil {
		return nil, fmt.Errorf("error restoring claimable entries: %w", err)
	}
	controllers := ledger.NewControllers()
	for _, c := range snap.Controllers {
		if !controllers.Add(c) {
			return nil, fmt.Errorf("error restoring controllers: duplicated %s: %w", c.Hex(), ledger.ErrInvalidEntry)
		}
	}
	return &Ledgers{
		Nonces:       nonces,
		Incoming:     incoming,
		MintStatuses: statuses,
		Outgoing:     outgoing,
		Claimable:    claimable,
		Controllers:  controllers,
	}, nil
}
