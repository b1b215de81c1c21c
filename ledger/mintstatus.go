package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/0xPolygon/msgbridge/message"
)

// MintStatus tracks an inbound message between its remote consumption and the local mint
type MintStatus uint8

const (
	// MintStatusConsuming is set before the remote consume call is attempted
	MintStatusConsuming MintStatus = iota + 1
	// MintStatusConsumedNotMinted is set when the remote consume succeeded but the
	// mint failed. It is the marker that allows retrying the mint without consuming again.
	MintStatusConsumedNotMinted
)

func (s MintStatus) String() string {
	switch s {
	case MintStatusConsuming:
		return "consuming"
	case MintStatusConsumedNotMinted:
		return "consumed_not_minted"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

func (s MintStatus) IsValid() bool {
	return s == MintStatusConsuming || s == MintStatusConsumedNotMinted
}

func (s MintStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("mint status %d: %w", uint8(s), ErrInvalidEntry)
	}
	return []byte(s.String()), nil
}

func (s *MintStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case MintStatusConsuming.String():
		*s = MintStatusConsuming
	case MintStatusConsumedNotMinted.String():
		*s = MintStatusConsumedNotMinted
	default:
		return fmt.Errorf("mint status %q: %w", string(text), ErrInvalidEntry)
	}
	return nil
}

// MintStatusEntry is a message in the middle of the consume -> mint flow
type MintStatusEntry struct {
	Fingerprint message.Fingerprint `json:"fingerprint"`
	Status      MintStatus          `json:"status"`
}

// MintStatusLedger keeps the status of the inbound messages being minted. Absent
// entries are either unseen or already minted.
// Not thread safe!
type MintStatusLedger struct {
	statuses map[message.Fingerprint]MintStatus
}

func NewMintStatusLedger() *MintStatusLedger {
	return &MintStatusLedger{
		statuses: make(map[message.Fingerprint]MintStatus),
	}
}

// NewMintStatusLedgerFromEntries rebuilds a ledger, typically from a snapshot
func NewMintStatusLedgerFromEntries(entries []MintStatusEntry) (*MintStatusLedger, error) {
	l := NewMintStatusLedger()
	for _, e := range entries {
		if !e.Status.IsValid() {
			return nil, fmt.Errorf("message %s with status %s: %w", e.Fingerprint.Hex(), e.Status, ErrInvalidEntry)
		}
		if _, ok := l.statuses[e.Fingerprint]; ok {
			return nil, fmt.Errorf("duplicated status for message %s: %w", e.Fingerprint.Hex(), ErrInvalidEntry)
		}
		l.statuses[e.Fingerprint] = e.Status
	}
	return l, nil
}

func (l *MintStatusLedger) Get(fp message.Fingerprint) (MintStatus, bool) {
	s, ok := l.statuses[fp]
	return s, ok
}

func (l *MintStatusLedger) Set(fp message.Fingerprint, status MintStatus) {
	l.statuses[fp] = status
}

func (l *MintStatusLedger) Remove(fp message.Fingerprint) (MintStatus, bool) {
	s, ok := l.statuses[fp]
	if ok {
		delete(l.statuses, fp)
	}
	return s, ok
}

func (l *MintStatusLedger) Len() int {
	return len(l.statuses)
}

// Entries returns the statuses sorted by fingerprint
func (l *MintStatusLedger) Entries() []MintStatusEntry {
	res := make([]MintStatusEntry, 0, len(l.statuses))
	for fp, s := range l.statuses {
		res = append(res, MintStatusEntry{Fingerprint: fp, Status: s})
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Fingerprint[:], res[j].Fingerprint[:]) < 0
	})
	return res
}
