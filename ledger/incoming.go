package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/0xPolygon/msgbridge/message"
)

// IncomingEntry is a pending inbound message and how many times it was announced
type IncomingEntry struct {
	Fingerprint message.Fingerprint `json:"fingerprint"`
	Count       uint64              `json:"count"`
}

// IncomingLedger is the multiset of inbound messages announced by the relayer and
// not consumed yet. An entry exists only while its counter is positive.
// Not thread safe!
type IncomingLedger struct {
	entries map[message.Fingerprint]uint64
}

func NewIncomingLedger() *IncomingLedger {
	return &IncomingLedger{
		entries: make(map[message.Fingerprint]uint64),
	}
}

// NewIncomingLedgerFromEntries rebuilds a ledger, typically from a snapshot
func NewIncomingLedgerFromEntries(entries []IncomingEntry) (*IncomingLedger, error) {
	l := NewIncomingLedger()
	for _, e := range entries {
		if e.Count == 0 {
			return nil, fmt.Errorf("incoming message %s with zero count: %w", e.Fingerprint.Hex(), ErrInvalidEntry)
		}
		if _, ok := l.entries[e.Fingerprint]; ok {
			return nil, fmt.Errorf("duplicated incoming message %s: %w", e.Fingerprint.Hex(), ErrInvalidEntry)
		}
		l.entries[e.Fingerprint] = e.Count
	}
	return l, nil
}

// Announce registers one more occurrence of the message and returns the new count
func (l *IncomingLedger) Announce(fp message.Fingerprint) uint64 {
	l.entries[fp]++
	return l.entries[fp]
}

// Consume removes one occurrence of the message. The entry is deleted when no
// occurrences are left.
func (l *IncomingLedger) Consume(fp message.Fingerprint) error {
	count, ok := l.entries[fp]
	if !ok {
		return fmt.Errorf("incoming message %s: %w", fp.Hex(), ErrNotFound)
	}
	if count <= 1 {
		delete(l.entries, fp)
		return nil
	}
	l.entries[fp] = count - 1
	return nil
}

// Count returns the pending occurrences of the message, 0 if unknown
func (l *IncomingLedger) Count(fp message.Fingerprint) uint64 {
	return l.entries[fp]
}

func (l *IncomingLedger) Len() int {
	return len(l.entries)
}

// Entries returns the pending messages sorted by fingerprint
func (l *IncomingLedger) Entries() []IncomingEntry {
	res := make([]IncomingEntry, 0, len(l.entries))
	for fp, count := range l.entries {
		res = append(res, IncomingEntry{Fingerprint: fp, Count: count})
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Fingerprint[:], res[j].Fingerprint[:]) < 0
	})
	return res
}
