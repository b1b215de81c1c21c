package ledger

import (
	"fmt"
	"math"
	"sort"

	"github.com/0xPolygon/msgbridge/message"
)

// DefaultMaxOutgoingMessages is the default bound of live entries in the outgoing store
const DefaultMaxOutgoingMessages = 10_000

// OutgoingMessage is a message waiting to be picked up by L1
type OutgoingMessage struct {
	Key         message.Key         `json:"key"`
	Index       uint64              `json:"index"`
	Fingerprint message.Fingerprint `json:"fingerprint"`
}

// OutgoingStore is the content addressed set of messages sent to L1. Every stored
// message gets a new sequence index, indexes are never reused even after removals.
// Not thread safe!
type OutgoingStore struct {
	entries     map[message.Key]OutgoingMessage
	lastIndex   uint64
	maxMessages int
}

func NewOutgoingStore(maxMessages int) *OutgoingStore {
	return &OutgoingStore{
		entries:     make(map[message.Key]OutgoingMessage),
		maxMessages: maxMessages,
	}
}

// NewOutgoingStoreFromEntries rebuilds a store, typically from a snapshot. Every key is
// checked against its index and fingerprint.
func NewOutgoingStoreFromEntries(
	maxMessages int, lastIndex uint64, entries []OutgoingMessage,
) (*OutgoingStore, error) {
	s := NewOutgoingStore(maxMessages)
	s.lastIndex = lastIndex
	indexes := make(map[uint64]struct{}, len(entries))
	for _, e := range entries {
		if e.Index == 0 || e.Index > lastIndex {
			return nil, fmt.Errorf("outgoing message index %d out of range (last index %d): %w",
				e.Index, lastIndex, ErrInvalidEntry)
		}
		if message.ComputeKey(e.Index, e.Fingerprint) != e.Key {
			return nil, fmt.Errorf("outgoing message key %s does not match index %d: %w", e.Key.Hex(), e.Index, ErrInvalidEntry)
		}
		if _, ok := indexes[e.Index]; ok {
			return nil, fmt.Errorf("duplicated outgoing message index %d: %w", e.Index, ErrInvalidEntry)
		}
		indexes[e.Index] = struct{}{}
		s.entries[e.Key] = e
	}
	return s, nil
}

// Store assigns the next sequence index to the message and returns the key needed
// to remove it later
func (s *OutgoingStore) Store(fp message.Fingerprint) (message.Key, error) {
	if len(s.entries) >= s.maxMessages {
		return message.Key{}, fmt.Errorf("%d live messages: %w", len(s.entries), ErrCapacityExceeded)
	}
	if s.lastIndex == math.MaxUint64 {
		return message.Key{}, ErrSequenceExhausted
	}
	s.lastIndex++
	key := message.ComputeKey(s.lastIndex, fp)
	s.entries[key] = OutgoingMessage{
		Key:         key,
		Index:       s.lastIndex,
		Fingerprint: fp,
	}
	return key, nil
}

// RemoveBatch removes the given keys. Unknown keys are ignored so repeated removal
// requests are harmless. It returns how many messages were actually removed.
func (s *OutgoingStore) RemoveBatch(keys []message.Key) int {
	removed := 0
	for _, k := range keys {
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *OutgoingStore) Get(key message.Key) (OutgoingMessage, bool) {
	m, ok := s.entries[key]
	return m, ok
}

// List returns all the live messages ordered by sequence index
func (s *OutgoingStore) List() []OutgoingMessage {
	res := make([]OutgoingMessage, 0, len(s.entries))
	for _, m := range s.entries {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Index < res[j].Index
	})
	return res
}

func (s *OutgoingStore) Len() int {
	return len(s.entries)
}

// LastIndex returns the last sequence index handed out, 0 if none
func (s *OutgoingStore) LastIndex() uint64 {
	return s.lastIndex
}

func (s *OutgoingStore) MaxMessages() int {
	return s.maxMessages
}
