package ledger

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/0xPolygon/msgbridge/message"
	"github.com/ethereum/go-ethereum/common"
)

// ClaimableEntry is an amount that left local custody but could not be registered as
// an outgoing message. Repeat counts the failures registered for the same message.
type ClaimableEntry struct {
	Beneficiary common.Address      `json:"beneficiary"`
	Token       common.Address      `json:"token"`
	Fingerprint message.Fingerprint `json:"fingerprint"`
	Amount      *big.Int            `json:"amount"`
	Repeat      uint64              `json:"repeat"`
}

func (e ClaimableEntry) String() string {
	return fmt.Sprintf("beneficiary: %s, token: %s, fingerprint: %s, amount: %s, repeat: %d",
		e.Beneficiary.Hex(), e.Token.Hex(), e.Fingerprint.Hex(), e.Amount, e.Repeat)
}

type claimableKey struct {
	beneficiary common.Address
	fingerprint message.Fingerprint
}

// ClaimableLedger keeps the amounts owed to L1 beneficiaries keyed by
// (beneficiary, fingerprint).
// Not thread safe!
type ClaimableLedger struct {
	entries map[claimableKey]*ClaimableEntry
}

func NewClaimableLedger() *ClaimableLedger {
	return &ClaimableLedger{
		entries: make(map[claimableKey]*ClaimableEntry),
	}
}

// NewClaimableLedgerFromEntries rebuilds a ledger, typically from a snapshot
func NewClaimableLedgerFromEntries(entries []ClaimableEntry) (*ClaimableLedger, error) {
	l := NewClaimableLedger()
	for _, e := range entries {
		if e.Amount == nil || e.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("claimable %s: %w", e, ErrInvalidAmount)
		}
		if e.Repeat == 0 {
			return nil, fmt.Errorf("claimable %s with zero repeat: %w", e, ErrInvalidEntry)
		}
		k := claimableKey{beneficiary: e.Beneficiary, fingerprint: e.Fingerprint}
		if _, ok := l.entries[k]; ok {
			return nil, fmt.Errorf("duplicated claimable %s: %w", e, ErrInvalidEntry)
		}
		entry := e
		entry.Amount = new(big.Int).Set(e.Amount)
		l.entries[k] = &entry
	}
	return l, nil
}

// Add registers an amount owed to the beneficiary. Registering the same
// (beneficiary, fingerprint) again only increases its repeat count.
func (l *ClaimableLedger) Add(
	beneficiary, token common.Address, fp message.Fingerprint, amount *big.Int,
) (ClaimableEntry, error) {
	if amount == nil || amount.Sign() <= 0 {
		return ClaimableEntry{}, ErrInvalidAmount
	}
	k := claimableKey{beneficiary: beneficiary, fingerprint: fp}
	if e, ok := l.entries[k]; ok {
		e.Repeat++
		return copyClaimable(e), nil
	}
	e := &ClaimableEntry{
		Beneficiary: beneficiary,
		Token:       token,
		Fingerprint: fp,
		Amount:      new(big.Int).Set(amount),
		Repeat:      1,
	}
	l.entries[k] = e
	return copyClaimable(e), nil
}

func (l *ClaimableLedger) Get(beneficiary common.Address, fp message.Fingerprint) (ClaimableEntry, bool) {
	e, ok := l.entries[claimableKey{beneficiary: beneficiary, fingerprint: fp}]
	if !ok {
		return ClaimableEntry{}, false
	}
	return copyClaimable(e), true
}

// List returns the entries of the beneficiary sorted by fingerprint
func (l *ClaimableLedger) List(beneficiary common.Address) []ClaimableEntry {
	res := []ClaimableEntry{}
	for k, e := range l.entries {
		if k.beneficiary == beneficiary {
			res = append(res, copyClaimable(e))
		}
	}
	sortClaimables(res)
	return res
}

// Remove takes one repetition of the entry out. The entry is deleted when no
// repetitions are left. It returns the remaining repeat count.
func (l *ClaimableLedger) Remove(beneficiary common.Address, fp message.Fingerprint) (uint64, error) {
	k := claimableKey{beneficiary: beneficiary, fingerprint: fp}
	e, ok := l.entries[k]
	if !ok {
		return 0, fmt.Errorf("claimable of %s for message %s: %w", beneficiary.Hex(), fp.Hex(), ErrNotFound)
	}
	if e.Repeat <= 1 {
		delete(l.entries, k)
		return 0, nil
	}
	e.Repeat--
	return e.Repeat, nil
}

// RemoveByAmount removes one repetition of the first entry of the beneficiary, in
// fingerprint order, whose amount matches
func (l *ClaimableLedger) RemoveByAmount(beneficiary common.Address, amount *big.Int) (ClaimableEntry, error) {
	if amount == nil || amount.Sign() <= 0 {
		return ClaimableEntry{}, ErrInvalidAmount
	}
	for _, e := range l.List(beneficiary) {
		if e.Amount.Cmp(amount) == 0 {
			if _, err := l.Remove(beneficiary, e.Fingerprint); err != nil {
				return ClaimableEntry{}, err
			}
			return e, nil
		}
	}
	return ClaimableEntry{}, fmt.Errorf("claimable of %s with amount %s: %w", beneficiary.Hex(), amount, ErrNotFound)
}

func (l *ClaimableLedger) Len() int {
	return len(l.entries)
}

// All returns every entry sorted by beneficiary and fingerprint
func (l *ClaimableLedger) All() []ClaimableEntry {
	res := make([]ClaimableEntry, 0, len(l.entries))
	for _, e := range l.entries {
		res = append(res, copyClaimable(e))
	}
	sortClaimables(res)
	return res
}

func copyClaimable(e *ClaimableEntry) ClaimableEntry {
	c := *e
	c.Amount = new(big.Int).Set(e.Amount)
	return c
}

func sortClaimables(entries []ClaimableEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if c := bytes.Compare(entries[i].Beneficiary[:], entries[j].Beneficiary[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(entries[i].Fingerprint[:], entries[j].Fingerprint[:]) < 0
	})
}
