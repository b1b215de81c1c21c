package ledger

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/0xPolygon/msgbridge/message"
	"github.com/holiman/uint256"
)

// NonceRegistry is the set of nonces of the inbound messages already consumed.
// Nonces are never removed.
// Not thread safe!
type NonceRegistry struct {
	nonces map[uint256.Int]struct{}
}

func NewNonceRegistry() *NonceRegistry {
	return &NonceRegistry{
		nonces: make(map[uint256.Int]struct{}),
	}
}

// Exists reports whether the nonce has been recorded. A nonce that can not be
// encoded has never been recorded.
func (r *NonceRegistry) Exists(nonce *big.Int) bool {
	n, err := message.ToUint256(nonce)
	if err != nil {
		return false
	}
	_, ok := r.nonces[*n]
	return ok
}

// Record adds the nonce to the set. It returns false if it was already there.
func (r *NonceRegistry) Record(nonce *big.Int) (bool, error) {
	n, err := message.ToUint256(nonce)
	if err != nil {
		return false, fmt.Errorf("invalid nonce: %w", err)
	}
	if _, ok := r.nonces[*n]; ok {
		return false, nil
	}
	r.nonces[*n] = struct{}{}
	return true, nil
}

func (r *NonceRegistry) Len() int {
	return len(r.nonces)
}

// List returns the recorded nonces in ascending order
func (r *NonceRegistry) List() []*big.Int {
	sorted := make([]uint256.Int, 0, len(r.nonces))
	for n := range r.nonces {
		sorted = append(sorted, n)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Lt(&sorted[j])
	})
	res := make([]*big.Int, 0, len(sorted))
	for i := range sorted {
		res = append(res, sorted[i].ToBig())
	}
	return res
}
