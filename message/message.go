// Package message implements the deterministic encoding and hashing of the
// messages exchanged with the L1 messaging contract.
package message

import (
	"errors"
	"fmt"
	"math/big"

	bridgecommon "github.com/0xPolygon/msgbridge/common"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/iden3/go-iden3-crypto/keccak256"
	sha256 "github.com/minio/sha256-simd"
)

const (
	// WordSize is the width every field is padded to before hashing
	WordSize = 32
)

var (
	// ErrFieldOverflow is returned when a field does not fit in a word
	ErrFieldOverflow = errors.New("message: field does not fit in 32 bytes")
	// ErrNegativeField is returned when a field is a negative integer
	ErrNegativeField = errors.New("message: field is negative")
	// ErrNilField is returned when a mandatory field is missing
	ErrNilField = errors.New("message: field is nil")
)

// Fingerprint identifies a cross-chain message
type Fingerprint = common.Hash

// Key identifies an entry of the outgoing message store
type Key = common.Hash

// Message is the logical content of a cross-chain message. Nonce is only set on
// messages travelling from L1.
type Message struct {
	Sender   *big.Int   `json:"sender"`
	Receiver *big.Int   `json:"receiver"`
	Nonce    *big.Int   `json:"nonce,omitempty"`
	Payload  []*big.Int `json:"payload"`
}

// Fingerprint hashes the message with the inbound layout if it carries a nonce and
// with the outbound layout otherwise.
func (m *Message) Fingerprint() (Fingerprint, error) {
	if m.Nonce != nil {
		return InboundFingerprint(m.Sender, m.Receiver, m.Nonce, m.Payload)
	}
	return OutboundFingerprint(m.Sender, m.Receiver, m.Payload)
}

// InboundFingerprint hashes a message sent from L1:
// keccak256(sender ‖ receiver ‖ nonce ‖ len(payload) ‖ payload...)
func InboundFingerprint(sender, receiver, nonce *big.Int, payload []*big.Int) (Fingerprint, error) {
	if nonce == nil {
		return Fingerprint{}, fmt.Errorf("nonce: %w", ErrNilField)
	}
	return fingerprint(payload, sender, receiver, nonce)
}

// OutboundFingerprint hashes a message sent to L1:
// keccak256(sender ‖ receiver ‖ len(payload) ‖ payload...)
func OutboundFingerprint(sender, receiver *big.Int, payload []*big.Int) (Fingerprint, error) {
	return fingerprint(payload, sender, receiver)
}

func fingerprint(payload []*big.Int, header ...*big.Int) (Fingerprint, error) {
	words := make([][]byte, 0, len(header)+1+len(payload))
	for i, field := range header {
		w, err := EncodeWord(field)
		if err != nil {
			return Fingerprint{}, fmt.Errorf("header field %d: %w", i, err)
		}
		words = append(words, w)
	}
	words = append(words, uint256.NewInt(uint64(len(payload))).PaddedBytes(WordSize))
	for i, item := range payload {
		w, err := EncodeWord(item)
		if err != nil {
			return Fingerprint{}, fmt.Errorf("payload item %d: %w", i, err)
		}
		words = append(words, w)
	}
	return common.BytesToHash(keccak256.Hash(words...)), nil
}

// EncodeWord left pads v to a 32 bytes big endian word. Values that do not fit are
// rejected instead of truncated.
func EncodeWord(v *big.Int) ([]byte, error) {
	u, err := ToUint256(v)
	if err != nil {
		return nil, err
	}
	return u.PaddedBytes(WordSize), nil
}

// ToUint256 converts v checking it is a non negative 256 bits integer
func ToUint256(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return nil, ErrNilField
	}
	if v.Sign() < 0 {
		return nil, ErrNegativeField
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrFieldOverflow
	}
	return u, nil
}

// ComputeKey derives the key of an outgoing message from its sequence index:
// sha256(index_be ‖ fingerprint)
func ComputeKey(index uint64, fp Fingerprint) Key {
	return sha256.Sum256(append(bridgecommon.Uint64ToBytes(index), fp.Bytes()...))
}

// AddressToWord widens an L1 address into a message field
func AddressToWord(addr common.Address) *big.Int {
	return new(big.Int).SetBytes(addr.Bytes())
}

// WordToAddress narrows a message field into an L1 address
func WordToAddress(w *big.Int) (common.Address, error) {
	if w == nil {
		return common.Address{}, ErrNilField
	}
	if w.Sign() < 0 {
		return common.Address{}, ErrNegativeField
	}
	if w.BitLen() > common.AddressLength*8 {
		return common.Address{}, fmt.Errorf("%s does not fit in an address: %w", w.String(), ErrFieldOverflow)
	}
	return common.BigToAddress(w), nil
}
