package types

import (
	"math/big"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// OutgoingMessage is a message waiting to be picked up by L1
type OutgoingMessage struct {
	Key         common.Hash    `json:"key"`
	Index       hexutil.Uint64 `json:"index"`
	Fingerprint common.Hash    `json:"fingerprint"`
}

// IncomingMessage is an announced message not consumed yet
type IncomingMessage struct {
	Fingerprint common.Hash    `json:"fingerprint"`
	Count       hexutil.Uint64 `json:"count"`
}

// ClaimableEntry is an amount owed to an L1 beneficiary
type ClaimableEntry struct {
	Beneficiary common.Address `json:"beneficiary"`
	Token       common.Address `json:"token"`
	Fingerprint common.Hash    `json:"fingerprint"`
	Amount      *hexutil.Big   `json:"amount"`
	Repeat      hexutil.Uint64 `json:"repeat"`
}

func NewOutgoingMessages(msgs []ledger.OutgoingMessage) []OutgoingMessage {
	res := make([]OutgoingMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, OutgoingMessage{
			Key:         m.Key,
			Index:       hexutil.Uint64(m.Index),
			Fingerprint: m.Fingerprint,
		})
	}
	return res
}

func NewIncomingMessages(entries []ledger.IncomingEntry) []IncomingMessage {
	res := make([]IncomingMessage, 0, len(entries))
	for _, e := range entries {
		res = append(res, IncomingMessage{
			Fingerprint: e.Fingerprint,
			Count:       hexutil.Uint64(e.Count),
		})
	}
	return res
}

func NewClaimableEntry(e ledger.ClaimableEntry) ClaimableEntry {
	return ClaimableEntry{
		Beneficiary: e.Beneficiary,
		Token:       e.Token,
		Fingerprint: e.Fingerprint,
		Amount:      (*hexutil.Big)(e.Amount),
		Repeat:      hexutil.Uint64(e.Repeat),
	}
}

func NewClaimableEntries(entries []ledger.ClaimableEntry) []ClaimableEntry {
	res := make([]ClaimableEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, NewClaimableEntry(e))
	}
	return res
}

// ToBigs converts hex encoded params, nil items stay nil so the codec rejects them
func ToBigs(values []*hexutil.Big) []*big.Int {
	res := make([]*big.Int, 0, len(values))
	for _, v := range values {
		res = append(res, v.ToInt())
	}
	return res
}

func FromBigs(values []*big.Int) []*hexutil.Big {
	res := make([]*hexutil.Big, 0, len(values))
	for _, v := range values {
		res = append(res, (*hexutil.Big)(v))
	}
	return res
}
