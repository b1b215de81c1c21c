package rpc

import (
	"context"
	"math/big"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/ethereum/go-ethereum/common"
)

type Messager interface {
	AnnounceMessage(
		caller common.Address, sender, receiver, nonce *big.Int, payload []*big.Int,
	) (message.Fingerprint, error)
	ConsumeMessage(ctx context.Context, receiver, sender, nonce *big.Int, payload []*big.Int) (bool, error)
	SendMessage(ctx context.Context, sender, receiver *big.Int, payload []*big.Int) (message.Key, error)
	GetMessages() []ledger.OutgoingMessage
	RemoveMessages(caller common.Address, keys []message.Key) (int, error)
	GetIncomingMessages() []ledger.IncomingEntry
	GetNonces() []*big.Int
	NonceExists(nonce *big.Int) (bool, error)
	AddController(caller, addr common.Address) (bool, error)
	RemoveController(caller, addr common.Address) (bool, error)
	Controllers() []common.Address
}

type TokenBridger interface {
	Mint(ctx context.Context, nonce *big.Int, payload []*big.Int) error
	Burn(ctx context.Context, caller, beneficiary common.Address, amount *big.Int) (message.Key, error)
	Withdraw(ctx context.Context, caller, beneficiary common.Address, amount *big.Int) (message.Key, error)
	GetMessageStatus(nonce *big.Int, payload []*big.Int) (*ledger.MintStatus, error)
	ClaimableGetAll(beneficiary common.Address) []ledger.ClaimableEntry
	RemoveClaimable(caller, beneficiary common.Address, fp message.Fingerprint) (uint64, error)
	RemoveClaimableByAmount(caller, beneficiary common.Address, amount *big.Int) (ledger.ClaimableEntry, error)
	RetryClaimable(ctx context.Context, caller, beneficiary common.Address, fp message.Fingerprint) (message.Key, error)
	ClearInFlight(caller, account common.Address) (bool, error)
	ResolveMintStatus(
		ctx context.Context, caller common.Address, nonce *big.Int, payload []*big.Int,
	) (*ledger.MintStatus, error)
}

type TokenLedgerer interface {
	Mint(ctx context.Context, to common.Address, amount *big.Int) error
	Burn(ctx context.Context, from common.Address, amount *big.Int) error
	BalanceOf(account common.Address) *big.Int
	TotalSupply() *big.Int
}
