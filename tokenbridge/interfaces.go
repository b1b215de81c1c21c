package tokenbridge

import (
	"context"
	"math/big"

	"github.com/0xPolygon/msgbridge/message"
	"github.com/ethereum/go-ethereum/common"
)

// Messenger is the messaging service, local or remote. ConsumeMessage must return
// the messaging errors for the rejections, any other error is taken as a call whose
// outcome is unknown.
type Messenger interface {
	ConsumeMessage(ctx context.Context, receiver, sender, nonce *big.Int, payload []*big.Int) (bool, error)
	SendMessage(ctx context.Context, sender, receiver *big.Int, payload []*big.Int) (message.Key, error)
	NonceExists(nonce *big.Int) (bool, error)
}

// TokenLedger is the ledger of the wrapped token
type TokenLedger interface {
	Mint(ctx context.Context, to common.Address, amount *big.Int) error
	Burn(ctx context.Context, from common.Address, amount *big.Int) error
}

// Balances is the local balance book debited by burns and withdrawals. Calls are
// synchronous and never leave the process.
type Balances interface {
	Debit(account common.Address, amount *big.Int) error
	Credit(account common.Address, amount *big.Int) error
}

// Checkpointer saves the state of the bridge synchronously
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}
