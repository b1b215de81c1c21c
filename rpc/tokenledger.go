package rpc

import (
	"time"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TOKENLEDGER is the namespace of the token ledger service
const TOKENLEDGER = "tokenledger"

// TokenLedgerEndpoints serves the in memory token ledger so other bridge instances
// can use it as their remote ledger
type TokenLedgerEndpoints struct {
	endpoints
	ledger TokenLedgerer
}

func NewTokenLedgerEndpoints(
	logger *log.Logger, writeTimeout, readTimeout time.Duration, ledger TokenLedgerer,
) *TokenLedgerEndpoints {
	return &TokenLedgerEndpoints{
		endpoints: newEndpoints(logger, writeTimeout, readTimeout),
		ledger:    ledger,
	}
}

func (t *TokenLedgerEndpoints) Mint(to common.Address, amount *hexutil.Big) (interface{}, rpc.Error) {
	ctx, cancel := t.writeCtx("tokenledger_mint")
	defer cancel()
	if err := t.ledger.Mint(ctx, to, amount.ToInt()); err != nil {
		return nil, toRPCError("mint", err)
	}
	return true, nil
}

func (t *TokenLedgerEndpoints) Burn(from common.Address, amount *hexutil.Big) (interface{}, rpc.Error) {
	ctx, cancel := t.writeCtx("tokenledger_burn")
	defer cancel()
	if err := t.ledger.Burn(ctx, from, amount.ToInt()); err != nil {
		return nil, toRPCError("burn", err)
	}
	return true, nil
}

func (t *TokenLedgerEndpoints) BalanceOf(account common.Address) (interface{}, rpc.Error) {
	_, cancel := t.readCtx("tokenledger_balance_of")
	defer cancel()
	return (*hexutil.Big)(t.ledger.BalanceOf(account)), nil
}

func (t *TokenLedgerEndpoints) TotalSupply() (interface{}, rpc.Error) {
	_, cancel := t.readCtx("tokenledger_total_supply")
	defer cancel()
	return (*hexutil.Big)(t.ledger.TotalSupply()), nil
}
