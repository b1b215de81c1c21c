package client

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TokenLedgerClient talks to a remote token ledger
type TokenLedgerClient struct {
	client *Client
}

func NewTokenLedgerClient(url string) *TokenLedgerClient {
	return &TokenLedgerClient{
		client: NewClient(url),
	}
}

func (c *TokenLedgerClient) Mint(_ context.Context, to common.Address, amount *big.Int) error {
	return c.client.call(nil, "tokenledger_mint", to, (*hexutil.Big)(amount))
}

func (c *TokenLedgerClient) Burn(_ context.Context, from common.Address, amount *big.Int) error {
	return c.client.call(nil, "tokenledger_burn", from, (*hexutil.Big)(amount))
}

func (c *TokenLedgerClient) BalanceOf(account common.Address) (*big.Int, error) {
	var result hexutil.Big
	if err := c.client.call(&result, "tokenledger_balanceOf", account); err != nil {
		return nil, err
	}
	return result.ToInt(), nil
}
