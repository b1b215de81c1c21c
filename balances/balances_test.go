package balances

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var account = common.HexToAddress("0xacc")

func TestDebitCredit(t *testing.T) {
	b := NewBook()
	require.ErrorIs(t, b.Debit(account, big.NewInt(1)), ErrInsufficientBalance)

	require.NoError(t, b.Credit(account, big.NewInt(10)))
	require.NoError(t, b.Debit(account, big.NewInt(4)))
	require.Equal(t, "6", b.BalanceOf(account).String())
	require.ErrorIs(t, b.Debit(account, big.NewInt(7)), ErrInsufficientBalance)
	require.NoError(t, b.Debit(account, big.NewInt(6)))
	require.Equal(t, "0", b.BalanceOf(account).String())

	require.ErrorIs(t, b.Credit(account, big.NewInt(0)), ErrInvalidAmount)
	require.ErrorIs(t, b.Debit(account, nil), ErrInvalidAmount)
}

func TestMintBurn(t *testing.T) {
	ctx := context.Background()
	b := NewBook()

	require.NoError(t, b.Mint(ctx, account, big.NewInt(100)))
	require.Equal(t, "100", b.BalanceOf(account).String())
	require.Equal(t, "100", b.TotalSupply().String())

	require.NoError(t, b.Debit(account, big.NewInt(30)))
	require.NoError(t, b.Burn(ctx, account, big.NewInt(30)))
	require.Equal(t, "70", b.TotalSupply().String())
	require.Equal(t, "70", b.BalanceOf(account).String())

	require.ErrorIs(t, b.Burn(ctx, account, big.NewInt(71)), ErrInsufficientBalance)
}
