// Package balances keeps the local balances of the wrapped token
package balances

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInsufficientBalance is returned when debiting more than the account holds
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for non positive amounts
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Book is an in memory balance book
type Book struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	supply   *big.Int
}

func NewBook() *Book {
	return &Book{
		balances: make(map[common.Address]*big.Int),
		supply:   big.NewInt(0),
	}
}

// Debit takes amount out of the account
func (b *Book) Debit(account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	balance, ok := b.balances[account]
	if !ok || balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account %s, requested %s", ErrInsufficientBalance, account.Hex(), amount)
	}
	balance.Sub(balance, amount)
	if balance.Sign() == 0 {
		delete(b.balances, account)
	}
	return nil
}

// Credit adds amount to the account
func (b *Book) Credit(account common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	balance, ok := b.balances[account]
	if !ok {
		balance = new(big.Int)
		b.balances[account] = balance
	}
	balance.Add(balance, amount)
	return nil
}

func (b *Book) BalanceOf(account common.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if balance, ok := b.balances[account]; ok {
		return new(big.Int).Set(balance)
	}
	return big.NewInt(0)
}

// TotalSupply returns what has been minted minus what has been burnt
func (b *Book) TotalSupply() *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.supply)
}

// Mint credits the account and grows the supply. Together with Burn it makes the
// book usable as the token ledger of the bridge when no remote one is configured.
func (b *Book) Mint(ctx context.Context, to common.Address, amount *big.Int) error {
	if err := b.Credit(to, amount); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.supply.Add(b.supply, amount)
	return nil
}

// Burn shrinks the supply. The bridge debits the holder before burning so the
// balance is not touched here.
func (b *Book) Burn(ctx context.Context, from common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.supply.Cmp(amount) < 0 {
		return fmt.Errorf("%w: burning %s out of a supply of %s", ErrInsufficientBalance, amount, b.supply)
	}
	b.supply.Sub(b.supply, amount)
	return nil
}
