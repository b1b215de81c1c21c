package bridgestate

import (
	"errors"
	"math/big"
	"testing"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	controller  = common.HexToAddress("0xc0")
	beneficiary = common.HexToAddress("0xbe")
	token       = common.HexToAddress("0x70")
)

// populatedState returns a state where every ledger has content
func populatedState(t *testing.T) *BridgeState {
	t.Helper()
	s := New(ledger.DefaultMaxOutgoingMessages, controller)
	err := s.Update(func(l *Ledgers) error {
		for _, n := range []int64{3, 1, 2} {
			if _, err := l.Nonces.Record(big.NewInt(n)); err != nil {
				return err
			}
		}
		l.Incoming.Announce(common.HexToHash("0x01"))
		l.Incoming.Announce(common.HexToHash("0x01"))
		l.Incoming.Announce(common.HexToHash("0x02"))
		l.MintStatuses.Set(common.HexToHash("0x03"), ledger.MintStatusConsumedNotMinted)
		l.MintStatuses.Set(common.HexToHash("0x04"), ledger.MintStatusConsuming)
		var keys []common.Hash
		for i := 0; i < 4; i++ {
			k, err := l.Outgoing.Store(common.HexToHash("0x05"))
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}
		l.Outgoing.RemoveBatch(keys[:2])
		if _, err := l.Claimable.Add(beneficiary, token, common.HexToHash("0x06"), big.NewInt(100)); err != nil {
			return err
		}
		if _, err := l.Claimable.Add(beneficiary, token, common.HexToHash("0x06"), big.NewInt(100)); err != nil {
			return err
		}
		l.Controllers.Add(common.HexToAddress("0xc1"))
		return nil
	})
	require.NoError(t, err)
	return s
}

func TestUpdateView(t *testing.T) {
	s := New(10, controller)
	require.True(t, s.IsController(controller))
	g := s.Generation()

	errFoo := errors.New("foo")
	err := s.Update(func(l *Ledgers) error {
		l.Incoming.Announce(common.HexToHash("0x01"))
		return errFoo
	})
	require.ErrorIs(t, err, errFoo)
	require.Greater(t, s.Generation(), g)

	g = s.Generation()
	err = s.View(func(l *Ledgers) error {
		require.Equal(t, uint64(1), l.Incoming.Count(common.HexToHash("0x01")))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, g, s.Generation())
}

func TestCheckController(t *testing.T) {
	s := New(10, controller)
	require.NoError(t, s.CheckController(controller))
	require.ErrorIs(t, s.CheckController(beneficiary), ErrUnauthorized)
}
