package bridgestate

import (
	"math/big"
	"testing"

	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := populatedState(t)
	snap := s.Snapshot()
	require.Equal(t, SnapshotVersion, snap.Version)
	require.Len(t, snap.Nonces, 3)
	require.Len(t, snap.Incoming, 2)
	require.Len(t, snap.MintStatuses, 2)
	require.Len(t, snap.Outgoing, 2)
	require.Equal(t, uint64(4), snap.LastIndex)
	require.Len(t, snap.Claimable, 1)
	require.Len(t, snap.Controllers, 2)

	encoded, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(encoded)
	require.NoError(t, err)

	restored := New(ledger.DefaultMaxOutgoingMessages)
	require.NoError(t, restored.Restore(decoded))
	reencoded, err := restored.Snapshot().Encode()
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)

	err = restored.View(func(l *Ledgers) error {
		require.True(t, l.Nonces.Exists(big.NewInt(2)))
		require.Equal(t, uint64(2), l.Incoming.Count(common.HexToHash("0x01")))
		status, ok := l.MintStatuses.Get(common.HexToHash("0x03"))
		require.True(t, ok)
		require.Equal(t, ledger.MintStatusConsumedNotMinted, status)
		require.Equal(t, uint64(4), l.Outgoing.LastIndex())
		e, ok := l.Claimable.Get(beneficiary, common.HexToHash("0x06"))
		require.True(t, ok)
		require.Equal(t, uint64(2), e.Repeat)
		require.Equal(t, 0, e.Amount.Cmp(big.NewInt(100)))
		require.True(t, l.Controllers.IsController(controller))
		return nil
	})
	require.NoError(t, err)

	// the sequence keeps growing from the restored index
	err = restored.Update(func(l *Ledgers) error {
		k, err := l.Outgoing.Store(common.HexToHash("0x07"))
		require.NoError(t, err)
		m, ok := l.Outgoing.Get(k)
		require.True(t, ok)
		require.Equal(t, uint64(5), m.Index)
		return nil
	})
	require.NoError(t, err)
}

func TestSnapshotEmptyState(t *testing.T) {
	s := New(ledger.DefaultMaxOutgoingMessages)
	encoded, err := s.Snapshot().Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(encoded)
	require.NoError(t, err)

	restored := populatedState(t)
	require.NoError(t, restored.Restore(decoded))
	reencoded, err := restored.Snapshot().Encode()
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestRestoreIsAllOrNothing(t *testing.T) {
	s := populatedState(t)
	before, err := s.Snapshot().Encode()
	require.NoError(t, err)

	testCases := []struct {
		name   string
		modify func(snap *Snapshot)
		err    error
	}{
		{
			name:   "unsupported version",
			modify: func(snap *Snapshot) { snap.Version = 2 },
			err:    ErrUnsupportedSnapshotVersion,
		},
		{
			name:   "duplicated nonce",
			modify: func(snap *Snapshot) { snap.Nonces = append(snap.Nonces, big.NewInt(1)) },
			err:    ledger.ErrInvalidEntry,
		},
		{
			name: "outgoing key not matching",
			modify: func(snap *Snapshot) {
				snap.Outgoing[0].Fingerprint = common.HexToHash("0xff")
			},
			err: ledger.ErrInvalidEntry,
		},
		{
			name:   "sequence behind the entries",
			modify: func(snap *Snapshot) { snap.LastIndex = 1 },
			err:    ledger.ErrInvalidEntry,
		},
		{
			name: "claimable without amount",
			modify: func(snap *Snapshot) {
				snap.Claimable[0].Amount = big.NewInt(0)
			},
			err: ledger.ErrInvalidAmount,
		},
		{
			name: "duplicated controller",
			modify: func(snap *Snapshot) {
				snap.Controllers = append(snap.Controllers, snap.Controllers[0])
			},
			err: ledger.ErrInvalidEntry,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap := populatedState(t).Snapshot()
			// every ledger but the broken one is valid and would have been replaced
			snap.Incoming = nil
			tc.modify(snap)
			require.ErrorIs(t, s.Restore(snap), tc.err)

			after, err := s.Snapshot().Encode()
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}

	require.ErrorIs(t, s.Restore(nil), ErrNilSnapshot)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte{0x01, 0x02})
	require.Error(t, err)

	snap := New(1).Snapshot()
	snap.Version = 0
	encoded, err := snap.Encode()
	require.NoError(t, err)
	_, err = DecodeSnapshot(encoded)
	require.ErrorIs(t, err, ErrUnsupportedSnapshotVersion)
}
