package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestMintStatusLedger(t *testing.T) {
	l := NewMintStatusLedger()
	fp := common.HexToHash("0x01")

	_, ok := l.Get(fp)
	require.False(t, ok)

	l.Set(fp, MintStatusConsuming)
	s, ok := l.Get(fp)
	require.True(t, ok)
	require.Equal(t, MintStatusConsuming, s)

	l.Set(fp, MintStatusConsumedNotMinted)
	s, ok = l.Remove(fp)
	require.True(t, ok)
	require.Equal(t, MintStatusConsumedNotMinted, s)
	require.Equal(t, 0, l.Len())

	_, ok = l.Remove(fp)
	require.False(t, ok)
}

func TestMintStatusText(t *testing.T) {
	for _, s := range []MintStatus{MintStatusConsuming, MintStatusConsumedNotMinted} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var decoded MintStatus
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, s, decoded)
	}
	_, err := MintStatus(0).MarshalText()
	require.ErrorIs(t, err, ErrInvalidEntry)
	var s MintStatus
	require.ErrorIs(t, s.UnmarshalText([]byte("minted")), ErrInvalidEntry)
}

func TestMintStatusLedgerFromEntries(t *testing.T) {
	a := common.HexToHash("0x0a")
	b := common.HexToHash("0x0b")
	entries := []MintStatusEntry{
		{Fingerprint: a, Status: MintStatusConsumedNotMinted},
		{Fingerprint: b, Status: MintStatusConsuming},
	}
	l, err := NewMintStatusLedgerFromEntries(entries)
	require.NoError(t, err)
	require.Equal(t, entries, l.Entries())

	_, err = NewMintStatusLedgerFromEntries([]MintStatusEntry{{Fingerprint: a, Status: 9}})
	require.ErrorIs(t, err, ErrInvalidEntry)
	_, err = NewMintStatusLedgerFromEntries(append(entries, entries[0]))
	require.ErrorIs(t, err, ErrInvalidEntry)
}
