package ledger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xa11ce")
	bob   = common.HexToAddress("0xb0b")
	token = common.HexToAddress("0x70ce")
)

func TestClaimableAccumulation(t *testing.T) {
	l := NewClaimableLedger()
	fp := common.HexToHash("0x01")

	e, err := l.Add(alice, token, fp, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, uint64(1), e.Repeat)
	e, err = l.Add(alice, token, fp, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, uint64(2), e.Repeat)
	require.Len(t, l.List(alice), 1)

	left, err := l.Remove(alice, fp)
	require.NoError(t, err)
	require.Equal(t, uint64(1), left)
	require.Len(t, l.List(alice), 1)

	left, err = l.Remove(alice, fp)
	require.NoError(t, err)
	require.Equal(t, uint64(0), left)
	require.Empty(t, l.List(alice))

	_, err = l.Remove(alice, fp)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClaimableInvalidAmount(t *testing.T) {
	l := NewClaimableLedger()
	_, err := l.Add(alice, token, common.HexToHash("0x01"), big.NewInt(0))
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = l.Add(alice, token, common.HexToHash("0x01"), nil)
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Equal(t, 0, l.Len())
}

func TestClaimableListPerBeneficiary(t *testing.T) {
	l := NewClaimableLedger()
	amount := big.NewInt(5)
	_, err := l.Add(bob, token, common.HexToHash("0x02"), amount)
	require.NoError(t, err)
	_, err = l.Add(alice, token, common.HexToHash("0x03"), amount)
	require.NoError(t, err)
	_, err = l.Add(alice, token, common.HexToHash("0x01"), amount)
	require.NoError(t, err)

	// the ledger owns its copy of the amount
	amount.SetInt64(6)

	list := l.List(alice)
	require.Len(t, list, 2)
	require.Equal(t, common.HexToHash("0x01"), list[0].Fingerprint)
	require.Equal(t, common.HexToHash("0x03"), list[1].Fingerprint)
	require.Equal(t, big.NewInt(5), list[0].Amount)
	require.Len(t, l.List(bob), 1)
	require.Empty(t, l.List(common.HexToAddress("0x99")))
	require.Len(t, l.All(), 3)
}

func TestClaimableRemoveByAmount(t *testing.T) {
	l := NewClaimableLedger()
	_, err := l.Add(alice, token, common.HexToHash("0x02"), big.NewInt(10))
	require.NoError(t, err)
	_, err = l.Add(alice, token, common.HexToHash("0x01"), big.NewInt(20))
	require.NoError(t, err)

	_, err = l.RemoveByAmount(alice, big.NewInt(30))
	require.ErrorIs(t, err, ErrNotFound)

	removed, err := l.RemoveByAmount(alice, big.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x02"), removed.Fingerprint)
	require.Len(t, l.List(alice), 1)
}

func TestClaimableFromEntries(t *testing.T) {
	l := NewClaimableLedger()
	_, err := l.Add(alice, token, common.HexToHash("0x01"), big.NewInt(1))
	require.NoError(t, err)
	_, err = l.Add(alice, token, common.HexToHash("0x01"), big.NewInt(1))
	require.NoError(t, err)
	_, err = l.Add(bob, token, common.HexToHash("0x01"), big.NewInt(2))
	require.NoError(t, err)

	restored, err := NewClaimableLedgerFromEntries(l.All())
	require.NoError(t, err)
	require.Equal(t, l.All(), restored.All())

	_, err = NewClaimableLedgerFromEntries([]ClaimableEntry{{Beneficiary: alice, Amount: big.NewInt(1)}})
	require.ErrorIs(t, err, ErrInvalidEntry)
	_, err = NewClaimableLedgerFromEntries([]ClaimableEntry{{Beneficiary: alice, Amount: big.NewInt(0), Repeat: 1}})
	require.ErrorIs(t, err, ErrInvalidAmount)
}
