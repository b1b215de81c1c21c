package messaging

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/0xPolygon/msgbridge/bridgestate"
	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	controller = common.HexToAddress("0xc0")
	stranger   = common.HexToAddress("0x51")
	l1Sender   = big.NewInt(0x11)
	localID    = big.NewInt(0x22)
	payload    = []*big.Int{big.NewInt(0xbe), big.NewInt(1000)}
)

func newTestService(t *testing.T, maxOutgoing int) *Service {
	t.Helper()
	state := bridgestate.New(maxOutgoing, controller)
	return New(log.WithFields("module", "messaging"), state)
}

func TestAnnounceConsume(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)
	nonce := big.NewInt(1)

	fp, err := s.AnnounceMessage(controller, l1Sender, localID, nonce, payload)
	require.NoError(t, err)
	expected, err := message.InboundFingerprint(l1Sender, localID, nonce, payload)
	require.NoError(t, err)
	require.Equal(t, expected, fp)
	require.Len(t, s.GetIncomingMessages(), 1)

	ok, err := s.ConsumeMessage(ctx, localID, l1Sender, nonce, payload)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, s.GetIncomingMessages())
	exists, err := s.NonceExists(nonce)
	require.NoError(t, err)
	require.True(t, exists)

	// same nonce is a replay even if the message is announced again
	_, err = s.AnnounceMessage(controller, l1Sender, localID, nonce, payload)
	require.NoError(t, err)
	ok, err = s.ConsumeMessage(ctx, localID, l1Sender, nonce, payload)
	require.ErrorIs(t, err, ErrAlreadyConsumed)
	require.False(t, ok)
	require.False(t, s.IsHalted())
}

func TestConsumeNotAnnounced(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)

	_, err := s.ConsumeMessage(ctx, localID, l1Sender, big.NewInt(1), payload)
	require.ErrorIs(t, err, ErrInvalidMessage)
	exists, err := s.NonceExists(big.NewInt(1))
	require.NoError(t, err)
	require.False(t, exists)
	_, err = s.NonceExists(big.NewInt(-1))
	require.ErrorIs(t, err, message.ErrNegativeField)

	// announced with another nonce
	_, err = s.AnnounceMessage(controller, l1Sender, localID, big.NewInt(2), payload)
	require.NoError(t, err)
	_, err = s.ConsumeMessage(ctx, localID, l1Sender, big.NewInt(1), payload)
	require.ErrorIs(t, err, ErrInvalidMessage)
	require.Len(t, s.GetIncomingMessages(), 1)
}

func TestConsumeInvalidFields(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)
	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)

	_, err := s.ConsumeMessage(ctx, localID, l1Sender, tooBig, payload)
	require.ErrorIs(t, err, message.ErrFieldOverflow)
	_, err = s.AnnounceMessage(controller, l1Sender, localID, big.NewInt(1), []*big.Int{big.NewInt(-1)})
	require.ErrorIs(t, err, message.ErrNegativeField)
	require.Empty(t, s.GetIncomingMessages())
	require.Empty(t, s.GetNonces())
}

func TestRepeatedAnnounceAllowsOneConsumePerNonce(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)

	for _, n := range []int64{1, 2} {
		_, err := s.AnnounceMessage(controller, l1Sender, localID, big.NewInt(n), payload)
		require.NoError(t, err)
		_, err = s.AnnounceMessage(controller, l1Sender, localID, big.NewInt(n), payload)
		require.NoError(t, err)
	}
	for _, n := range []int64{2, 1} {
		ok, err := s.ConsumeMessage(ctx, localID, l1Sender, big.NewInt(n), payload)
		require.NoError(t, err)
		require.True(t, ok)
	}
	nonces := s.GetNonces()
	require.Len(t, nonces, 2)
	require.Equal(t, 0, nonces[0].Cmp(big.NewInt(1)))
	require.Equal(t, 0, nonces[1].Cmp(big.NewInt(2)))
}

func TestSendRemoveMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 2)

	k1, err := s.SendMessage(ctx, localID, l1Sender, payload)
	require.NoError(t, err)
	k2, err := s.SendMessage(ctx, localID, l1Sender, payload)
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)

	_, err = s.SendMessage(ctx, localID, l1Sender, payload)
	require.ErrorIs(t, err, ledger.ErrCapacityExceeded)

	msgs := s.GetMessages()
	require.Len(t, msgs, 2)
	require.Equal(t, k1, msgs[0].Key)
	require.Equal(t, uint64(1), msgs[0].Index)

	_, err = s.RemoveMessages(stranger, []message.Key{k1})
	require.ErrorIs(t, err, bridgestate.ErrUnauthorized)

	removed, err := s.RemoveMessages(controller, []message.Key{k1, k1})
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	k3, err := s.SendMessage(ctx, localID, l1Sender, payload)
	require.NoError(t, err)
	msgs = s.GetMessages()
	require.Equal(t, []message.Key{k2, k3}, []message.Key{msgs[0].Key, msgs[1].Key})
	require.Equal(t, uint64(3), msgs[1].Index)
}

func TestAnnounceUnauthorized(t *testing.T) {
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)
	_, err := s.AnnounceMessage(stranger, l1Sender, localID, big.NewInt(1), payload)
	require.ErrorIs(t, err, bridgestate.ErrUnauthorized)
	require.Empty(t, s.GetIncomingMessages())
}

func TestControllers(t *testing.T) {
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)

	_, err := s.AddController(stranger, stranger)
	require.ErrorIs(t, err, bridgestate.ErrUnauthorized)

	added, err := s.AddController(controller, stranger)
	require.NoError(t, err)
	require.True(t, added)
	require.Len(t, s.Controllers(), 2)

	removed, err := s.RemoveController(stranger, controller)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = s.RemoveController(stranger, stranger)
	require.ErrorIs(t, err, ErrLastController)
	require.Equal(t, []common.Address{stranger}, s.Controllers())
}

func TestHaltedService(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, ledger.DefaultMaxOutgoingMessages)
	s.halt(&FatalError{Op: "test", Err: errors.New("broken ledger")})
	require.True(t, s.IsHalted())

	_, err := s.AnnounceMessage(controller, l1Sender, localID, big.NewInt(1), payload)
	require.ErrorIs(t, err, ErrInconsistentState)
	_, err = s.ConsumeMessage(ctx, localID, l1Sender, big.NewInt(1), payload)
	require.ErrorIs(t, err, ErrInconsistentState)
	_, err = s.SendMessage(ctx, localID, l1Sender, payload)
	require.ErrorIs(t, err, ErrInconsistentState)
	_, err = s.RemoveMessages(controller, nil)
	require.ErrorIs(t, err, ErrInconsistentState)
}

func TestFatalError(t *testing.T) {
	inner := errors.New("inner")
	err := error(&FatalError{Op: "consume message", Err: inner})
	require.ErrorIs(t, err, inner)
	require.Equal(t, "fatal error on consume message: inner", err.Error())
}
