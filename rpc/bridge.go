package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/0xPolygon/msgbridge/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	// BRIDGE is the namespace of the bridge service
	BRIDGE    = "bridge"
	meterName = "github.com/0xPolygon/msgbridge/rpc"
)

// endpoints holds what every service needs to serve a call
type endpoints struct {
	logger       *log.Logger
	meter        metric.Meter
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func newEndpoints(logger *log.Logger, writeTimeout, readTimeout time.Duration) endpoints {
	return endpoints{
		logger:       logger,
		meter:        otel.Meter(meterName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// BridgeEndpoints contains implementations for the "bridge" RPC endpoints.
// Callers are identified by the address they pass, the endpoints are meant to be
// served on a trusted network only.
type BridgeEndpoints struct {
	endpoints
	messaging Messager
	bridge    TokenBridger
	// reserved are the addresses no RPC caller can send or consume messages for,
	// the ones of the token bridge sharing the messaging service of the process
	reserved []*big.Int
}

// NewBridgeEndpoints returns BridgeEndpoints. messaging or bridge can be nil if the
// component is not running, their endpoints return an error then.
func NewBridgeEndpoints(
	logger *log.Logger,
	writeTimeout time.Duration,
	readTimeout time.Duration,
	messaging Messager,
	bridge TokenBridger,
	reserved ...common.Address,
) *BridgeEndpoints {
	words := make([]*big.Int, 0, len(reserved))
	for _, addr := range reserved {
		words = append(words, message.AddressToWord(addr))
	}
	return &BridgeEndpoints{
		endpoints: newEndpoints(logger, writeTimeout, readTimeout),
		messaging: messaging,
		bridge:    bridge,
		reserved:  words,
	}
}

func (b *BridgeEndpoints) checkNotReserved(id *hexutil.Big) error {
	for _, r := range b.reserved {
		if id != nil && id.ToInt().Cmp(r) == 0 {
			return fmt.Errorf("%w: %s", ErrReservedAddress, id)
		}
	}
	return nil
}

func (b *endpoints) count(ctx context.Context, name string) {
	c, merr := b.meter.Int64Counter(name)
	if merr != nil {
		b.logger.Warnf("failed to create %s counter: %s", name, merr)
		return
	}
	c.Add(ctx, 1)
}

func (b *endpoints) readCtx(name string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), b.readTimeout)
	b.count(ctx, name)
	return ctx, cancel
}

func (b *endpoints) writeCtx(name string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), b.writeTimeout)
	b.count(ctx, name)
	return ctx, cancel
}

func (b *BridgeEndpoints) checkMessaging() rpc.Error {
	if b.messaging == nil {
		return rpc.NewRPCError(rpc.DefaultErrorCode, ErrMessagingDisabled.Error())
	}
	return nil
}

func (b *BridgeEndpoints) checkBridge() rpc.Error {
	if b.bridge == nil {
		return rpc.NewRPCError(rpc.DefaultErrorCode, ErrTokenBridgeDisabled.Error())
	}
	return nil
}

// SendMessage stores a message for L1 and returns the key to remove it once delivered
// curl -X POST http://localhost:5576/ -H "Content-Type: application/json" \
// -d '{"method":"bridge_sendMessage", "params":["0x1", "0x2", ["0x3"]], "id":1}'
func (b *BridgeEndpoints) SendMessage(
	sender, receiver *hexutil.Big, payload []*hexutil.Big,
) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("send_message")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}

	if err := b.checkNotReserved(sender); err != nil {
		return nil, toRPCError("send message", err)
	}

	key, err := b.messaging.SendMessage(ctx, sender.ToInt(), receiver.ToInt(), types.ToBigs(payload))
	if err != nil {
		return nil, toRPCError("send message", err)
	}
	return key, nil
}

// ConsumeMessage consumes an announced message sent from L1
func (b *BridgeEndpoints) ConsumeMessage(
	receiver, sender, nonce *hexutil.Big, payload []*hexutil.Big,
) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("consume_message")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}

	if err := b.checkNotReserved(receiver); err != nil {
		return nil, toRPCError("consume message", err)
	}

	ok, err := b.messaging.ConsumeMessage(ctx, receiver.ToInt(), sender.ToInt(), nonce.ToInt(), types.ToBigs(payload))
	if err != nil {
		return nil, toRPCError("consume message", err)
	}
	return ok, nil
}

// AnnounceMessage registers a message sent from L1. Only for controllers.
func (b *BridgeEndpoints) AnnounceMessage(
	caller common.Address, sender, receiver, nonce *hexutil.Big, payload []*hexutil.Big,
) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("announce_message")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}

	fp, err := b.messaging.AnnounceMessage(caller, sender.ToInt(), receiver.ToInt(), nonce.ToInt(), types.ToBigs(payload))
	if err != nil {
		return nil, toRPCError("announce message", err)
	}
	return fp, nil
}

// GetMessages returns the messages waiting to be picked up by L1
func (b *BridgeEndpoints) GetMessages() (interface{}, rpc.Error) {
	_, cancel := b.readCtx("get_messages")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	return types.NewOutgoingMessages(b.messaging.GetMessages()), nil
}

// RemoveMessages drops the messages already picked up by L1. Only for controllers.
func (b *BridgeEndpoints) RemoveMessages(caller common.Address, keys []common.Hash) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("remove_messages")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}

	removed, err := b.messaging.RemoveMessages(caller, keys)
	if err != nil {
		return nil, toRPCError("remove messages", err)
	}
	return hexutil.Uint64(removed), nil
}

// GetIncomingMessages returns the announced messages not consumed yet
func (b *BridgeEndpoints) GetIncomingMessages() (interface{}, rpc.Error) {
	_, cancel := b.readCtx("get_incoming_messages")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	return types.NewIncomingMessages(b.messaging.GetIncomingMessages()), nil
}

func (b *BridgeEndpoints) GetNonces() (interface{}, rpc.Error) {
	_, cancel := b.readCtx("get_nonces")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	return types.FromBigs(b.messaging.GetNonces()), nil
}

func (b *BridgeEndpoints) NonceExists(nonce *hexutil.Big) (interface{}, rpc.Error) {
	_, cancel := b.readCtx("nonce_exists")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	exists, err := b.messaging.NonceExists(nonce.ToInt())
	if err != nil {
		return nil, toRPCError("nonce exists", err)
	}
	return exists, nil
}

func (b *BridgeEndpoints) AddController(caller, addr common.Address) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("add_controller")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	added, err := b.messaging.AddController(caller, addr)
	if err != nil {
		return nil, toRPCError("add controller", err)
	}
	return added, nil
}

func (b *BridgeEndpoints) RemoveController(caller, addr common.Address) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("remove_controller")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	removed, err := b.messaging.RemoveController(caller, addr)
	if err != nil {
		return nil, toRPCError("remove controller", err)
	}
	return removed, nil
}

func (b *BridgeEndpoints) GetControllers() (interface{}, rpc.Error) {
	_, cancel := b.readCtx("get_controllers")
	defer cancel()
	if rerr := b.checkMessaging(); rerr != nil {
		return nil, rerr
	}
	return b.messaging.Controllers(), nil
}

// GetMessageStatus returns the mint status of an inbound message, null if it is not
// being minted
func (b *BridgeEndpoints) GetMessageStatus(nonce *hexutil.Big, payload []*hexutil.Big) (interface{}, rpc.Error) {
	_, cancel := b.readCtx("get_message_status")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	status, err := b.bridge.GetMessageStatus(nonce.ToInt(), types.ToBigs(payload))
	if err != nil {
		return nil, toRPCError("get message status", err)
	}
	return status, nil
}

// Mint consumes the message sent by the L1 token bridge and mints its amount
func (b *BridgeEndpoints) Mint(nonce *hexutil.Big, payload []*hexutil.Big) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("mint")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	if err := b.bridge.Mint(ctx, nonce.ToInt(), types.ToBigs(payload)); err != nil {
		return nil, toRPCError("mint", err)
	}
	return true, nil
}

// Burn burns amount from caller and sends it to the beneficiary on L1
func (b *BridgeEndpoints) Burn(caller, beneficiary common.Address, amount *hexutil.Big) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("burn")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	key, err := b.bridge.Burn(ctx, caller, beneficiary, amount.ToInt())
	if err != nil {
		return nil, toRPCError("burn", err)
	}
	return key, nil
}

// Withdraw sends amount of the native asset from caller to the beneficiary on L1
func (b *BridgeEndpoints) Withdraw(caller, beneficiary common.Address, amount *hexutil.Big) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("withdraw")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	key, err := b.bridge.Withdraw(ctx, caller, beneficiary, amount.ToInt())
	if err != nil {
		return nil, toRPCError("withdraw", err)
	}
	return key, nil
}

func (b *BridgeEndpoints) ClaimableGetAll(beneficiary common.Address) (interface{}, rpc.Error) {
	_, cancel := b.readCtx("claimable_get_all")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	return types.NewClaimableEntries(b.bridge.ClaimableGetAll(beneficiary)), nil
}

// RemoveClaimable removes one repetition of a claimable entry. If fingerprint is
// null the first entry matching amount is removed. Only for controllers.
func (b *BridgeEndpoints) RemoveClaimable(
	caller, beneficiary common.Address, fingerprint *common.Hash, amount *hexutil.Big,
) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("remove_claimable")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	if fingerprint == nil {
		removed, err := b.bridge.RemoveClaimableByAmount(caller, beneficiary, amount.ToInt())
		if err != nil {
			return nil, toRPCError("remove claimable", err)
		}
		return types.NewClaimableEntry(removed), nil
	}
	left, err := b.bridge.RemoveClaimable(caller, beneficiary, *fingerprint)
	if err != nil {
		return nil, toRPCError("remove claimable", err)
	}
	return hexutil.Uint64(left), nil
}

// RetryClaimable sends again the message of a claimable entry. Only for controllers.
func (b *BridgeEndpoints) RetryClaimable(
	caller, beneficiary common.Address, fingerprint common.Hash,
) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("retry_claimable")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	key, err := b.bridge.RetryClaimable(ctx, caller, beneficiary, fingerprint)
	if err != nil {
		return nil, toRPCError("retry claimable", err)
	}
	return key, nil
}

// ClearInFlight releases a stuck in flight flag. Only for controllers.
func (b *BridgeEndpoints) ClearInFlight(caller, account common.Address) (interface{}, rpc.Error) {
	_, cancel := b.writeCtx("clear_in_flight")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	cleared, err := b.bridge.ClearInFlight(caller, account)
	if err != nil {
		return nil, toRPCError("clear in flight", err)
	}
	return cleared, nil
}

// ResolveMintStatus settles a message left consuming by a consume call with an
// unknown outcome. Only for controllers.
func (b *BridgeEndpoints) ResolveMintStatus(
	caller common.Address, nonce *hexutil.Big, payload []*hexutil.Big,
) (interface{}, rpc.Error) {
	ctx, cancel := b.writeCtx("resolve_mint_status")
	defer cancel()
	if rerr := b.checkBridge(); rerr != nil {
		return nil, rerr
	}
	status, err := b.bridge.ResolveMintStatus(ctx, caller, nonce.ToInt(), types.ToBigs(payload))
	if err != nil {
		return nil, toRPCError("resolve mint status", err)
	}
	return status, nil
}
