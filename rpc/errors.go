package rpc

import (
	"errors"
	"fmt"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/messaging"
	"github.com/0xPolygon/msgbridge/rpc/types"
)

var (
	// ErrMessagingDisabled is returned by the messaging endpoints when the component is not running
	ErrMessagingDisabled = errors.New("messaging component is not enabled")
	// ErrTokenBridgeDisabled is returned by the token bridge endpoints when the component is not running
	ErrTokenBridgeDisabled = errors.New("tokenbridge component is not enabled")
	// ErrReservedAddress is returned when sending or consuming a message on behalf of the
	// token bridge running in this process
	ErrReservedAddress = errors.New("address is reserved to the token bridge")
)

// toRPCError maps the errors of the services to a JSON-RPC error keeping the
// original message
func toRPCError(op string, err error) rpc.Error {
	code := rpc.DefaultErrorCode
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, messaging.ErrInvalidMessage):
		code = rpc.NotFoundErrorCode
	case errors.Is(err, messaging.ErrAlreadyConsumed):
		code = types.AlreadyConsumedErrorCode
	case errors.Is(err, messaging.ErrInconsistentState):
		code = types.HaltedErrorCode
	case errors.Is(err, ErrReservedAddress):
		code = types.ReservedAddressErrorCode
	}
	return rpc.NewRPCError(code, fmt.Sprintf("%s failed: %s", op, err))
}
