package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/msgbridge/ledger"
	"github.com/0xPolygon/msgbridge/message"
	"github.com/0xPolygon/msgbridge/messaging"
	"github.com/0xPolygon/msgbridge/rpc/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var jSONRPCCall = rpc.JSONRPCCall

// ResponseError is an error answered by the remote endpoint. Unlike a transport
// error it means the call reached the remote side and was processed.
type ResponseError struct {
	Method  string
	Code    int
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("error in the response calling %s: %d %s", e.Method, e.Code, e.Message)
}

// Client wraps the endpoints of a remote bridge
type Client struct {
	url string
}

// NewClient returns a client ready to be used
func NewClient(url string) *Client {
	return &Client{
		url: url,
	}
}

func (c *Client) call(result interface{}, method string, params ...interface{}) error {
	response, err := jSONRPCCall(c.url, method, params...)
	if err != nil {
		return err
	}
	if response.Error != nil {
		return &ResponseError{Method: method, Code: response.Error.Code, Message: response.Error.Message}
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(response.Result, result)
}

// ConsumeMessage consumes an inbound message on the remote messaging service. The
// rejections of the service are returned as the messaging errors, any other error
// leaves the outcome of the call unknown.
func (c *Client) ConsumeMessage(
	_ context.Context, receiver, sender, nonce *big.Int, payload []*big.Int,
) (bool, error) {
	var result bool
	err := c.call(&result, "bridge_consumeMessage",
		(*hexutil.Big)(receiver), (*hexutil.Big)(sender), (*hexutil.Big)(nonce), types.FromBigs(payload))
	if err != nil {
		return false, messagingError(err)
	}
	return result, nil
}

func messagingError(err error) error {
	var rerr *ResponseError
	if !errors.As(err, &rerr) {
		return err
	}
	switch rerr.Code {
	case rpc.NotFoundErrorCode:
		return fmt.Errorf("%w: %w", messaging.ErrInvalidMessage, err)
	case types.AlreadyConsumedErrorCode:
		return fmt.Errorf("%w: %w", messaging.ErrAlreadyConsumed, err)
	case types.HaltedErrorCode:
		return fmt.Errorf("%w: %w", messaging.ErrInconsistentState, err)
	default:
		return err
	}
}

// SendMessage stores an outbound message on the remote messaging service
func (c *Client) SendMessage(_ context.Context, sender, receiver *big.Int, payload []*big.Int) (message.Key, error) {
	var result message.Key
	err := c.call(&result, "bridge_sendMessage", (*hexutil.Big)(sender), (*hexutil.Big)(receiver), types.FromBigs(payload))
	return result, err
}

// AnnounceMessage registers an inbound message, caller must be a controller
func (c *Client) AnnounceMessage(
	caller common.Address, sender, receiver, nonce *big.Int, payload []*big.Int,
) (message.Fingerprint, error) {
	var result message.Fingerprint
	err := c.call(&result, "bridge_announceMessage",
		caller, (*hexutil.Big)(sender), (*hexutil.Big)(receiver), (*hexutil.Big)(nonce), types.FromBigs(payload))
	return result, err
}

// GetMessages returns the outbound messages waiting to be picked up
func (c *Client) GetMessages() ([]types.OutgoingMessage, error) {
	var result []types.OutgoingMessage
	err := c.call(&result, "bridge_getMessages")
	return result, err
}

// RemoveMessages drops delivered outbound messages, caller must be a controller
func (c *Client) RemoveMessages(caller common.Address, keys []message.Key) (uint64, error) {
	var result hexutil.Uint64
	err := c.call(&result, "bridge_removeMessages", caller, keys)
	return uint64(result), err
}

func (c *Client) NonceExists(nonce *big.Int) (bool, error) {
	var result bool
	err := c.call(&result, "bridge_nonceExists", (*hexutil.Big)(nonce))
	return result, err
}

// GetMessageStatus returns the mint status of an inbound message, nil if it is not being minted
func (c *Client) GetMessageStatus(nonce *big.Int, payload []*big.Int) (*ledger.MintStatus, error) {
	var result *ledger.MintStatus
	err := c.call(&result, "bridge_getMessageStatus", (*hexutil.Big)(nonce), types.FromBigs(payload))
	return result, err
}

func (c *Client) ClaimableGetAll(beneficiary common.Address) ([]types.ClaimableEntry, error) {
	var result []types.ClaimableEntry
	err := c.call(&result, "bridge_claimableGetAll", beneficiary)
	return result, err
}

// ResolveMintStatus settles a message left consuming, caller must be a controller
func (c *Client) ResolveMintStatus(
	caller common.Address, nonce *big.Int, payload []*big.Int,
) (*ledger.MintStatus, error) {
	var result *ledger.MintStatus
	err := c.call(&result, "bridge_resolveMintStatus", caller, (*hexutil.Big)(nonce), types.FromBigs(payload))
	return result, err
}
