package tokenbridge

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageInProgress is returned when minting a message that is already being processed
	ErrMessageInProgress = errors.New("message already being processed")
	// ErrOperationInProgress is returned when the caller has another burn or withdrawal in flight
	ErrOperationInProgress = errors.New("concurrent operation in progress")
	// ErrInvalidPayload is returned when the payload of an inbound message is not [recipient, amount]
	ErrInvalidPayload = errors.New("invalid mint payload")
	// ErrInvalidAmount is returned for non positive amounts
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrMovedToClaimable is returned when the outgoing message could not be sent after the
	// funds left the account. The amount is kept in the claimable ledger.
	ErrMovedToClaimable = errors.New("outgoing message not sent, amount moved to claimable")
	// ErrUnknownToken is returned when retrying a claimable entry of a token the bridge does not handle
	ErrUnknownToken = errors.New("unknown token")
	// ErrNotConsumed is returned when the messaging service answered the consume call with false
	ErrNotConsumed = errors.New("message not consumed")
	// ErrConsumeOutcomeUnknown is returned when the consume call failed without a
	// rejection. The message stays consuming until a controller resolves it.
	ErrConsumeOutcomeUnknown = errors.New("outcome of the consume call unknown")
	// ErrNothingToResolve is returned when resolving a message that is not consuming
	ErrNothingToResolve = errors.New("message is not consuming")
)

// RemoteCallError is a failed call to a remote collaborator. The remote side effect
// may or may not have happened.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
