package messaging

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConsumed is returned when the nonce of the message was already used
	ErrAlreadyConsumed = errors.New("message already consumed")
	// ErrInvalidMessage is returned when consuming a message that was never announced
	ErrInvalidMessage = errors.New("invalid message")
	// ErrInconsistentState is returned by every call once the service halted
	ErrInconsistentState = errors.New("state is inconsistent, the messaging service is halted")
	// ErrLastController is returned when removing the only controller left
	ErrLastController = errors.New("the last controller can not be removed")
)

// FatalError is an invariant violation. The service halts when it finds one instead
// of carrying on over an inconsistent state.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error on %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
