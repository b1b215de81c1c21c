package types

// Error codes of the bridge endpoints on top of the cdk-rpc ones. Clients map them
// back to the errors of the services so callers can tell a rejection from a failed call.
const (
	// AlreadyConsumedErrorCode is returned when the nonce of an inbound message was already used
	AlreadyConsumedErrorCode = -32010
	// HaltedErrorCode is returned by every messaging call once the service halted
	HaltedErrorCode = -32011
	// ReservedAddressErrorCode is returned when a caller uses an address owned by the
	// token bridge of the process
	ReservedAddressErrorCode = -32012
)
