package common

const (
	// MESSAGING name to identify the messaging component
	MESSAGING = "messaging"
	// TOKENBRIDGE name to identify the token bridge component (implies messaging unless
	// a remote messaging URL is configured)
	TOKENBRIDGE = "tokenbridge"
	// RPC name to identify the rpc component
	RPC = "rpc"
)
