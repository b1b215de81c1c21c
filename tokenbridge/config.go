package tokenbridge

import "github.com/ethereum/go-ethereum/common"

type Config struct {
	// LocalAddress identifies this execution environment. It is the receiver of the
	// inbound messages and the sender of the outgoing ones.
	LocalAddress common.Address `mapstructure:"LocalAddress"`
	// L1TokenBridge is the L1 contract that sends the mint messages and receives the burn ones
	L1TokenBridge common.Address `mapstructure:"L1TokenBridge"`
	// L1NativeBridge is the L1 contract that receives the withdrawal messages
	L1NativeBridge common.Address `mapstructure:"L1NativeBridge"`
	// Token identifies the wrapped token on the claimable entries of burns
	Token common.Address `mapstructure:"Token"`
	// NativeToken identifies the native asset on the claimable entries of withdrawals
	NativeToken common.Address `mapstructure:"NativeToken"`
	// MessagingURL is the URL of a remote messaging service. If empty the messaging
	// service of this process is used.
	MessagingURL string `mapstructure:"MessagingURL"`
	// TokenLedgerURL is the URL of the remote token ledger. If empty an in memory
	// ledger is used.
	TokenLedgerURL string `mapstructure:"TokenLedgerURL"`
}
