package messaging

import "github.com/ethereum/go-ethereum/common"

type Config struct {
	// Controllers are the addresses allowed to announce incoming messages, drain the
	// outgoing messages and run maintenance calls. They are only used to seed an
	// empty state, once a snapshot exists the persisted list prevails.
	Controllers []common.Address `mapstructure:"Controllers"`
}
