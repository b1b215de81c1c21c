package bridgestate

import "github.com/0xPolygon/msgbridge/config/types"

type Config struct {
	// DBPath path of the sqlite DB where the snapshots are stored
	DBPath string `mapstructure:"DBPath"`
	// Interval is how often the state is saved, only if it changed since the last save
	Interval types.Duration `mapstructure:"Interval"`
	// Keep is how many snapshots are retained in the DB
	Keep uint64 `mapstructure:"Keep"`
	// MaxOutgoingMessages is the max number of live messages in the outgoing store
	MaxOutgoingMessages int `mapstructure:"MaxOutgoingMessages"`
}
