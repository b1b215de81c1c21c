package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xPolygon/msgbridge/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const testMandatoryVars = `
Controller = "0x00000000000000000000000000000000000000c0"
LocalAddress = "0x0000000000000000000000000000000000010ca1"
L1TokenBridge = "0x00000000000000000000000000000000000011b7"
L1NativeBridge = "0x00000000000000000000000000000000000011b8"
`

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := LoadFile([]FileData{{Name: "mandatory", Content: testMandatoryVars}}, "")
	require.NoError(t, err)

	require.Equal(t, log.EnvironmentDevelopment, cfg.Log.Environment)
	require.EqualValues(t, 5576, cfg.RPC.Port)
	require.Equal(t, time.Second*2, cfg.RPC.WriteTimeout.Duration)
	require.Equal(t, []common.Address{common.HexToAddress("0xc0")}, cfg.Messaging.Controllers)
	require.Equal(t, common.HexToAddress("0x10ca1"), cfg.TokenBridge.LocalAddress)
	require.Equal(t, common.HexToAddress("0x11b7"), cfg.TokenBridge.L1TokenBridge)
	require.Equal(t, common.HexToAddress("0x11b8"), cfg.TokenBridge.L1NativeBridge)
	require.Empty(t, cfg.TokenBridge.MessagingURL)
	require.Equal(t, "/tmp/msgbridge/bridgestate.sqlite", cfg.Snapshot.DBPath)
	require.Equal(t, time.Second*10, cfg.Snapshot.Interval.Duration)
	require.Equal(t, uint64(10), cfg.Snapshot.Keep)
	require.Equal(t, 10000, cfg.Snapshot.MaxOutgoingMessages)
}

func TestLoadMissingMandatoryVars(t *testing.T) {
	_, err := LoadFile(nil, "")
	require.ErrorIs(t, err, ErrMissingVars)
}

func TestLoadOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	override := `
PathRWData = "/data"
[Snapshot]
  Keep = 3
[TokenBridge]
  MessagingURL = "http://messaging:5576"
`
	cfg, err := LoadFile([]FileData{
		{Name: "mandatory", Content: testMandatoryVars},
		{Name: "override", Content: override},
	}, dir)
	require.NoError(t, err)
	require.Equal(t, "/data/bridgestate.sqlite", cfg.Snapshot.DBPath)
	require.Equal(t, uint64(3), cfg.Snapshot.Keep)
	require.Equal(t, "http://messaging:5576", cfg.TokenBridge.MessagingURL)

	saved, err := os.ReadFile(filepath.Join(dir, SaveConfigFileName))
	require.NoError(t, err)
	require.Contains(t, string(saved), `MessagingURL = "http://messaging:5576"`)
}

func TestReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Snapshot": {"DBPath": "/json/state.sqlite"}}`), 0600))

	files, err := readFiles([]string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)

	cfg, err := LoadFile(append([]FileData{{Name: "mandatory", Content: testMandatoryVars}}, files...), "")
	require.NoError(t, err)
	require.Equal(t, "/json/state.sqlite", cfg.Snapshot.DBPath)
}

func TestSaveConfigToString(t *testing.T) {
	cfg, err := LoadFile([]FileData{{Name: "mandatory", Content: testMandatoryVars}}, "")
	require.NoError(t, err)

	out, err := SaveConfigToString(*cfg)
	require.NoError(t, err)
	require.Contains(t, out, "0x0000000000000000000000000000000000010ca1")
}

func TestForbiddenField(t *testing.T) {
	require.NotNil(t, getForbiddenField("tokenbridge.l1bridge"))
	require.NotNil(t, getForbiddenField("snapshot.maxmessages"))
	require.Nil(t, getForbiddenField("snapshot.maxoutgoingmessages"))
}
