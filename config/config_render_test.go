package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// renderCase renders files under env. An empty merged or rendered is not checked.
type renderCase struct {
	name     string
	files    []string
	env      map[string]string
	merged   string
	rendered string
	err      error
}

const testEnvPrefix = "MSGBRIDGE"

func TestConfigRenderMerge(t *testing.T) {
	cases := []renderCase{
		{
			name:     "file overrides the defaults of a section",
			files:    []string{"[Snapshot]\nKeep = 10\nInterval = \"10s\"\n", "[Snapshot]\nKeep = 3\n"},
			merged:   "\n[Snapshot]\n  Interval = \"10s\"\n  Keep = 3\n",
			rendered: "\n[Snapshot]\n  Interval = \"10s\"\n  Keep = 3\n",
		},
		{
			name: "sections spread over files",
			files: []string{
				"[Log]\nLevel = \"info\"\n",
				"[RPC]\nPort = 5576\n",
				"[Log]\nLevel = \"debug\"\n",
			},
			rendered: "\n[Log]\n  Level = \"debug\"\n\n[RPC]\n  Port = 5576\n",
		},
		{
			name:     "mandatory var left undefined",
			files:    []string{"[TokenBridge]\nLocalAddress = \"{{LocalAddress}}\"\n"},
			rendered: "\n[TokenBridge]\n  LocalAddress = \"{{LocalAddress}}\"\n",
			err:      ErrMissingVars,
		},
	}
	runRenderCases(t, cases)
}

func TestConfigRenderVars(t *testing.T) {
	cases := []renderCase{
		{
			name: "var composed in a path",
			files: []string{
				"PathRWData = \"/tmp/msgbridge\"\n",
				"[Snapshot]\nDBPath = \"{{PathRWData}}/bridgestate.sqlite\"\n",
			},
			rendered: "PathRWData = \"/tmp/msgbridge\"\n\n[Snapshot]\n  DBPath = \"/tmp/msgbridge/bridgestate.sqlite\"\n",
		},
		{
			name:     "unquoted var keeps the number type",
			files:    []string{"MaxOutgoing = 10000\n", "[Snapshot]\nMaxOutgoingMessages = {{MaxOutgoing}}\n"},
			merged:   "MaxOutgoing = 10000\n\n[Snapshot]\n  MaxOutgoingMessages = {{MaxOutgoing}}\n",
			rendered: "MaxOutgoing = 10000\n\n[Snapshot]\n  MaxOutgoingMessages = 10000\n",
		},
		{
			name:     "var pointing to a field of another section",
			files:    []string{"[RPC]\nPort = 5576\n", "[TokenBridge]\nMessagingURL = \"http://localhost:{{RPC.Port}}\"\n"},
			rendered: "\n[RPC]\n  Port = 5576\n\n[TokenBridge]\n  MessagingURL = \"http://localhost:5576\"\n",
		},
		{
			name:     "vars depending on each other",
			files:    []string{"Keep = {{Retained}}\n", "Retained = {{Keep}}\n"},
			rendered: "Keep = {{Retained}}\nRetained = {{Keep}}\n",
			err:      ErrCycleVars,
		},
		{
			name:     "var depending on itself",
			files:    []string{"Keep = {{Keep}}\n"},
			rendered: "Keep = {{Keep}}\n",
			err:      ErrCycleVars,
		},
	}
	runRenderCases(t, cases)
}

func TestConfigRenderEnvVars(t *testing.T) {
	cases := []renderCase{
		{
			name:     "mandatory var set by env var",
			files:    []string{"[TokenBridge]\nLocalAddress = \"{{LocalAddress}}\"\n"},
			env:      map[string]string{"MSGBRIDGE_LocalAddress": "0x0000000000000000000000000000000000010ca1"},
			rendered: "\n[TokenBridge]\n  LocalAddress = \"0x0000000000000000000000000000000000010ca1\"\n",
		},
		{
			name:     "var only defined by env var, as a number",
			files:    []string{"[RPC]\nPort = {{RPCPort}}\n"},
			env:      map[string]string{"MSGBRIDGE_RPCPort": "5577"},
			rendered: "\n[RPC]\n  Port = 5577\n",
		},
		// the exported value carries the quotes
		{
			name:     "var only defined by env var, as a string",
			files:    []string{"[Log]\nLevel = {{LogLevel}}\n"},
			env:      map[string]string{"MSGBRIDGE_LogLevel": "\"debug\""},
			rendered: "\n[Log]\n  Level = \"debug\"\n",
		},
		{
			name:     "env var breaks the cycle",
			files:    []string{"Keep = {{Retained}}\n", "Retained = {{Keep}}\n"},
			env:      map[string]string{"MSGBRIDGE_Retained": "3"},
			rendered: "Keep = 3\nRetained = 3\n",
		},
		// RPC.Port is not a var, only the reference to it changes
		{
			name:     "env var overrides a reference to another section",
			files:    []string{"[RPC]\nPort = 5576\n", "[TokenBridge]\nMessagingURL = \"http://localhost:{{RPC.Port}}\"\n"},
			env:      map[string]string{"MSGBRIDGE_RPC_Port": "6000"},
			rendered: "\n[RPC]\n  Port = 5576\n\n[TokenBridge]\n  MessagingURL = \"http://localhost:6000\"\n",
		},
	}
	runRenderCases(t, cases)
}

func TestConfigRenderDefaults(t *testing.T) {
	defaults := []string{DefaultMandatoryVars, DefaultVars, DefaultValues}
	r := newTestRender(defaults, nil)
	res, err := r.Render()
	require.NoError(t, err)
	require.Contains(t, res, `DBPath = "/tmp/msgbridge/bridgestate.sqlite"`)
	require.Empty(t, r.GetVars(res))

	res, err = newTestRender(defaults, map[string]string{"MSGBRIDGE_PathRWData": "/data"}).Render()
	require.NoError(t, err)
	require.Contains(t, res, `DBPath = "/data/bridgestate.sqlite"`)
}

func TestConfigRenderGetVars(t *testing.T) {
	sut := NewConfigRender(nil, testEnvPrefix)
	require.Equal(t, []string{"Controller", "PathRWData"},
		sut.GetVars("Controllers = [\"{{Controller}}\"]\nDBPath = \"{{PathRWData}}/bridgestate.sqlite\"\n"))
	require.Empty(t, sut.GetVars("Keep = 10\n"))
}

func TestConfigRenderConvertFileToToml(t *testing.T) {
	jsonFile := `{
  "MaxOutgoingMessages": 10,
  "TokenBridge": {
    "L1TokenBridge": "0x1f7ad7caA53e35b4f0D138dC5CBF91aC108a2674",
    "Token": "0x2F50ef6b8e8Ee4E579B17619A92dE3E2ffbD8AD2"
  }
}
`
	data, err := convertFileToToml(jsonFile, "json")
	require.NoError(t, err)
	require.Equal(t, "MaxOutgoingMessages = 10.0\n\n[TokenBridge]\n  L1TokenBridge = \"0x1f7ad7caA53e35b4f0D138dC5CBF91aC108a2674\"\n  Token = \"0x2F50ef6b8e8Ee4E579B17619A92dE3E2ffbD8AD2\"\n", data)

	_, err = convertFileToToml("a: 1", "yaml")
	require.ErrorIs(t, err, ErrUnsupportedConfigFileType)
}

// newTestRender builds a render whose environment is the env map
func newTestRender(contents []string, env map[string]string) *ConfigRender {
	files := make([]FileData, 0, len(contents))
	for i, c := range contents {
		files = append(files, FileData{Name: fmt.Sprintf("bridge%d.toml", i), Content: c})
	}
	return &ConfigRender{
		FilesData: files,
		LookupEnvFunc: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		EnvPrefix: testEnvPrefix,
	}
}

func runRenderCases(t *testing.T, cases []renderCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRender(tc.files, tc.env)
			if tc.merged != "" {
				merged, err := r.Merge()
				require.NoError(t, err)
				require.Equal(t, tc.merged, merged)
			}
			rendered, err := r.Render()
			require.ErrorIs(t, err, tc.err)
			if tc.rendered != "" {
				require.Equal(t, tc.rendered, rendered)
			}
		})
	}
}
