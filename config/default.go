package config

// DefaultMandatoryVars have no default value because they depend on the deployment
const DefaultMandatoryVars = `
# Controller is the first address allowed to run the privileged calls
Controller = "0x0000000000000000000000000000000000000000"
# LocalAddress identifies this execution environment on the messages
LocalAddress = "0x0000000000000000000000000000000000000000"
# L1TokenBridge is the L1 contract sending the mint messages and receiving the burns
L1TokenBridge = "0x0000000000000000000000000000000000000000"
# L1NativeBridge is the L1 contract receiving the withdrawals
L1NativeBridge = "0x0000000000000000000000000000000000000000"
`

// DefaultVars are not config fields, they avoid repetition in the config files
const DefaultVars = `
PathRWData = "/tmp/msgbridge"
`

// DefaultValues is the default configuration
const DefaultValues = `
# Log configuration
[Log]
  # Environment is the environment where the node is running
  Environment = "development" # "production" or "development"
  # Level is the log level
  Level = "info"
  # Outputs are the outputs where the logs will be written
  Outputs = ["stderr"]

[RPC]
  # Host defines the network adapter that will be used to serve the HTTP requests.
  # Callers are identified by the address they pass, serve on a trusted network only.
  Host = "127.0.0.1"
  # Port defines the port to serve the endpoints via HTTP
  Port = 5576
  # ReadTimeout is the HTTP server read timeout
  ReadTimeout = "2s"
  # WriteTimeout is the HTTP server write timeout
  WriteTimeout = "2s"
  # MaxRequestsPerIPAndSecond defines how much requests a single IP can
  # send within a single second
  MaxRequestsPerIPAndSecond = 100

[Messaging]
  # Controllers seed the authorization list of an empty state
  Controllers = ["{{Controller}}"]

[TokenBridge]
  LocalAddress = "{{LocalAddress}}"
  L1TokenBridge = "{{L1TokenBridge}}"
  L1NativeBridge = "{{L1NativeBridge}}"
  # Token and NativeToken tag the claimable entries
  Token = "0x0000000000000000000000000000000000000001"
  NativeToken = "0x0000000000000000000000000000000000000002"
  # MessagingURL empty uses the messaging service of this process
  MessagingURL = ""
  # TokenLedgerURL empty uses an in memory token ledger
  TokenLedgerURL = ""

[Snapshot]
  # DBPath is the path of the sqlite DB holding the snapshots
  DBPath = "{{PathRWData}}/bridgestate.sqlite"
  # Interval is how often the state is saved if it changed
  Interval = "10s"
  # Keep is how many snapshots are retained
  Keep = 10
  # MaxOutgoingMessages is the capacity of the outgoing store
  MaxOutgoingMessages = 10000
`
