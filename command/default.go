package command

import "github.com/dogechain-lab/objectchain/server"

const (
	DefaultGenesisFileName = "genesis.json"
	DefaultChainName       = "objectchain"
	DefaultDataDir         = "./objectchain-data"
	DefaultCoinBalance     = 1_000_000
	DefaultJSONRPCPort     = server.DefaultJSONRPCPort
)

const (
	JSONOutputFlag   = "json"
	JSONRPCFlag      = "jsonrpc"
	PprofFlag        = "pprof"
	PprofAddressFlag = "pprof-address"
	JaegerFlag       = "jaeger-address"
)
