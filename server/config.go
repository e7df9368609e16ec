package server

import (
	"net"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/secrets"
)

const (
	DefaultJSONRPCPort int = 8545
	DefaultPprofPort   int = 6060
)

// Config is used to parametrize the authority server
type Config struct {
	Chain *chain.Chain

	JSONRPC *JSONRPC

	Telemetry *Telemetry

	DataDir string

	// Dev keeps every object in memory, nothing survives a restart
	Dev bool

	LeveldbOptions *LeveldbOptions
	StoreOptions   *StoreOptions

	SecretsManager *secrets.SecretsManagerConfig

	LogLevel    hclog.Level
	LogFilePath string
}

// LeveldbOptions holds the leveldb options
type LeveldbOptions struct {
	CacheSize           int
	Handles             int
	BloomKeyBits        int
	CompactionTableSize int
	CompactionTotalSize int
	NoSync              bool
}

// StoreOptions sizes the object store caches. Zero values select defaults.
type StoreOptions struct {
	ObjectCacheSize int
	RawCacheSize    int
}

// Telemetry holds the config details for metric and tracing services
type Telemetry struct {
	PrometheusAddr *net.TCPAddr
	JaegerURL      string
}

// JSONRPC holds the config details for the JSON-RPC server
type JSONRPC struct {
	JSONRPCAddr              *net.TCPAddr
	AccessControlAllowOrigin []string
	BatchLengthLimit         uint64
	JSONNamespace            []string
	EnableWS                 bool
	EnablePprof              bool
}
