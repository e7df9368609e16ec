package server

import (
	"net"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/secrets"
	"github.com/dogechain-lab/objectchain/server"
)

const (
	configFlag                   = command.ConfigFlag
	genesisPathFlag              = "chain"
	dataDirFlag                  = command.DataDirFlag
	leveldbCacheFlag             = "leveldb.cache-size"
	leveldbHandlesFlag           = "leveldb.handles"
	leveldbBloomKeyBitsFlag      = "leveldb.bloom-bits"
	leveldbTableSizeFlag         = "leveldb.table-size"
	leveldbTotalTableSizeFlag    = "leveldb.total-table-size"
	leveldbNoSyncFlag            = "leveldb.nosync"
	storeObjectCacheFlag         = "store.object-cache-size"
	storeRawCacheFlag            = "store.raw-cache-size"
	prometheusAddressFlag        = "prometheus"
	jaegerURLFlag                = command.JaegerFlag
	secretsConfigFlag            = "secrets-config"
	devFlag                      = "dev"
	corsOriginFlag               = "access-control-allow-origins"
	logFileLocationFlag          = "log-to"
	jsonRPCBatchRequestLimitFlag = "json-rpc-batch-request-limit"
	jsonRPCNamespacesFlag        = "json-rpc-namespaces"
	enableWSFlag                 = "enable-ws"
	enablePprofFlag              = "enable-jsonrpc-pprof"
)

var (
	params = &serverParams{
		rawConfig: DefaultConfig(),
	}
)

type serverParams struct {
	rawConfig  *Config
	configPath string

	prometheusAddress *net.TCPAddr
	jsonRPCAddress    *net.TCPAddr

	genesisConfig *chain.Chain
	secretsConfig *secrets.SecretsManagerConfig

	logFileLocation string
}

func (p *serverParams) isLogFileLocationSet() bool {
	return p.rawConfig.LogFilePath != ""
}

func (p *serverParams) isSecretsConfigPathSet() bool {
	return p.rawConfig.SecretsConfigPath != ""
}

func (p *serverParams) isPrometheusAddressSet() bool {
	return p.rawConfig.Telemetry.PrometheusAddr != ""
}

func (p *serverParams) setRawJSONRPCAddress(jsonRPCAddress string) {
	p.rawConfig.JSONRPCAddr = jsonRPCAddress
}

func (p *serverParams) generateConfig() *server.Config {
	raw := p.rawConfig

	return &server.Config{
		Chain: p.genesisConfig,
		JSONRPC: &server.JSONRPC{
			JSONRPCAddr:              p.jsonRPCAddress,
			AccessControlAllowOrigin: raw.Headers.AccessControlAllowOrigins,
			BatchLengthLimit:         uint64(raw.JSONRPCBatchRequestLimit),
			JSONNamespace:            raw.JSONNamespaces,
			EnableWS:                 raw.EnableWS,
			EnablePprof:              raw.EnablePprof,
		},
		Telemetry: &server.Telemetry{
			PrometheusAddr: p.prometheusAddress,
			JaegerURL:      raw.Telemetry.JaegerURL,
		},
		DataDir: raw.DataDir,
		Dev:     raw.Dev,
		LeveldbOptions: &server.LeveldbOptions{
			CacheSize:           raw.Leveldb.CacheSize,
			Handles:             raw.Leveldb.Handles,
			BloomKeyBits:        raw.Leveldb.BloomKeyBits,
			CompactionTableSize: raw.Leveldb.CompactionTableSize,
			CompactionTotalSize: raw.Leveldb.CompactionTotalSize,
			NoSync:              raw.Leveldb.NoSync,
		},
		StoreOptions: &server.StoreOptions{
			ObjectCacheSize: raw.Store.ObjectCacheSize,
			RawCacheSize:    raw.Store.RawCacheSize,
		},
		SecretsManager: p.secretsConfig,
		LogLevel:       hclog.LevelFromString(raw.LogLevel),
		LogFilePath:    p.logFileLocation,
	}
}
