package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/jsonrpc"
)

// Config defines the server configuration params
type Config struct {
	GenesisPath              string     `json:"chain_config" hcl:"chain_config"`
	SecretsConfigPath        string     `json:"secrets_config" hcl:"secrets_config"`
	DataDir                  string     `json:"data_dir" hcl:"data_dir"`
	JSONRPCAddr              string     `json:"jsonrpc_addr" hcl:"jsonrpc_addr"`
	Telemetry                *Telemetry `json:"telemetry" hcl:"telemetry"`
	Headers                  *Headers   `json:"headers" hcl:"headers"`
	Leveldb                  *Leveldb   `json:"leveldb" hcl:"leveldb"`
	Store                    *Store     `json:"store" hcl:"store"`
	LogLevel                 string     `json:"log_level" hcl:"log_level"`
	LogFilePath              string     `json:"log_to" hcl:"log_to"`
	JSONRPCBatchRequestLimit int        `json:"json_rpc_batch_request_limit" hcl:"json_rpc_batch_request_limit"`
	JSONNamespaces           []string   `json:"json_namespaces" hcl:"json_namespaces"`
	EnableWS                 bool       `json:"enable_ws" hcl:"enable_ws"`
	EnablePprof              bool       `json:"enable_pprof" hcl:"enable_pprof"`
	Dev                      bool       `json:"dev" hcl:"dev"`
}

// Telemetry holds the config details for metric and tracing services
type Telemetry struct {
	PrometheusAddr string `json:"prometheus_addr" hcl:"prometheus_addr"`
	JaegerURL      string `json:"jaeger_url" hcl:"jaeger_url"`
}

// Headers defines the HTTP response headers required to enable CORS.
type Headers struct {
	AccessControlAllowOrigins []string `json:"access_control_allow_origins" hcl:"access_control_allow_origins"`
}

// Leveldb holds the leveldb tuning options
type Leveldb struct {
	CacheSize           int  `json:"cache_size" hcl:"cache_size"`
	Handles             int  `json:"handles" hcl:"handles"`
	BloomKeyBits        int  `json:"bloom_bits" hcl:"bloom_bits"`
	CompactionTableSize int  `json:"table_size" hcl:"table_size"`
	CompactionTotalSize int  `json:"total_table_size" hcl:"total_table_size"`
	NoSync              bool `json:"nosync" hcl:"nosync"`
}

// Store sizes the object store caches
type Store struct {
	ObjectCacheSize int `json:"object_cache_size" hcl:"object_cache_size"`
	RawCacheSize    int `json:"raw_cache_size" hcl:"raw_cache_size"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		GenesisPath: fmt.Sprintf("./%s", command.DefaultGenesisFileName),
		DataDir:     command.DefaultDataDir,
		Telemetry:   &Telemetry{},
		Headers: &Headers{
			AccessControlAllowOrigins: []string{"*"},
		},
		Leveldb: &Leveldb{
			CacheSize:           256,
			Handles:             512,
			BloomKeyBits:        10,
			CompactionTableSize: 4,
			CompactionTotalSize: 40,
			NoSync:              false,
		},
		Store:                    &Store{},
		LogLevel:                 "INFO",
		JSONRPCBatchRequestLimit: int(jsonrpc.DefaultJSONRPCBatchRequestLimit),
		JSONNamespaces:           namespaceStrings(jsonrpc.DefaultNamespaces),
		EnableWS:                 true,
	}
}

func namespaceStrings(namespaces []jsonrpc.Namespace) []string {
	out := make([]string, len(namespaces))
	for i, ns := range namespaces {
		out[i] = string(ns)
	}

	return out
}

// readConfigFile reads the config file from the specified path, builds a Config object
// and returns it.
//
// Supported file types: .json, .hcl
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = hcl.Unmarshal
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = json.Unmarshal
	default:
		return nil, fmt.Errorf("suffix of %s is neither hcl nor json", path)
	}

	config := DefaultConfig()

	if err := unmarshalFunc(data, config); err != nil {
		return nil, err
	}

	return config, nil
}
