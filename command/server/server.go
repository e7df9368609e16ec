package server

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/command/helper"
	"github.com/dogechain-lab/objectchain/server"
)

func GetCommand() *cobra.Command {
	serverCmd := &cobra.Command{
		Use:     "server",
		Short:   "Starts an objectchain authority, bootstrapping its store, genesis and JSON-RPC service",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	helper.RegisterJSONRPCFlag(serverCmd)

	setFlags(serverCmd)

	return serverCmd
}

func setFlags(cmd *cobra.Command) {
	defaultConfig := DefaultConfig()
	raw := params.rawConfig

	cmd.Flags().StringVar(
		&raw.LogLevel,
		command.LogLevelFlag,
		defaultConfig.LogLevel,
		"the log level for console output",
	)

	cmd.Flags().StringVar(
		&raw.GenesisPath,
		genesisPathFlag,
		defaultConfig.GenesisPath,
		"the genesis file used for starting the authority",
	)

	cmd.Flags().StringVar(
		&params.configPath,
		configFlag,
		"",
		"the path to the CLI config. Supports .json and .hcl",
	)

	cmd.Flags().StringVar(
		&raw.DataDir,
		dataDirFlag,
		defaultConfig.DataDir,
		"the data directory used for storing objectchain authority data",
	)

	cmd.Flags().StringVar(
		&raw.Telemetry.PrometheusAddr,
		prometheusAddressFlag,
		"",
		"the address and port for the prometheus instrumentation service (address:port). "+
			"If only port is defined (:port) it will bind to 0.0.0.0:port",
	)

	cmd.Flags().StringVar(
		&raw.Telemetry.JaegerURL,
		jaegerURLFlag,
		"",
		"the jaeger collector endpoint receiving authority traces. Tracing is off when omitted",
	)

	cmd.Flags().StringVar(
		&raw.SecretsConfigPath,
		secretsConfigFlag,
		"",
		"the path to the SecretsManager config file. Used for Hashicorp Vault and AWS SSM. "+
			"If omitted, the local FS secrets manager is used",
	)

	cmd.Flags().StringArrayVar(
		&raw.Headers.AccessControlAllowOrigins,
		corsOriginFlag,
		defaultConfig.Headers.AccessControlAllowOrigins,
		"the CORS header indicating whether any JSON-RPC response can be shared with the specified origin",
	)

	cmd.Flags().StringVar(
		&raw.LogFilePath,
		logFileLocationFlag,
		defaultConfig.LogFilePath,
		"write all logs to the file at specified location instead of writing them to console",
	)

	cmd.Flags().IntVar(
		&raw.JSONRPCBatchRequestLimit,
		jsonRPCBatchRequestLimitFlag,
		defaultConfig.JSONRPCBatchRequestLimit,
		"the max length to be considered when handling json-rpc batch requests",
	)

	cmd.Flags().StringSliceVar(
		&raw.JSONNamespaces,
		jsonRPCNamespacesFlag,
		defaultConfig.JSONNamespaces,
		"the JSON-RPC namespaces to serve",
	)

	cmd.Flags().BoolVar(
		&raw.EnableWS,
		enableWSFlag,
		defaultConfig.EnableWS,
		"serve JSON-RPC over websocket at /ws",
	)

	cmd.Flags().BoolVar(
		&raw.EnablePprof,
		enablePprofFlag,
		false,
		"serve pprof handlers on the JSON-RPC port",
	)

	cmd.Flags().String(
		command.PprofAddressFlag,
		fmt.Sprintf("127.0.0.1:%d", server.DefaultPprofPort),
		"the address of the standalone pprof server",
	)

	cmd.Flags().Bool(
		command.PprofFlag,
		false,
		"start a standalone pprof server",
	)

	setLeveldbFlags(cmd, defaultConfig)
	setDevFlags(cmd)
}

func setLeveldbFlags(cmd *cobra.Command, defaultConfig *Config) {
	raw := params.rawConfig

	cmd.Flags().IntVar(
		&raw.Leveldb.CacheSize,
		leveldbCacheFlag,
		defaultConfig.Leveldb.CacheSize,
		"the leveldb block cache size in MiB",
	)

	cmd.Flags().IntVar(
		&raw.Leveldb.Handles,
		leveldbHandlesFlag,
		defaultConfig.Leveldb.Handles,
		"the leveldb open files cache capacity",
	)

	cmd.Flags().IntVar(
		&raw.Leveldb.BloomKeyBits,
		leveldbBloomKeyBitsFlag,
		defaultConfig.Leveldb.BloomKeyBits,
		"the leveldb bloom filter bits per key",
	)

	cmd.Flags().IntVar(
		&raw.Leveldb.CompactionTableSize,
		leveldbTableSizeFlag,
		defaultConfig.Leveldb.CompactionTableSize,
		"the leveldb compaction table size in MiB",
	)

	cmd.Flags().IntVar(
		&raw.Leveldb.CompactionTotalSize,
		leveldbTotalTableSizeFlag,
		defaultConfig.Leveldb.CompactionTotalSize,
		"the leveldb compaction total table size in MiB",
	)

	cmd.Flags().BoolVar(
		&raw.Leveldb.NoSync,
		leveldbNoSyncFlag,
		defaultConfig.Leveldb.NoSync,
		"skip fsync on leveldb writes",
	)

	cmd.Flags().IntVar(
		&raw.Store.ObjectCacheSize,
		storeObjectCacheFlag,
		0,
		"the number of decoded object versions kept in memory",
	)

	cmd.Flags().IntVar(
		&raw.Store.RawCacheSize,
		storeRawCacheFlag,
		0,
		"the byte size of the encoded certificate and effects cache",
	)
}

func setDevFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&params.rawConfig.Dev,
		devFlag,
		false,
		"should the authority start in dev mode, in memory and committee of itself (default false)",
	)
}

func runPreRun(cmd *cobra.Command, _ []string) error {
	jsonRPCAddr := helper.GetJSONRPCAddress(cmd)
	params.setRawJSONRPCAddress(jsonRPCAddr)

	// Check if the config file has been specified
	// Config file settings will override the JSON-RPC address value
	if isConfigFileSpecified(cmd) {
		if err := params.initConfigFromFile(); err != nil {
			return err
		}

		if params.rawConfig.JSONRPCAddr == "" {
			params.setRawJSONRPCAddress(jsonRPCAddr)
		}
	}

	return params.initRawParams()
}

func isConfigFileSpecified(cmd *cobra.Command) bool {
	return cmd.Flags().Changed(configFlag)
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)

	if err := runServerLoop(cmd, params.generateConfig(), outputter); err != nil {
		outputter.SetError(err)
		outputter.WriteOutput()

		return
	}
}

func runServerLoop(
	cmd *cobra.Command,
	config *server.Config,
	outputter command.OutputFormatter,
) error {
	serverInstance, err := server.NewServer(config)
	if err != nil {
		return err
	}

	pprofServer := command.InitializePprofServer(cmd, hclog.Default())

	return helper.HandleSignals(func() {
		if pprofServer != nil {
			_ = pprofServer.Shutdown(context.Background())
		}

		serverInstance.Close()
	}, outputter)
}
