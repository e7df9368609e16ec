package server

import (
	"errors"
	"fmt"

	"github.com/dogechain-lab/objectchain/chain"
	"github.com/dogechain-lab/objectchain/command/helper"
	"github.com/dogechain-lab/objectchain/helper/common"
	"github.com/dogechain-lab/objectchain/secrets"
)

var (
	errDataDirectoryUndefined = errors.New("data directory not defined")
	errInvalidLogLevel        = errors.New("invalid log level")
	errInvalidBatchLimit      = errors.New("json-rpc batch request limit must not be negative")
)

func (p *serverParams) initConfigFromFile() error {
	var parseErr error

	if p.rawConfig, parseErr = readConfigFile(p.configPath); parseErr != nil {
		return parseErr
	}

	return nil
}

func (p *serverParams) initRawParams() error {
	p.fillMissingSections()

	if err := p.initLogLevel(); err != nil {
		return err
	}

	if p.rawConfig.JSONRPCBatchRequestLimit < 0 {
		return fmt.Errorf("%w: %d", errInvalidBatchLimit, p.rawConfig.JSONRPCBatchRequestLimit)
	}

	if err := p.initSecretsConfig(); err != nil {
		return err
	}

	if err := p.initGenesisConfig(); err != nil {
		return err
	}

	if err := p.initDataDirLocation(); err != nil {
		return err
	}

	p.initLogFileLocation()

	return p.initAddresses()
}

// fillMissingSections keeps a config file that omits whole blocks usable
func (p *serverParams) fillMissingSections() {
	defaults := DefaultConfig()

	if p.rawConfig.Telemetry == nil {
		p.rawConfig.Telemetry = defaults.Telemetry
	}

	if p.rawConfig.Headers == nil {
		p.rawConfig.Headers = defaults.Headers
	}

	if p.rawConfig.Leveldb == nil {
		p.rawConfig.Leveldb = defaults.Leveldb
	}

	if p.rawConfig.Store == nil {
		p.rawConfig.Store = defaults.Store
	}
}

func (p *serverParams) initLogLevel() error {
	switch p.rawConfig.LogLevel {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR",
		"trace", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: %s", errInvalidLogLevel, p.rawConfig.LogLevel)
	}
}

func (p *serverParams) initDataDirLocation() error {
	if p.rawConfig.DataDir == "" {
		return errDataDirectoryUndefined
	}

	return nil
}

func (p *serverParams) initLogFileLocation() {
	if p.isLogFileLocationSet() {
		p.logFileLocation = p.rawConfig.LogFilePath
	}
}

func (p *serverParams) initSecretsConfig() error {
	if !p.isSecretsConfigPathSet() {
		return nil
	}

	var parseErr error

	if p.secretsConfig, parseErr = secrets.ReadConfig(
		p.rawConfig.SecretsConfigPath,
	); parseErr != nil {
		return fmt.Errorf("unable to read secrets config file, %w", parseErr)
	}

	return nil
}

// initGenesisConfig loads the genesis file. A dev server may run without one.
func (p *serverParams) initGenesisConfig() error {
	if p.rawConfig.Dev && !common.FileExists(p.rawConfig.GenesisPath) {
		p.genesisConfig = nil

		return nil
	}

	var parseErr error

	if p.genesisConfig, parseErr = chain.Import(
		p.rawConfig.GenesisPath,
	); parseErr != nil {
		return fmt.Errorf("failed to load genesis %s: %w", p.rawConfig.GenesisPath, parseErr)
	}

	return nil
}

func (p *serverParams) initAddresses() error {
	if err := p.initPrometheusAddress(); err != nil {
		return err
	}

	return p.initJSONRPCAddress()
}

func (p *serverParams) initPrometheusAddress() error {
	if !p.isPrometheusAddressSet() {
		return nil
	}

	var parseErr error

	if p.prometheusAddress, parseErr = helper.ResolveAddr(
		p.rawConfig.Telemetry.PrometheusAddr,
		helper.AllInterfacesBinding,
	); parseErr != nil {
		return parseErr
	}

	return nil
}

func (p *serverParams) initJSONRPCAddress() error {
	if p.rawConfig.JSONRPCAddr == "" {
		return nil
	}

	var parseErr error

	if p.jsonRPCAddress, parseErr = helper.ResolveAddr(
		p.rawConfig.JSONRPCAddr,
		helper.AllInterfacesBinding,
	); parseErr != nil {
		return parseErr
	}

	return nil
}
