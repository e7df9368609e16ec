package init

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/secrets"
	secretsHelper "github.com/dogechain-lab/objectchain/secrets/helper"
	"github.com/dogechain-lab/objectchain/server"
	"github.com/dogechain-lab/objectchain/types"
)

const (
	dataDirFlag = command.DataDirFlag
	configFlag  = command.ConfigFlag
)

var (
	params = &initParams{}
)

var (
	errInvalidConfig   = errors.New("invalid secrets configuration")
	errInvalidParams   = errors.New("no config file or data directory passed in")
	errUnsupportedType = errors.New("unsupported secrets manager type")
)

type initParams struct {
	dataDir    string
	configPath string

	secretsManager secrets.SecretsManager
	secretsConfig  *secrets.SecretsManagerConfig

	name types.AuthorityName
}

func (ip *initParams) validateFlags() error {
	if ip.dataDir == "" && ip.configPath == "" {
		return errInvalidParams
	}

	return nil
}

func (ip *initParams) initSecrets() error {
	if err := ip.initSecretsManager(); err != nil {
		return err
	}

	name, err := secretsHelper.InitAuthorityKey(ip.secretsManager)
	if err != nil {
		return err
	}

	ip.name = name

	return nil
}

func (ip *initParams) initSecretsManager() error {
	if ip.hasConfigPath() {
		return ip.initFromConfig()
	}

	return ip.initLocalSecretsManager()
}

func (ip *initParams) hasConfigPath() bool {
	return ip.configPath != ""
}

func (ip *initParams) initFromConfig() error {
	var readErr error

	if ip.secretsConfig, readErr = secrets.ReadConfig(ip.configPath); readErr != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, readErr)
	}

	factory, ok := server.GetSecretsManager(ip.secretsConfig.Type)
	if !ok {
		return fmt.Errorf("%w: %s", errUnsupportedType, ip.secretsConfig.Type)
	}

	manager, err := factory(ip.secretsConfig, &secrets.SecretsManagerParams{
		Logger: hclog.NewNullLogger(),
	})
	if err != nil {
		return err
	}

	ip.secretsManager = manager

	return nil
}

func (ip *initParams) initLocalSecretsManager() error {
	manager, err := secretsHelper.SetupLocalSecretsManager(ip.dataDir)
	if err != nil {
		return err
	}

	ip.secretsManager = manager

	return nil
}

func (ip *initParams) getResult() command.CommandResult {
	return &SecretsInitResult{
		Authority: ip.name,
	}
}
