package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/secrets"
	"github.com/dogechain-lab/objectchain/server"
)

const defaultConfigFileName = "./secretsManagerConfig.json"

const (
	dirFlag       = "dir"
	tokenFlag     = "token"
	serverURLFlag = "server-url"
	nameFlag      = "name"
	namespaceFlag = "namespace"
	typeFlag      = "type"
	extraFlag     = "extra"
)

var (
	params = &generateParams{}
)

var (
	errUnsupportedType = errors.New("unsupported secrets manager type")
	errInvalidExtra    = errors.New("invalid extra entry, format is <key>=<value>")
)

type generateParams struct {
	dir         string
	token       string
	serverURL   string
	serviceType string
	name        string
	namespace   string
	extra       []string
}

func (p *generateParams) validateFlags() error {
	if _, ok := server.GetSecretsManager(secrets.SecretsManagerType(p.serviceType)); !ok {
		return fmt.Errorf("%w: %s", errUnsupportedType, p.serviceType)
	}

	for _, e := range p.extra {
		if !strings.Contains(e, "=") {
			return fmt.Errorf("%w: %q", errInvalidExtra, e)
		}
	}

	return nil
}

func (p *generateParams) config() *secrets.SecretsManagerConfig {
	extra := make(map[string]interface{}, len(p.extra))

	for _, e := range p.extra {
		kv := strings.SplitN(e, "=", 2)
		extra[kv[0]] = kv[1]
	}

	return &secrets.SecretsManagerConfig{
		Token:     p.token,
		ServerURL: p.serverURL,
		Type:      secrets.SecretsManagerType(p.serviceType),
		Name:      p.name,
		Namespace: p.namespace,
		Extra:     extra,
	}
}

func (p *generateParams) writeSecretsConfig() error {
	if err := p.config().WriteConfig(p.dir); err != nil {
		return fmt.Errorf("unable to write configuration file, %w", err)
	}

	return nil
}

func (p *generateParams) getResult() command.CommandResult {
	return &SecretsGenerateResult{
		ServiceType: p.serviceType,
		ServerURL:   p.serverURL,
		AccessToken: p.token,
		NodeName:    p.name,
		Namespace:   p.namespace,
		Path:        p.dir,
	}
}
