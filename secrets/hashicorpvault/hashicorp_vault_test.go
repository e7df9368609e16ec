package hashicorpvault

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/secrets"
)

func TestFactoryValidatesConfig(t *testing.T) {
	t.Parallel()

	params := &secrets.SecretsManagerParams{Logger: hclog.NewNullLogger()}

	cases := []*secrets.SecretsManagerConfig{
		{ServerURL: "http://127.0.0.1:8200", Name: "authority-1"},
		{Token: "token", Name: "authority-1"},
		{Token: "token", ServerURL: "http://127.0.0.1:8200"},
	}

	for _, c := range cases {
		_, err := SecretsManagerFactory(c, params)
		assert.Error(t, err)
	}
}

func TestFactorySetsUpClient(t *testing.T) {
	t.Parallel()

	manager, err := SecretsManagerFactory(&secrets.SecretsManagerConfig{
		Token:     "token",
		ServerURL: "http://127.0.0.1:8200",
		Name:      "authority-1",
		Namespace: "objectchain",
	}, &secrets.SecretsManagerParams{Logger: hclog.NewNullLogger()})
	assert.NoError(t, err)

	vaultManager, ok := manager.(*VaultSecretsManager)
	assert.True(t, ok)
	assert.Equal(t, "secret/data/authority-1/authority-key", vaultManager.constructSecretPath(secrets.AuthorityKey))
	assert.Equal(t, "http://127.0.0.1:8200", vaultManager.client.Address())
}
