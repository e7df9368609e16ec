package awsssm

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/secrets"
)

func TestFactoryValidatesConfig(t *testing.T) {
	t.Parallel()

	params := &secrets.SecretsManagerParams{Logger: hclog.NewNullLogger()}

	_, err := SecretsManagerFactory(&secrets.SecretsManagerConfig{Type: secrets.AWSSSM}, params)
	assert.Error(t, err)

	_, err = SecretsManagerFactory(&secrets.SecretsManagerConfig{
		Type:  secrets.AWSSSM,
		Name:  "authority-1",
		Extra: map[string]interface{}{"region": "us-east-1"},
	}, params)
	assert.Error(t, err)
}

func TestSecretPath(t *testing.T) {
	t.Parallel()

	manager := &AwsSsmManager{basePath: "/objectchain/authority-1"}

	assert.Equal(t, "/objectchain/authority-1/authority-key", manager.constructSecretPath(secrets.AuthorityKey))
}
