package secrets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretsManagerConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "secrets.json")

	config := &SecretsManagerConfig{
		Type:      AWSSSM,
		Name:      "authority-1",
		Namespace: "objectchain",
		Extra: map[string]interface{}{
			"region":             "us-east-1",
			"ssm-parameter-path": "/objectchain",
		},
	}

	assert.NoError(t, config.WriteConfig(path))

	read, err := ReadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, config, read)

	assert.True(t, SupportedServiceManager(read.Type))
	assert.False(t, SupportedServiceManager("gcp"))
}
