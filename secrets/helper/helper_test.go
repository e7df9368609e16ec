package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/secrets"
)

func TestAuthorityKey(t *testing.T) {
	t.Parallel()

	manager, err := SetupLocalSecretsManager(t.TempDir())
	assert.NoError(t, err)

	name, err := InitAuthorityKey(manager)
	assert.NoError(t, err)

	_, err = InitAuthorityKey(manager)
	assert.ErrorIs(t, err, secrets.ErrSecretAlreadyExists)

	key, err := LoadAuthorityKey(manager)
	assert.NoError(t, err)
	assert.Equal(t, name, crypto.PubKeyToAuthorityName(key.PubKey()))

	again, err := LoadOrInitAuthorityKey(manager)
	assert.NoError(t, err)
	assert.Equal(t, key.Serialize(), again.Serialize())
}

func TestLoadOrInitAuthorityKey(t *testing.T) {
	t.Parallel()

	manager, err := SetupLocalSecretsManager(t.TempDir())
	assert.NoError(t, err)

	_, err = LoadAuthorityKey(manager)
	assert.Error(t, err)

	key, err := LoadOrInitAuthorityKey(manager)
	assert.NoError(t, err)
	assert.True(t, manager.HasSecret(secrets.AuthorityKey))

	loaded, err := LoadAuthorityKey(manager)
	assert.NoError(t, err)
	assert.Equal(t, key.Serialize(), loaded.Serialize())
}
