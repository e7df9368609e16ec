package helper

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/secrets"
	"github.com/dogechain-lab/objectchain/secrets/local"
	"github.com/dogechain-lab/objectchain/types"
)

// SetupLocalSecretsManager is a helper method for boilerplate local secrets manager setup
func SetupLocalSecretsManager(dataDir string) (secrets.SecretsManager, error) {
	return local.SecretsManagerFactory(
		nil, // Local secrets manager doesn't require a config
		&secrets.SecretsManagerParams{
			Logger: hclog.NewNullLogger(),
			Extra: map[string]interface{}{
				secrets.Path: dataDir,
			},
		},
	)
}

// InitAuthorityKey creates the authority key and stores it. It fails when
// a key is already stored.
func InitAuthorityKey(secretsManager secrets.SecretsManager) (types.AuthorityName, error) {
	if secretsManager.HasSecret(secrets.AuthorityKey) {
		return types.AuthorityName{}, fmt.Errorf("%w: %s", secrets.ErrSecretAlreadyExists, secrets.AuthorityKey)
	}

	key, encoded, err := crypto.GenerateAndEncodePrivateKey()
	if err != nil {
		return types.AuthorityName{}, err
	}

	if err := secretsManager.SetSecret(secrets.AuthorityKey, encoded); err != nil {
		return types.AuthorityName{}, err
	}

	return crypto.PubKeyToAuthorityName(key.PubKey()), nil
}

// LoadAuthorityKey reads the stored authority key
func LoadAuthorityKey(secretsManager secrets.SecretsManager) (*btcec.PrivateKey, error) {
	encoded, err := secretsManager.GetSecret(secrets.AuthorityKey)
	if err != nil {
		return nil, fmt.Errorf("unable to load authority key: %w", err)
	}

	return crypto.BytesToPrivateKey(encoded)
}

// LoadOrInitAuthorityKey reads the stored authority key, creating it first
// when none is stored
func LoadOrInitAuthorityKey(secretsManager secrets.SecretsManager) (*btcec.PrivateKey, error) {
	if !secretsManager.HasSecret(secrets.AuthorityKey) {
		if _, err := InitAuthorityKey(secretsManager); err != nil && !errors.Is(err, secrets.ErrSecretAlreadyExists) {
			return nil, err
		}
	}

	return LoadAuthorityKey(secretsManager)
}
