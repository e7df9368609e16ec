package server

import (
	"github.com/dogechain-lab/objectchain/secrets"
	"github.com/dogechain-lab/objectchain/secrets/awsssm"
	"github.com/dogechain-lab/objectchain/secrets/hashicorpvault"
	"github.com/dogechain-lab/objectchain/secrets/local"
)

// secretsManagerBackends defines the SecretManager factories for different
// secret management solutions
var secretsManagerBackends = map[secrets.SecretsManagerType]secrets.SecretsManagerFactory{
	secrets.Local:          local.SecretsManagerFactory,
	secrets.HashicorpVault: hashicorpvault.SecretsManagerFactory,
	secrets.AWSSSM:         awsssm.SecretsManagerFactory,
}

func GetSecretsManager(secretType secrets.SecretsManagerType) (secrets.SecretsManagerFactory, bool) {
	secretManager, ok := secretsManagerBackends[secretType]

	return secretManager, ok
}
