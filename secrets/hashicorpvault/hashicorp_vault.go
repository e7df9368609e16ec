package hashicorpvault

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	vault "github.com/hashicorp/vault/api"

	"github.com/dogechain-lab/objectchain/secrets"
)

// VaultSecretsManager is a SecretsManager that
// stores secrets on a Hashicorp Vault instance
type VaultSecretsManager struct {
	// Logger object
	logger hclog.Logger

	// Token used for Vault instance authentication
	token string

	// The Server URL of the Vault instance
	serverURL string

	// The name of the current node, used for prefixing names of secrets
	name string

	// The base path to store the secrets in the KV-2 Vault storage
	basePath string

	// The namespace under which the secrets are stored
	namespace string

	// The HTTP client used for interacting with the Vault server
	client *vault.Client
}

// SecretsManagerFactory implements the factory method
func SecretsManagerFactory(
	config *secrets.SecretsManagerConfig,
	params *secrets.SecretsManagerParams,
) (secrets.SecretsManager, error) {
	// Check if the token is present
	if config.Token == "" {
		return nil, errors.New("no token specified for Vault secrets manager")
	}

	// Check if the server URL is present
	if config.ServerURL == "" {
		return nil, errors.New("no server URL specified for Vault secrets manager")
	}

	// Check if the node name is present
	if config.Name == "" {
		return nil, errors.New("no node name specified for Vault secrets manager")
	}

	// Set up the base object
	vaultManager := &VaultSecretsManager{
		logger:    params.Logger.Named(string(secrets.HashicorpVault)),
		token:     config.Token,
		serverURL: config.ServerURL,
		name:      config.Name,
		namespace: config.Namespace,
	}

	// Set the base path to store the secrets in the KV-2 Vault storage
	vaultManager.basePath = fmt.Sprintf("secret/data/%s", vaultManager.name)

	// Run the initial setup
	if err := vaultManager.Setup(); err != nil {
		return nil, err
	}

	return vaultManager, nil
}

// Setup sets up the Hashicorp Vault secrets manager
func (v *VaultSecretsManager) Setup() error {
	config := vault.DefaultConfig()

	client, err := vault.NewClient(config)
	if err != nil {
		return fmt.Errorf("unable to initialize vault client: %w", err)
	}

	if err := client.SetAddress(v.serverURL); err != nil {
		return fmt.Errorf("unable to set vault address: %w", err)
	}

	client.SetToken(v.token)
	client.SetNamespace(v.namespace)

	v.client = client

	return nil
}

// constructSecretPath is a helper method for constructing a path to the secret
func (v *VaultSecretsManager) constructSecretPath(name string) string {
	return fmt.Sprintf("%s/%s", v.basePath, name)
}

// GetSecret fetches a secret from the Hashicorp Vault server
func (v *VaultSecretsManager) GetSecret(name string) ([]byte, error) {
	secret, err := v.client.Logical().Read(v.constructSecretPath(name))
	if err != nil {
		return nil, fmt.Errorf("unable to read secret from Vault, %w", err)
	}

	if secret == nil {
		return nil, secrets.ErrSecretNotFound
	}

	// KV-2 (versioned key-value storage) nests the values under data
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unable to assert type for secret from Vault, %T", secret.Data["data"])
	}

	value, ok := data[name]
	if !ok {
		return nil, secrets.ErrSecretNotFound
	}

	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("unable to assert type for secret %s, %T", name, value)
	}

	return []byte(str), nil
}

// SetSecret saves a secret to the Hashicorp Vault server
func (v *VaultSecretsManager) SetSecret(name string, value []byte) error {
	// Check if overwrite is possible
	if v.HasSecret(name) {
		return fmt.Errorf("%w: %s", secrets.ErrSecretAlreadyExists, name)
	}

	// Construct the data wrapper
	data := map[string]interface{}{
		"data": map[string]string{
			name: string(value),
		},
	}

	if _, err := v.client.Logical().Write(v.constructSecretPath(name), data); err != nil {
		return fmt.Errorf("unable to store secret (%s), %w", name, err)
	}

	return nil
}

// HasSecret checks if the secret is present on the Hashicorp Vault server
func (v *VaultSecretsManager) HasSecret(name string) bool {
	_, err := v.GetSecret(name)

	return err == nil
}

// RemoveSecret removes a secret from the Hashicorp Vault server
func (v *VaultSecretsManager) RemoveSecret(name string) error {
	// Check if secret is present
	if !v.HasSecret(name) {
		return secrets.ErrSecretNotFound
	}

	if _, err := v.client.Logical().Delete(v.constructSecretPath(name)); err != nil {
		return fmt.Errorf("unable to delete secret (%s), %w", name, err)
	}

	return nil
}
