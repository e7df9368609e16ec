package secrets

import (
	"errors"

	"github.com/hashicorp/go-hclog"
)

// Define constant names for available secrets
const (
	// AuthorityKey is the private key the authority signs orders and
	// effects with
	AuthorityKey = "authority-key"
)

// Define constant file names for the local StorageManager
const (
	AuthorityKeyLocal = "authority.key"
)

// Define constant folder names for the local StorageManager
const (
	AuthorityFolderLocal = "authority"
)

var (
	// ErrSecretNotFound is returned when the secret isn't found in the specified SecretsManager
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretAlreadyExists is returned when a stored secret would be overwritten
	ErrSecretAlreadyExists = errors.New("secret already exists")
)

type SecretsManagerType string

// Define constant types of secrets managers
const (
	// Local pertains to the local FS [Default]
	Local SecretsManagerType = "local"

	// HashicorpVault pertains to the Hashicorp Vault server
	HashicorpVault SecretsManagerType = "hashicorp-vault"

	// AWSSSM pertains to AWS SSM using Parameter Store
	AWSSSM SecretsManagerType = "aws-ssm"
)

// SecretsManager defines the base public interface that all
// secret manager implementations should have
type SecretsManager interface {
	// Setup performs secret manager-specific setup
	Setup() error

	// GetSecret gets the secret by name
	GetSecret(name string) ([]byte, error)

	// SetSecret sets the secret to a provided value
	SetSecret(name string, value []byte) error

	// HasSecret checks if the secret is present
	HasSecret(name string) bool

	// RemoveSecret removes the secret from storage
	RemoveSecret(name string) error
}

// SecretsManagerParams defines the configuration params for the
// secrets manager
type SecretsManagerParams struct {
	// Local logger object
	Logger hclog.Logger

	// Extra contains additional data needed for the SecretsManager to function
	Extra map[string]interface{}
}

const (
	// Path is the path to the base working directory
	Path = "path"
)

// SecretsManagerFactory is the factory method for secrets managers
type SecretsManagerFactory func(
	config *SecretsManagerConfig,
	params *SecretsManagerParams,
) (SecretsManager, error)

// SupportedServiceManager checks if the passed in service manager type is supported
func SupportedServiceManager(service SecretsManagerType) bool {
	return service == HashicorpVault ||
		service == AWSSSM ||
		service == Local
}
