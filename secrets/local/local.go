package local

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dogechain-lab/objectchain/helper/common"
	"github.com/dogechain-lab/objectchain/secrets"
)

// LocalSecretsManager is a SecretsManager that
// stores secrets locally on disk
type LocalSecretsManager struct {
	// Logger object
	logger hclog.Logger

	// Path to the base working directory
	path string

	// Map of known secrets and their paths
	secretPathMap map[string]string

	// Mux for the secretPathMap
	secretPathMapLock sync.RWMutex
}

// SecretsManagerFactory implements the factory method
func SecretsManagerFactory(
	_ *secrets.SecretsManagerConfig,
	params *secrets.SecretsManagerParams,
) (secrets.SecretsManager, error) {
	// Set up the base object
	localManager := &LocalSecretsManager{
		logger:        params.Logger.Named(string(secrets.Local)),
		secretPathMap: make(map[string]string),
	}

	// Grab the path to the working directory
	path, ok := params.Extra[secrets.Path]
	if !ok {
		return nil, errors.New("no path specified for local secrets manager")
	}

	localManager.path, ok = path.(string)
	if !ok {
		return nil, errors.New("invalid type assertion")
	}

	// Run the initial setup
	if err := localManager.Setup(); err != nil {
		return nil, err
	}

	return localManager, nil
}

// Setup checks if the working directory exists, and creates the
// secret folder layout
func (l *LocalSecretsManager) Setup() error {
	// The authority key is placed in the authority directory
	subDirectories := []string{secrets.AuthorityFolderLocal}

	// Set up the local directories
	if err := common.SetupDataDir(l.path, subDirectories); err != nil {
		return err
	}

	l.secretPathMapLock.Lock()
	defer l.secretPathMapLock.Unlock()

	// baseDir/authority/authority.key
	l.secretPathMap[secrets.AuthorityKey] = filepath.Join(
		l.path,
		secrets.AuthorityFolderLocal,
		secrets.AuthorityKeyLocal,
	)

	return nil
}

// GetSecretPath returns the file a secret is stored in
func (l *LocalSecretsManager) GetSecretPath(name string) (string, error) {
	l.secretPathMapLock.RLock()
	defer l.secretPathMapLock.RUnlock()

	secretPath, ok := l.secretPathMap[name]
	if !ok {
		return "", secrets.ErrSecretNotFound
	}

	return secretPath, nil
}

// GetSecret gets the local SecretsManager's secret from disk
func (l *LocalSecretsManager) GetSecret(name string) ([]byte, error) {
	secretPath, err := l.GetSecretPath(name)
	if err != nil {
		return nil, err
	}

	// Read the secret from disk
	secret, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf(
			"unable to read secret from disk (%s), %w",
			secretPath,
			err,
		)
	}

	return secret, nil
}

// SetSecret saves the local SecretsManager's secret to disk
func (l *LocalSecretsManager) SetSecret(name string, value []byte) error {
	secretPath, err := l.GetSecretPath(name)
	if err != nil {
		return err
	}

	// Checks for existing secret
	if common.FileExists(secretPath) {
		return fmt.Errorf("%w: %s", secrets.ErrSecretAlreadyExists, secretPath)
	}

	// Write the secret to disk, readable by the owner only
	if err := os.WriteFile(secretPath, value, 0400); err != nil {
		return fmt.Errorf(
			"unable to write secret to disk (%s), %w",
			secretPath,
			err,
		)
	}

	l.logger.Debug("secret written", "name", name, "path", secretPath)

	return nil
}

// HasSecret checks if the secret is present on disk
func (l *LocalSecretsManager) HasSecret(name string) bool {
	_, err := l.GetSecret(name)

	return err == nil
}

// RemoveSecret removes the local SecretsManager's secret from disk
func (l *LocalSecretsManager) RemoveSecret(name string) error {
	secretPath, err := l.GetSecretPath(name)
	if err != nil {
		return err
	}

	if removalErr := os.Remove(secretPath); removalErr != nil {
		return fmt.Errorf("unable to remove secret, %w", removalErr)
	}

	return nil
}
